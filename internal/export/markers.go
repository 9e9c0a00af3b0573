package export

import (
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/KaramelBytes/countrydash/internal/dataset"
)

// Marker is the data a map widget needs to place one country.
type Marker struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Popup     string  `json:"popup"`
}

// Markers returns one marker per row with a known position. A row at exactly
// (0, 0) is taken as having no coordinates (the normalizer's default) and gets
// no marker, so the result can be shorter than v.
func Markers(v dataset.View) []Marker {
	out := make([]Marker, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		row := v.Row(i)
		if row.Latitude == 0 && row.Longitude == 0 {
			continue
		}
		out = append(out, Marker{
			Name:      row.Name,
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
			Popup:     Popup(row),
		})
	}
	return out
}

// Popup builds the HTML popup text shown for a country marker.
func Popup(row dataset.CountryRow) string {
	return fmt.Sprintf("<b>%s</b><br>Región: %s<br>Población: %s<br>Área: %s km²",
		html.EscapeString(row.Name),
		html.EscapeString(row.Region),
		groupThousands(strconv.FormatInt(row.Population, 10)),
		groupThousands(strconv.FormatFloat(row.Area, 'f', 0, 64)),
	)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

type geoJSONCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

type geoJSONFeature struct {
	Type       string         `json:"type"`
	Geometry   geoJSONPoint   `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type geoJSONPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// MarkersGeoJSON renders the markers of v as a GeoJSON FeatureCollection.
// GeoJSON positions are [longitude, latitude].
func MarkersGeoJSON(v dataset.View) ([]byte, error) {
	ms := Markers(v)
	fc := geoJSONCollection{Type: "FeatureCollection", Features: make([]geoJSONFeature, 0, len(ms))}
	for _, m := range ms {
		fc.Features = append(fc.Features, geoJSONFeature{
			Type:     "Feature",
			Geometry: geoJSONPoint{Type: "Point", Coordinates: [2]float64{m.Longitude, m.Latitude}},
			Properties: map[string]any{
				"name":  m.Name,
				"popup": m.Popup,
			},
		})
	}
	b, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("marshal geojson: %w", err)
	}
	return b, nil
}
