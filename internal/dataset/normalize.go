package dataset

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// NotAvailable is the placeholder for missing text fields.
const NotAvailable = "No disponible"

// CountryRow is the normalized, fully defaulted form of a RawCountry.
type CountryRow struct {
	Name                  string  `json:"name"`
	Region                string  `json:"region"`
	Population            int64   `json:"population"`
	Area                  float64 `json:"area"`
	BorderCount           int     `json:"border_count"`
	OfficialLanguageCount int     `json:"official_language_count"`
	TimezoneCount         int     `json:"timezone_count"`
	Latitude              float64 `json:"latitude"`
	Longitude             float64 `json:"longitude"`
}

// Normalize converts a raw record into a CountryRow. It never fails: absent,
// null or mistyped fields take their default value.
func Normalize(raw RawCountry) CountryRow {
	lat, lng := coords(raw.LatLng)
	return CountryRow{
		Name:                  text(commonName(raw.Name)),
		Region:                text(raw.Region),
		Population:            nonNegInt(raw.Population),
		Area:                  nonNegFloat(raw.Area),
		BorderCount:           listLen(raw.Borders),
		OfficialLanguageCount: mapLen(raw.Languages),
		TimezoneCount:         listLen(raw.Timezones),
		Latitude:              lat,
		Longitude:             lng,
	}
}

// Set assigns v to column c with the same coercion Normalize applies: text
// falls back to NotAvailable, counts and magnitudes are non-negative and
// finite, and anything unusable becomes 0. Loaders of tabular files use it so
// their rows obey the same invariants as rows built from the API payload.
func (r *CountryRow) Set(c Column, v any) {
	switch c {
	case ColName:
		r.Name = text(v)
	case ColRegion:
		r.Region = text(v)
	case ColPopulation:
		r.Population = nonNegInt(v)
	case ColArea:
		r.Area = nonNegFloat(v)
	case ColBorderCount:
		r.BorderCount = count(v)
	case ColLanguageCount:
		r.OfficialLanguageCount = count(v)
	case ColTimezoneCount:
		r.TimezoneCount = count(v)
	case ColLatitude:
		r.Latitude, _ = number(v)
	case ColLongitude:
		r.Longitude, _ = number(v)
	}
}

func commonName(v any) any {
	if m, ok := v.(map[string]any); ok {
		return m["common"]
	}
	return v
}

func text(v any) string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

// number coerces JSON numbers and numeric strings. Booleans are rejected even
// though cast would accept them.
func number(v any) (float64, bool) {
	switch v.(type) {
	case nil, bool:
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func nonNegInt(v any) int64 {
	f, ok := number(v)
	if !ok || f <= 0 {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(f)
}

func count(v any) int {
	n := nonNegInt(v)
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

func nonNegFloat(v any) float64 {
	f, ok := number(v)
	if !ok || f < 0 {
		return 0
	}
	return f
}

func listLen(v any) int {
	if l, ok := v.([]any); ok {
		return len(l)
	}
	return 0
}

// mapLen treats null and absent the same way: zero entries.
func mapLen(v any) int {
	if m, ok := v.(map[string]any); ok {
		return len(m)
	}
	return 0
}

func coords(v any) (lat, lng float64) {
	l, ok := v.([]any)
	if !ok || len(l) < 2 {
		return 0, 0
	}
	lat, _ = number(l[0])
	lng, _ = number(l[1])
	return lat, lng
}
