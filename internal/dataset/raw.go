package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotArray indicates the payload is not a JSON array of records.
var ErrNotArray = errors.New("payload is not a JSON array")

// RawCountry is one record as delivered by the country API. Every field is
// optional and loosely typed; Normalize is the only place that interprets them.
type RawCountry struct {
	// Name is usually an object {"common": ..., "official": ...}; a bare
	// string is accepted too.
	Name       any `json:"name,omitempty"`
	Region     any `json:"region,omitempty"`
	Population any `json:"population,omitempty"`
	Area       any `json:"area,omitempty"`
	Borders    any `json:"borders,omitempty"`
	Languages  any `json:"languages,omitempty"`
	Timezones  any `json:"timezones,omitempty"`
	LatLng     any `json:"latlng,omitempty"`
}

// DecodeRaw reads a JSON array of country records. It fails only when the
// payload itself is not an array; elements that are not objects decode to an
// empty RawCountry so they still produce a (fully defaulted) row.
func DecodeRaw(r io.Reader) ([]RawCountry, error) {
	var items []json.RawMessage
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) {
			return nil, fmt.Errorf("%w: got %s", ErrNotArray, ute.Value)
		}
		return nil, fmt.Errorf("decode countries: %w", err)
	}
	out := make([]RawCountry, len(items))
	for i, item := range items {
		var rc RawCountry
		if err := json.Unmarshal(item, &rc); err != nil {
			// not an object (number, string, array...): keep the empty record
			continue
		}
		out[i] = rc
	}
	return out, nil
}
