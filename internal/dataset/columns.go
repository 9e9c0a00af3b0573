package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownColumn is returned when a column name or label is not recognized.
var ErrUnknownColumn = errors.New("unknown column")

// Column identifies one field of a CountryRow.
type Column int

const (
	ColName Column = iota
	ColRegion
	ColPopulation
	ColArea
	ColBorderCount
	ColLanguageCount
	ColTimezoneCount
	ColLatitude
	ColLongitude
)

// Kind is the value domain of a column.
type Kind string

const (
	KindText    Kind = "text"
	KindNumeric Kind = "numeric"
)

type columnDef struct {
	key   string
	label string
	kind  Kind
}

var columnDefs = [...]columnDef{
	ColName:          {"name", "Nombre Común", KindText},
	ColRegion:        {"region", "Región Geográfica", KindText},
	ColPopulation:    {"population", "Población Total", KindNumeric},
	ColArea:          {"area", "Área en km²", KindNumeric},
	ColBorderCount:   {"border_count", "Número de Fronteras", KindNumeric},
	ColLanguageCount: {"official_language_count", "Número de Idiomas Oficiales", KindNumeric},
	ColTimezoneCount: {"timezone_count", "Número de Zonas Horarias", KindNumeric},
	ColLatitude:      {"latitude", "Latitud", KindNumeric},
	ColLongitude:     {"longitude", "Longitud", KindNumeric},
}

// Columns returns every column in export order.
func Columns() []Column {
	out := make([]Column, len(columnDefs))
	for i := range columnDefs {
		out[i] = Column(i)
	}
	return out
}

// StatColumns returns the columns offered for statistics: the numeric
// attributes of a country, excluding coordinates.
func StatColumns() []Column {
	return []Column{ColPopulation, ColArea, ColBorderCount, ColLanguageCount, ColTimezoneCount}
}

// Labels returns the header labels for cols.
func Labels(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Label()
	}
	return out
}

func (c Column) valid() bool { return c >= 0 && int(c) < len(columnDefs) }

// Key is the snake_case identifier used by flags and query parameters.
func (c Column) Key() string {
	if !c.valid() {
		return fmt.Sprintf("column(%d)", int(c))
	}
	return columnDefs[c].key
}

// Label is the human-readable header used in exports.
func (c Column) Label() string {
	if !c.valid() {
		return c.Key()
	}
	return columnDefs[c].label
}

func (c Column) Kind() Kind {
	if !c.valid() {
		return KindText
	}
	return columnDefs[c].kind
}

func (c Column) Numeric() bool { return c.Kind() == KindNumeric }

func (c Column) String() string { return c.Key() }

// ParseColumn resolves a column by key or header label, case-insensitively.
func ParseColumn(s string) (Column, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for i, d := range columnDefs {
		if want == d.key || want == strings.ToLower(d.label) {
			return Column(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, s)
}

// Float returns the numeric value of c for the row. ok is false for text columns.
func (r CountryRow) Float(c Column) (v float64, ok bool) {
	switch c {
	case ColPopulation:
		return float64(r.Population), true
	case ColArea:
		return r.Area, true
	case ColBorderCount:
		return float64(r.BorderCount), true
	case ColLanguageCount:
		return float64(r.OfficialLanguageCount), true
	case ColTimezoneCount:
		return float64(r.TimezoneCount), true
	case ColLatitude:
		return r.Latitude, true
	case ColLongitude:
		return r.Longitude, true
	}
	return 0, false
}

// Text returns the string form of c for the row, as written to CSV.
func (r CountryRow) Text(c Column) string {
	switch c {
	case ColName:
		return r.Name
	case ColRegion:
		return r.Region
	case ColPopulation:
		return strconv.FormatInt(r.Population, 10)
	case ColBorderCount:
		return strconv.Itoa(r.BorderCount)
	case ColLanguageCount:
		return strconv.Itoa(r.OfficialLanguageCount)
	case ColTimezoneCount:
		return strconv.Itoa(r.TimezoneCount)
	}
	if v, ok := r.Float(c); ok {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// Value returns the typed value of c: string, int64, int or float64.
func (r CountryRow) Value(c Column) any {
	switch c {
	case ColName:
		return r.Name
	case ColRegion:
		return r.Region
	case ColPopulation:
		return r.Population
	case ColArea:
		return r.Area
	case ColBorderCount:
		return r.BorderCount
	case ColLanguageCount:
		return r.OfficialLanguageCount
	case ColTimezoneCount:
		return r.TimezoneCount
	case ColLatitude:
		return r.Latitude
	case ColLongitude:
		return r.Longitude
	}
	return nil
}
