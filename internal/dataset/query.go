package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadFilter is returned for malformed filter expressions.
var ErrBadFilter = errors.New("invalid filter")

// Query is a set of active filters plus an optional sort, as selected by a
// user. Filters are ANDed and applied before sorting.
type Query struct {
	Filters   []Predicate
	SortBy    *Column
	Ascending bool
	// Limit truncates the result; 0 means no limit.
	Limit int
}

// Apply evaluates q against v.
func (q Query) Apply(v View) View {
	out := v.Filter(q.Filters...)
	if q.SortBy != nil {
		out = out.Sort(*q.SortBy, q.Ascending)
	}
	if q.Limit > 0 && out.Len() > q.Limit {
		out.idx = out.idx[:q.Limit]
	}
	return out
}

// ParseThreshold parses "column:min", e.g. "population:100000".
func ParseThreshold(s string) (Predicate, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Predicate{}, fmt.Errorf("%w %q: want column:min", ErrBadFilter, s)
	}
	c, err := filterColumn(parts[0])
	if err != nil {
		return Predicate{}, err
	}
	min, err := parseBound(s, parts[1])
	if err != nil {
		return Predicate{}, err
	}
	return Threshold(c, min), nil
}

// ParseRange parses "column:min:max", e.g. "area:0:500". Either bound may be
// left empty to mean unbounded on that side.
func ParseRange(s string) (Predicate, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Predicate{}, fmt.Errorf("%w %q: want column:min:max", ErrBadFilter, s)
	}
	c, err := filterColumn(parts[0])
	if err != nil {
		return Predicate{}, err
	}
	min, max := math.Inf(-1), math.Inf(1)
	if strings.TrimSpace(parts[1]) != "" {
		if min, err = parseBound(s, parts[1]); err != nil {
			return Predicate{}, err
		}
	}
	if strings.TrimSpace(parts[2]) != "" {
		if max, err = parseBound(s, parts[2]); err != nil {
			return Predicate{}, err
		}
	}
	return Range(c, min, max), nil
}

// ParseSort resolves a sort column and direction ("asc" or "desc").
func ParseSort(column, order string) (*Column, bool, error) {
	asc := true
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", "asc", "ascending", "ascendente":
	case "desc", "descending", "descendente":
		asc = false
	default:
		return nil, true, fmt.Errorf("invalid sort order: %s (use asc|desc)", order)
	}
	if strings.TrimSpace(column) == "" {
		return nil, asc, nil
	}
	c, err := ParseColumn(column)
	if err != nil {
		return nil, asc, err
	}
	return &c, asc, nil
}

func filterColumn(name string) (Column, error) {
	c, err := ParseColumn(name)
	if err != nil {
		return 0, err
	}
	if !c.Numeric() {
		return 0, fmt.Errorf("%w: column %s is not numeric", ErrBadFilter, c.Key())
	}
	return c, nil
}

func parseBound(expr, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrBadFilter, expr, err)
	}
	if math.IsNaN(f) {
		return 0, fmt.Errorf("%w %q: bound is not a number", ErrBadFilter, expr)
	}
	return f, nil
}

// NewQuery parses user-supplied filter and sort strings into a Query.
// thresholds use the "column:min" form and ranges "column:min:max".
func NewQuery(thresholds, ranges []string, sortColumn, order string, limit int) (Query, error) {
	var q Query
	for _, s := range thresholds {
		p, err := ParseThreshold(s)
		if err != nil {
			return Query{}, err
		}
		q.Filters = append(q.Filters, p)
	}
	for _, s := range ranges {
		p, err := ParseRange(s)
		if err != nil {
			return Query{}, err
		}
		q.Filters = append(q.Filters, p)
	}
	col, asc, err := ParseSort(sortColumn, order)
	if err != nil {
		return Query{}, err
	}
	if limit < 0 {
		return Query{}, fmt.Errorf("invalid limit: %d", limit)
	}
	q.SortBy, q.Ascending, q.Limit = col, asc, limit
	return q, nil
}
