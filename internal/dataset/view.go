package dataset

import (
	"fmt"
	"sort"
)

// View is a sorted and/or filtered projection of a Dataset. It only holds row
// indices; the Dataset is never modified and every operation returns a new View.
type View struct {
	ds  *Dataset
	idx []int
}

func (v View) Len() int { return len(v.idx) }

// Row returns the i-th row of the view.
func (v View) Row(i int) CountryRow { return v.ds.rows[v.idx[i]] }

// Rows materializes the view.
func (v View) Rows() []CountryRow {
	out := make([]CountryRow, len(v.idx))
	for i, j := range v.idx {
		out[i] = v.ds.rows[j]
	}
	return out
}

// Dataset returns the Dataset the view projects.
func (v View) Dataset() *Dataset { return v.ds }

// Sort orders the view by c: numerically for numeric columns, lexicographically
// for text. The sort is stable in both directions, so rows with equal keys keep
// their relative order.
func (v View) Sort(c Column, ascending bool) View {
	idx := make([]int, len(v.idx))
	copy(idx, v.idx)
	less := func(a, b int) bool { return compare(v.ds.rows[a], v.ds.rows[b], c) < 0 }
	if !ascending {
		less = func(a, b int) bool { return compare(v.ds.rows[a], v.ds.rows[b], c) > 0 }
	}
	sort.SliceStable(idx, func(i, j int) bool { return less(idx[i], idx[j]) })
	return View{ds: v.ds, idx: idx}
}

func compare(a, b CountryRow, c Column) int {
	if c.Numeric() {
		x, _ := a.Float(c)
		y, _ := b.Float(c)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	x, y := a.Text(c), b.Text(c)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// Predicate decides whether a row belongs to a filtered view.
type Predicate struct {
	Column Column
	Min    float64
	Max    float64
	// Bounded is false for threshold predicates (no upper bound).
	Bounded bool
}

// Threshold matches rows where c >= min.
func Threshold(c Column, min float64) Predicate { return Predicate{Column: c, Min: min} }

// Range matches rows where min <= c <= max. min > max matches nothing.
func Range(c Column, min, max float64) Predicate {
	return Predicate{Column: c, Min: min, Max: max, Bounded: true}
}

// Match reports whether row satisfies p. Text columns never match.
func (p Predicate) Match(row CountryRow) bool {
	x, ok := row.Float(p.Column)
	if !ok || x < p.Min {
		return false
	}
	return !p.Bounded || x <= p.Max
}

func (p Predicate) String() string {
	if p.Bounded {
		return fmt.Sprintf("%s:%g:%g", p.Column.Key(), p.Min, p.Max)
	}
	return fmt.Sprintf("%s:%g", p.Column.Key(), p.Min)
}

// Filter keeps the rows matching every predicate. No predicates keeps all rows.
func (v View) Filter(preds ...Predicate) View {
	idx := make([]int, 0, len(v.idx))
rows:
	for _, j := range v.idx {
		for _, p := range preds {
			if !p.Match(v.ds.rows[j]) {
				continue rows
			}
		}
		idx = append(idx, j)
	}
	return View{ds: v.ds, idx: idx}
}

// FilterThreshold keeps rows where c >= min.
func (v View) FilterThreshold(c Column, min float64) View { return v.Filter(Threshold(c, min)) }

// FilterRange keeps rows where min <= c <= max.
func (v View) FilterRange(c Column, min, max float64) View { return v.Filter(Range(c, min, max)) }
