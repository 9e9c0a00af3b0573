package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/countrydash/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// ErrNotNumeric is returned when statistics are requested for a text column.
var ErrNotNumeric = errors.New("column is not numeric")

// Summary holds descriptive statistics of one numeric column over a view.
// Undefined values are NaN: every field for an empty view, StdDev for a
// single row.
type Summary struct {
	Column dataset.Column
	Count  int
	Mean   float64
	Median float64
	// StdDev is the sample standard deviation (N-1 denominator).
	StdDev float64
	Min    float64
	Max    float64
}

// Stats computes mean, median and sample standard deviation of c over v.
func Stats(v dataset.View, c dataset.Column) (Summary, error) {
	if !c.Numeric() {
		return Summary{}, fmt.Errorf("stats on %s: %w", c.Key(), ErrNotNumeric)
	}
	xs := values(v, c)
	s := Summary{Column: c, Count: len(xs), Mean: math.NaN(), Median: math.NaN(), StdDev: math.NaN(), Min: math.NaN(), Max: math.NaN()}
	if len(xs) == 0 {
		return s, nil
	}
	s.Mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		s.StdDev = stat.StdDev(xs, nil)
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	s.Median = quantile(sorted, 0.5)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	return s, nil
}

func values(v dataset.View, c dataset.Column) []float64 {
	xs := make([]float64, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if x, ok := v.Row(i).Float(c); ok {
			xs = append(xs, x)
		}
	}
	return xs
}

// quantile interpolates linearly between the closest ranks, so the median of an
// even-sized sample is the mean of the two middle values.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
