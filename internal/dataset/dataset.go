package dataset

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Dataset is the ordered, immutable table produced by one fetch.
type Dataset struct {
	ID        string
	Source    string
	FetchedAt time.Time

	rows []CountryRow
}

// Option customizes Build.
type Option func(*Dataset)

// WithSource records where the records came from (URL or file path).
func WithSource(src string) Option { return func(d *Dataset) { d.Source = src } }

// WithFetchedAt overrides the fetch timestamp (defaults to time.Now).
func WithFetchedAt(t time.Time) Option { return func(d *Dataset) { d.FetchedAt = t } }

// Build normalizes every raw record, in order. Degenerate records are kept as
// fully defaulted rows, and an empty input yields a valid empty Dataset.
func Build(raws []RawCountry, opts ...Option) *Dataset {
	rows := make([]CountryRow, len(raws))
	for i, r := range raws {
		rows[i] = Normalize(r)
	}
	return newDataset(rows, opts)
}

// FromRows wraps already-normalized rows, e.g. rows read back from an export.
// The slice is copied.
func FromRows(rows []CountryRow, opts ...Option) *Dataset {
	cp := make([]CountryRow, len(rows))
	copy(cp, rows)
	return newDataset(cp, opts)
}

// BuildJSON decodes a JSON array payload and builds the Dataset.
func BuildJSON(r io.Reader, opts ...Option) (*Dataset, error) {
	raws, err := DecodeRaw(r)
	if err != nil {
		return nil, err
	}
	return Build(raws, opts...), nil
}

// Empty returns a Dataset with no rows.
func Empty(opts ...Option) *Dataset { return newDataset(nil, opts) }

func newDataset(rows []CountryRow, opts []Option) *Dataset {
	d := &Dataset{
		ID:        uuid.NewString(),
		FetchedAt: time.Now(),
		rows:      rows,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Len reports the number of rows. A nil Dataset has none.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Row returns the i-th row in input order.
func (d *Dataset) Row(i int) CountryRow { return d.rows[i] }

// Rows returns a copy of all rows in input order.
func (d *Dataset) Rows() []CountryRow {
	cp := make([]CountryRow, d.Len())
	if d != nil {
		copy(cp, d.rows)
	}
	return cp
}

// View returns a View over every row in input order.
func (d *Dataset) View() View {
	idx := make([]int, d.Len())
	for i := range idx {
		idx[i] = i
	}
	return View{ds: d, idx: idx}
}
