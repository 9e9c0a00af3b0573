// Package parser loads a Dataset from a local file: a saved API payload
// (.json) or a table produced by the exporter (.csv, .tsv, .xlsx).
package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/countrydash/internal/dataset"
)

// Loader reads one file format into a Dataset.
type Loader interface {
	CanLoad(filename string) bool
	Load(r io.Reader) (*dataset.Dataset, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// ErrUnsupported indicates no loader accepts the file extension.
var ErrUnsupported = errors.New("unsupported input format")

// LoadFile selects a loader by filename and builds a Dataset whose Source is
// the file path.
func LoadFile(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	for _, l := range registry {
		if !l.CanLoad(path) {
			continue
		}
		ds, err := l.Load(f)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
		}
		ds.Source = path
		return ds, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

func init() {
	Register(jsonLoader{})
	Register(csvLoader{ext: ".csv", delim: ','})
	Register(csvLoader{ext: ".tsv", delim: '\t'})
	Register(xlsxLoader{})
}

func hasExt(filename string, exts ...string) bool {
	name := strings.ToLower(filename)
	for _, e := range exts {
		if strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}

type jsonLoader struct{}

func (jsonLoader) CanLoad(filename string) bool { return hasExt(filename, ".json") }

func (jsonLoader) Load(r io.Reader) (*dataset.Dataset, error) { return dataset.BuildJSON(r) }

// rowsFromTable maps a header plus records back to CountryRows. Headers may be
// column keys or labels; unknown headers are ignored and missing columns take
// their defaults. Cells are coerced by CountryRow.Set, so an unparseable,
// negative or non-finite number becomes 0 exactly as it would from the API.
func rowsFromTable(header []string, records [][]string) []dataset.CountryRow {
	cols := make([]*dataset.Column, len(header))
	for i, h := range header {
		if c, err := dataset.ParseColumn(strings.TrimPrefix(h, "\ufeff")); err == nil {
			cols[i] = &c
		}
	}
	rows := make([]dataset.CountryRow, 0, len(records))
	for _, rec := range records {
		row := dataset.CountryRow{Name: dataset.NotAvailable, Region: dataset.NotAvailable}
		for i, cell := range rec {
			if i >= len(cols) || cols[i] == nil {
				continue
			}
			if cell = strings.TrimSpace(cell); cell != "" {
				row.Set(*cols[i], cell)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
