// Package export turns dataset views into downloadable byte blobs: CSV,
// single-sheet XLSX workbooks, PNG charts and map markers. Nothing here
// touches the filesystem; callers decide where the bytes go.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/KaramelBytes/countrydash/internal/dataset"
)

const (
	CSVFilename   = "datos_filtrados.csv"
	XLSXFilename  = "datos_filtrados.xlsx"
	ChartFilename = "grafico.png"

	CSVContentType  = "text/csv"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	PNGContentType  = "image/png"
)

// Download is an export ready to hand to a browser or write to disk.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Format selects a tabular export format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv", "xlsx" and "excel".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "csv", "CSV":
		return FormatCSV, nil
	case "xlsx", "XLSX", "excel", "Excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format: %s (use csv|xlsx)", s)
}

// Table exports v in the given format with its suggested filename.
func Table(v dataset.View, f Format) (*Download, error) {
	switch f {
	case FormatCSV:
		b, err := ToCSV(v)
		if err != nil {
			return nil, err
		}
		return &Download{Filename: CSVFilename, ContentType: CSVContentType, Data: b}, nil
	case FormatXLSX:
		b, err := ToXLSX(v)
		if err != nil {
			return nil, err
		}
		return &Download{Filename: XLSXFilename, ContentType: XLSXContentType, Data: b}, nil
	}
	return nil, fmt.Errorf("unsupported export format: %s", f)
}

// ToCSV writes a header row of column labels followed by one record per row.
// There is no index column. An empty view yields the header only.
func ToCSV(v dataset.View) ([]byte, error) {
	cols := dataset.Columns()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(dataset.Labels(cols)); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	rec := make([]string, len(cols))
	for i := 0; i < v.Len(); i++ {
		row := v.Row(i)
		for j, c := range cols {
			rec[j] = row.Text(c)
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
