package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/KaramelBytes/countrydash/internal/dataset"
	"github.com/xuri/excelize/v2"
)

type csvLoader struct {
	ext   string
	delim rune
}

func (l csvLoader) CanLoad(filename string) bool { return hasExt(filename, l.ext) }

func (l csvLoader) Load(r io.Reader) (*dataset.Dataset, error) { return ReadCSV(r, l.delim) }

// ReadCSV reads a delimited table with a header row.
func ReadCSV(r io.Reader, delim rune) (*dataset.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if delim != 0 {
		cr.Comma = delim
	}
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return dataset.Empty(), nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	var recs [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(recs)+1, err)
		}
		recs = append(recs, rec)
	}
	return dataset.FromRows(rowsFromTable(header, recs)), nil
}

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(filename string) bool { return hasExt(filename, ".xlsx") }

func (xlsxLoader) Load(r io.Reader) (*dataset.Dataset, error) { return ReadXLSX(r, "") }

// ReadXLSX reads the named sheet, or the first sheet when sheet is empty.
func ReadXLSX(r io.Reader, sheet string) (*dataset.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return dataset.Empty(), nil
	}
	return dataset.FromRows(rowsFromTable(rows[0], rows[1:])), nil
}
