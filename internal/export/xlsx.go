package export

import (
	"fmt"

	"github.com/KaramelBytes/countrydash/internal/dataset"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the only worksheet in exported workbooks.
const SheetName = "Datos"

// ToXLSX writes v into a single-sheet workbook held in memory. Numeric columns
// are stored as numbers, not strings.
func ToXLSX(v dataset.View) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	cols := dataset.Columns()
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c.Label()
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	vals := make([]any, len(cols))
	for i := 0; i < v.Len(); i++ {
		row := v.Row(i)
		for j, c := range cols {
			vals[j] = row.Value(c)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &vals); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
