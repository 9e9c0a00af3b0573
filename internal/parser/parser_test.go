package parser_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/countrydash/internal/dataset"
	"github.com/KaramelBytes/countrydash/internal/export"
	"github.com/KaramelBytes/countrydash/internal/parser"
)

func sample() *dataset.Dataset {
	return dataset.FromRows([]dataset.CountryRow{
		{Name: "Andorra", Region: "Europe", Population: 77265, Area: 468, BorderCount: 2, OfficialLanguageCount: 1, TimezoneCount: 1, Latitude: 42.5, Longitude: 1.5},
		{Name: "Chile, República de", Region: "Americas", Population: 19116209, Area: 756102.4, BorderCount: 3, OfficialLanguageCount: 1, TimezoneCount: 3, Latitude: -30, Longitude: -71},
		{Name: dataset.NotAvailable, Region: dataset.NotAvailable},
	})
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func assertSameRows(t *testing.T, got, want []dataset.CountryRow) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("rows = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoadFileRoundTripsCSVExport(t *testing.T) {
	b, err := export.ToCSV(sample().View())
	if err != nil {
		t.Fatalf("ToCSV: %v", err)
	}
	p := writeFile(t, "datos_filtrados.csv", b)
	ds, err := parser.LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	assertSameRows(t, ds.Rows(), sample().Rows())
	if ds.Source != p {
		t.Fatalf("source = %q", ds.Source)
	}
}

func TestLoadFileRoundTripsXLSXExport(t *testing.T) {
	b, err := export.ToXLSX(sample().View())
	if err != nil {
		t.Fatalf("ToXLSX: %v", err)
	}
	ds, err := parser.LoadFile(writeFile(t, "datos_filtrados.xlsx", b))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	assertSameRows(t, ds.Rows(), sample().Rows())
}

func TestLoadFileJSONPayload(t *testing.T) {
	p := writeFile(t, "countries.json", []byte(`[{"name":{"common":"Peru"},"region":"Americas","borders":["BOL","BRA"]},{}]`))
	ds, err := parser.LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if ds.Len() != 2 || ds.Row(0).BorderCount != 2 || ds.Row(1).Name != dataset.NotAvailable {
		t.Fatalf("rows = %+v", ds.Rows())
	}
}

func TestReadCSVKeysAndMissingColumns(t *testing.T) {
	in := "name,population,unknown\nBhutan,777486,x\n,not-a-number,y\n"
	ds, err := parser.ReadCSV(strings.NewReader(in), ',')
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	want := []dataset.CountryRow{
		{Name: "Bhutan", Region: dataset.NotAvailable, Population: 777486},
		{Name: dataset.NotAvailable, Region: dataset.NotAvailable},
	}
	assertSameRows(t, ds.Rows(), want)

	empty, err := parser.ReadCSV(strings.NewReader(""), ',')
	if err != nil || empty.Len() != 0 {
		t.Fatalf("empty input: %v %v", empty, err)
	}
}

func TestLoadFileUnsupported(t *testing.T) {
	p := writeFile(t, "notes.txt", []byte("hello"))
	if _, err := parser.LoadFile(p); !errors.Is(err, parser.ErrUnsupported) {
		t.Fatalf("want ErrUnsupported, got %v", err)
	}
}

func TestLoadFileTSV(t *testing.T) {
	p := writeFile(t, "countries.tsv", []byte("name\tregion\tpopulation\nAndorra\tEurope\t77265\n"))
	ds, err := parser.LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if ds.Len() != 1 || ds.Row(0).Name != "Andorra" || ds.Row(0).Population != 77265 {
		t.Fatalf("rows = %+v", ds.Rows())
	}
}

func TestReadCSVCoercesOverflowAndNonFiniteCells(t *testing.T) {
	in := "name,population,area,latitude,longitude,border_count\nX,1e19,Inf,NaN,-Inf,-3\nY,-5,12.5,10,20,2\n"
	ds, err := parser.ReadCSV(strings.NewReader(in), ',')
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	want := []dataset.CountryRow{
		{Name: "X", Region: dataset.NotAvailable, Population: math.MaxInt64},
		{Name: "Y", Region: dataset.NotAvailable, Area: 12.5, Latitude: 10, Longitude: 20, BorderCount: 2},
	}
	assertSameRows(t, ds.Rows(), want)

	for _, kind := range []export.ChartKind{export.ChartBar, export.ChartScatter} {
		if _, err := export.RenderChart(ds.View(), dataset.ColName, dataset.ColArea, kind, export.DefaultChartOptions()); err != nil {
			t.Fatalf("%s chart over loaded rows: %v", kind, err)
		}
	}
}
