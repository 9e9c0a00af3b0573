package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/countrydash/internal/export"
	"github.com/KaramelBytes/countrydash/internal/parser"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const payload = `[
  {"name":{"common":"Chile"},"region":"Americas","population":19116209,"area":756102,"borders":["ARG","BOL","PER"],"languages":{"spa":"Spanish"},"timezones":["UTC-06:00","UTC-04:00"],"latlng":[-30,-71]},
  {"name":{"common":"Andorra"},"region":"Europe","population":77265,"area":468,"borders":["FRA","ESP"],"languages":{"cat":"Catalan"},"timezones":["UTC+01:00"],"latlng":[42.5,1.5]},
  {"name":{"common":"Bouvet Island"},"region":"Antarctic","population":0,"area":49,"languages":null,"timezones":["UTC+01:00"]}
]`

// resetFlags clears flag state left behind by a previous Execute.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd executes the root command with args and returns its stdout.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func execCmd(args ...string) (string, error) {
	resetFlags(rootCmd)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writePayload(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "countries.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	return path
}

func TestCLI_TableFilterSort(t *testing.T) {
	in := writePayload(t)

	out := runCmd(t, "table", "-i", in, "--min", "population:1", "--sort", "name", "--format", "json")
	var rows []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode table json: %v\n%s", err, out)
	}
	if len(rows) != 2 || rows[0].Name != "Andorra" || rows[1].Name != "Chile" {
		t.Fatalf("rows = %+v", rows)
	}

	out = runCmd(t, "table", "-i", in, "--sort", "area", "--desc", "--limit", "1")
	if !strings.Contains(out, "| Chile |") || strings.Contains(out, "Andorra") || !strings.Contains(out, "1 of 3 rows") {
		t.Fatalf("markdown table:\n%s", out)
	}

	out = runCmd(t, "table", "-i", in, "--range", "area:0:500", "--format", "csv")
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 3 {
		t.Fatalf("csv lines = %d\n%s", len(lines), out)
	}
}

func TestCLI_Stats(t *testing.T) {
	in := writePayload(t)
	out := runCmd(t, "stats", "-i", in, "border_count")
	if !strings.Contains(out, "count=3 mean=1.67 median=2.00 stddev=1.53 min=0.00 max=3.00") {
		t.Fatalf("stats:\n%s", out)
	}
	out = runCmd(t, "stats", "-i", in, "--min", "population:1000000", "area")
	if !strings.Contains(out, "count=1") || !strings.Contains(out, "stddev=n/a") {
		t.Fatalf("single-row stats:\n%s", out)
	}
	if _, err := execCmd("stats", "-i", in, "region"); err == nil {
		t.Fatalf("expected error for text column")
	}
}

func TestCLI_Describe(t *testing.T) {
	in := writePayload(t)
	out := runCmd(t, "describe", "-i", in, "--sample-rows", "0")
	for _, want := range []string{"[DATASET SUMMARY]", "[STATISTICS]", "[REGIONS]"} {
		if !strings.Contains(out, want) {
			t.Errorf("describe missing %s:\n%s", want, out)
		}
	}
	if strings.Contains(out, "[HEAD]") {
		t.Errorf("--sample-rows 0 should omit samples")
	}
}

func TestCLI_ExportRoundTrip(t *testing.T) {
	in := writePayload(t)
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "out", "filtered.csv")
	runCmd(t, "export", "-i", in, "--min", "population:1", "-o", csvPath)
	ds, err := parser.LoadFile(csvPath)
	if err != nil {
		t.Fatalf("reload csv: %v", err)
	}
	if ds.Len() != 2 || ds.Row(0).Name != "Chile" || ds.Row(0).BorderCount != 3 {
		t.Fatalf("csv round trip: %+v", ds.Rows())
	}

	xlsxPath := filepath.Join(dir, export.XLSXFilename)
	runCmd(t, "export", "-i", in, "--format", "xlsx", "-o", xlsxPath)
	ds, err = parser.LoadFile(xlsxPath)
	if err != nil {
		t.Fatalf("reload xlsx: %v", err)
	}
	if ds.Len() != 3 || ds.Row(1).Name != "Andorra" || ds.Row(1).Latitude != 42.5 {
		t.Fatalf("xlsx round trip: %+v", ds.Rows())
	}

	if _, err := execCmd("export", "-i", in, "--format", "pdf"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestCLI_ChartAndMarkers(t *testing.T) {
	in := writePayload(t)
	png := filepath.Join(t.TempDir(), export.ChartFilename)
	runCmd(t, "chart", "-i", in, "--x", "region", "--y", "population", "--kind", "scatter", "-o", png)
	b, err := os.ReadFile(png)
	if err != nil || !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Fatalf("chart not written as png: %v", err)
	}
	if _, err := execCmd("chart", "-i", in, "--y", "name"); err == nil {
		t.Fatalf("expected error for text y axis")
	}

	out := runCmd(t, "markers", "-i", in)
	var ms []export.Marker
	if err := json.Unmarshal([]byte(out), &ms); err != nil || len(ms) != 2 {
		t.Fatalf("markers = %v (%v)", ms, err)
	}
	out = runCmd(t, "markers", "-i", in, "--geojson")
	if !strings.Contains(out, `"FeatureCollection"`) {
		t.Fatalf("geojson:\n%s", out)
	}
}

func TestCLI_ColumnsAndConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	out := runCmd(t, "columns")
	if !strings.Contains(out, "- population: Población Total (numeric)") {
		t.Fatalf("columns:\n%s", out)
	}

	cfgPath := filepath.Join(home, "config.yaml")
	runCmd(t, "--config", cfgPath, "config", "set", "output_dir", "exports")
	cfg = nil
	runCmd(t, "--config", cfgPath, "config", "set", "chart_width_in", "12")
	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(b), "output_dir: exports") || !strings.Contains(string(b), "chart_width_in: 12") {
		t.Fatalf("saved config:\n%s", b)
	}
	if _, err := execCmd("--config", cfgPath, "config", "set", "nope", "1"); err == nil {
		t.Fatalf("expected unknown key error")
	}
	cfg = nil
}
