package dataset

import (
	"math"
	"strings"
	"testing"
)

const samplePayload = `[
  {"name":{"common":"Andorra","official":"Principality of Andorra"},"region":"Europe","population":77265,"area":468,
   "borders":["FRA","ESP"],"languages":{"cat":"Catalan"},"timezones":["UTC+01:00"],"latlng":[42.5,1.5]},
  {"name":{"common":"Antarctica"},"region":"Antarctic","population":1000,"area":14000000,"languages":null,"timezones":["UTC-03:00","UTC+03:00"]},
  {},
  42,
  {"name":"Plain","population":"1500","area":"12.5","borders":"oops","languages":["x"],"latlng":[10]}
]`

func TestNormalizeEmptyRecordIsFullyDefaulted(t *testing.T) {
	row := Normalize(RawCountry{})
	want := CountryRow{Name: NotAvailable, Region: NotAvailable}
	if row != want {
		t.Fatalf("unexpected defaults: %+v", row)
	}
}

func TestNormalizeLanguagesNullAndAbsent(t *testing.T) {
	raws, err := DecodeRaw(strings.NewReader(`[{"languages":null},{"region":"Asia"}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i, r := range raws {
		if got := Normalize(r).OfficialLanguageCount; got != 0 {
			t.Errorf("record %d: official_language_count = %d, want 0", i, got)
		}
	}
}

func TestNormalizeFullRecord(t *testing.T) {
	raws, err := DecodeRaw(strings.NewReader(samplePayload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := Normalize(raws[0])
	want := CountryRow{
		Name: "Andorra", Region: "Europe", Population: 77265, Area: 468,
		BorderCount: 2, OfficialLanguageCount: 1, TimezoneCount: 1,
		Latitude: 42.5, Longitude: 1.5,
	}
	if got != want {
		t.Fatalf("got %+v\nwant %+v", got, want)
	}
}

func TestNormalizeCoercesAndRejectsMistypedFields(t *testing.T) {
	raws, err := DecodeRaw(strings.NewReader(samplePayload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := Normalize(raws[4])
	if got.Name != "Plain" {
		t.Errorf("bare string name: %q", got.Name)
	}
	if got.Population != 1500 || got.Area != 12.5 {
		t.Errorf("numeric strings not coerced: pop=%d area=%v", got.Population, got.Area)
	}
	if got.BorderCount != 0 || got.OfficialLanguageCount != 0 {
		t.Errorf("mistyped containers should count 0: %+v", got)
	}
	if got.Latitude != 0 || got.Longitude != 0 {
		t.Errorf("short latlng should default: %v,%v", got.Latitude, got.Longitude)
	}
}

func TestNormalizeClampsNegativesAndBooleans(t *testing.T) {
	cases := []struct {
		name string
		raw  RawCountry
	}{
		{"negative", RawCountry{Population: -5.0, Area: -1.0}},
		{"bool", RawCountry{Population: true, Area: true}},
		{"object", RawCountry{Population: map[string]any{"v": 1.0}, Area: []any{1.0}}},
		{"blank name", RawCountry{Name: map[string]any{"common": "  "}, Region: 7.0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := Normalize(tc.raw)
			if row.Population != 0 || row.Area != 0 {
				t.Errorf("pop=%d area=%v, want zeros", row.Population, row.Area)
			}
			if row.Name != NotAvailable || row.Region != NotAvailable {
				t.Errorf("name=%q region=%q", row.Name, row.Region)
			}
		})
	}
}

func TestBuildKeepsOrderAndDegenerateRecords(t *testing.T) {
	ds, err := BuildJSON(strings.NewReader(samplePayload), WithSource("test"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if ds.Len() != 5 {
		t.Fatalf("rows = %d, want 5", ds.Len())
	}
	names := []string{"Andorra", "Antarctica", NotAvailable, NotAvailable, "Plain"}
	for i, n := range names {
		if ds.Row(i).Name != n {
			t.Errorf("row %d name = %q, want %q", i, ds.Row(i).Name, n)
		}
	}
	if ds.Row(1).TimezoneCount != 2 {
		t.Errorf("timezone_count = %d", ds.Row(1).TimezoneCount)
	}
	if ds.Source != "test" || ds.ID == "" {
		t.Errorf("metadata not set: %+v", ds)
	}
}

func TestBuildEmpty(t *testing.T) {
	ds := Build(nil)
	if ds.Len() != 0 || ds.View().Len() != 0 || len(ds.Rows()) != 0 {
		t.Fatalf("expected empty dataset")
	}
	var nilDS *Dataset
	if nilDS.Len() != 0 {
		t.Fatalf("nil dataset should be empty")
	}
}

func TestDecodeRawRejectsNonArray(t *testing.T) {
	for _, in := range []string{`{"name":"x"}`, `"text"`, `not json`} {
		if _, err := DecodeRaw(strings.NewReader(in)); err == nil {
			t.Errorf("expected error for %s", in)
		}
	}
	raws, err := DecodeRaw(strings.NewReader(`[]`))
	if err != nil || len(raws) != 0 {
		t.Fatalf("empty array: %v %v", raws, err)
	}
}

func TestCountryRowSetCoercesLikeNormalize(t *testing.T) {
	var row CountryRow
	row.Set(ColName, "  ")
	row.Set(ColRegion, "Europe")
	row.Set(ColPopulation, "1e19")
	row.Set(ColArea, "Inf")
	row.Set(ColBorderCount, "-2")
	row.Set(ColLanguageCount, "3")
	row.Set(ColTimezoneCount, "NaN")
	row.Set(ColLatitude, "NaN")
	row.Set(ColLongitude, "-71.5")
	want := CountryRow{
		Name: NotAvailable, Region: "Europe", Population: math.MaxInt64,
		OfficialLanguageCount: 3, Longitude: -71.5,
	}
	if row != want {
		t.Fatalf("got %+v\nwant %+v", row, want)
	}
}
