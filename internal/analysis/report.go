package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/countrydash/internal/dataset"
)

// Report is a markdown-friendly description of a view.
type Report struct {
	Source    string
	FetchedAt time.Time
	Rows      int
	Total     int
	Cols      []Summary
	Regions   []CategoryCount
	Samples   []dataset.CountryRow
	Warnings  []string
}

type CategoryCount struct {
	Value string
	Count int
}

// ReportOptions controls Describe.
type ReportOptions struct {
	// SampleRows is how many leading rows to include; 0 disables samples.
	SampleRows int
	// TopRegions caps the region breakdown; 0 means all regions.
	TopRegions int
}

// DefaultReportOptions returns reasonable defaults for Describe.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{SampleRows: 5, TopRegions: 8}
}

// Describe summarizes every statistics column of v and counts rows per region.
func Describe(v dataset.View, opt ReportOptions) *Report {
	rep := &Report{Rows: v.Len()}
	if ds := v.Dataset(); ds != nil {
		rep.Source = ds.Source
		rep.FetchedAt = ds.FetchedAt
		rep.Total = ds.Len()
	}
	for _, c := range dataset.StatColumns() {
		s, _ := Stats(v, c)
		rep.Cols = append(rep.Cols, s)
	}
	counts := map[string]int{}
	for i := 0; i < v.Len(); i++ {
		counts[v.Row(i).Region]++
	}
	for k, n := range counts {
		rep.Regions = append(rep.Regions, CategoryCount{Value: k, Count: n})
	}
	sort.Slice(rep.Regions, func(i, j int) bool {
		if rep.Regions[i].Count == rep.Regions[j].Count {
			return rep.Regions[i].Value < rep.Regions[j].Value
		}
		return rep.Regions[i].Count > rep.Regions[j].Count
	})
	if opt.TopRegions > 0 && len(rep.Regions) > opt.TopRegions {
		rep.Regions = rep.Regions[:opt.TopRegions]
	}
	for i := 0; i < v.Len() && i < opt.SampleRows; i++ {
		rep.Samples = append(rep.Samples, v.Row(i))
	}
	if rep.Rows == 0 {
		rep.Warnings = append(rep.Warnings, "no rows: statistics are undefined")
	} else if rep.Rows == 1 {
		rep.Warnings = append(rep.Warnings, "single row: standard deviation is undefined")
	}
	return rep
}

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Source != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", r.Source))
	}
	if !r.FetchedAt.IsZero() {
		b.WriteString(fmt.Sprintf("Fetched: %s\n", r.FetchedAt.Format(time.RFC3339)))
	}
	if r.Total > 0 && r.Rows < r.Total {
		b.WriteString(fmt.Sprintf("Rows: %d (of %d)\n", r.Rows, r.Total))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	}

	b.WriteString("\n[STATISTICS]\n")
	for _, s := range r.Cols {
		b.WriteString(fmt.Sprintf("- %s: mean %s, median %s, std %s (min %s, max %s)\n",
			s.Column.Label(), num(s.Mean), num(s.Median), num(s.StdDev), num(s.Min), num(s.Max)))
	}
	if len(r.Regions) > 0 {
		b.WriteString("\n[REGIONS]\n")
		for _, kv := range r.Regions {
			b.WriteString(fmt.Sprintf("- %s: %d\n", safeVal(kv.Value), kv.Count))
		}
	}
	if len(r.Samples) > 0 {
		cols := dataset.Columns()
		b.WriteString("\n[HEAD]\n")
		b.WriteString(MarkdownTable(cols, r.Samples))
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// MarkdownTable renders rows as a pipe table with one column per cols entry.
func MarkdownTable(cols []dataset.Column, rows []dataset.CountryRow) string {
	var b strings.Builder
	b.WriteString("| ")
	b.WriteString(strings.Join(dataset.Labels(cols), " | "))
	b.WriteString(" |\n|")
	for range cols {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString("| ")
		for i, c := range cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			val := row.Text(c)
			if r := []rune(val); len(r) > 80 {
				val = string(r[:77]) + "..."
			}
			b.WriteString(safeVal(val))
		}
		b.WriteString(" |\n")
	}
	return b.String()
}

// num formats a statistic; NaN prints as "n/a".
func num(f float64) string {
	if math.IsNaN(f) {
		return "n/a"
	}
	return fmt.Sprintf("%.4g", f)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
