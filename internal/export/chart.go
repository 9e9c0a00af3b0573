package export

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/KaramelBytes/countrydash/internal/dataset"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrUnknownChartKind is returned for chart kinds other than bar, line, scatter.
var ErrUnknownChartKind = errors.New("unknown chart kind")

// ChartKind selects how x/y pairs are drawn.
type ChartKind string

const (
	ChartBar     ChartKind = "bar"
	ChartLine    ChartKind = "line"
	ChartScatter ChartKind = "scatter"
)

// ParseChartKind resolves bar, line or scatter (English or Spanish names).
func ParseChartKind(s string) (ChartKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bar", "barras":
		return ChartBar, nil
	case "line", "lineas", "líneas":
		return ChartLine, nil
	case "scatter", "dispersion", "dispersión":
		return ChartScatter, nil
	}
	return "", fmt.Errorf("%w: %s (use bar|line|scatter)", ErrUnknownChartKind, s)
}

// ChartOptions controls the rendered image.
type ChartOptions struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

// DefaultChartOptions returns an 8x5 inch canvas.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{Width: 8 * vg.Inch, Height: 5 * vg.Inch}
}

var barColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// RenderChart draws y against x for the rows of v and returns PNG bytes.
// Bar charts sum y per distinct x value in first-seen order; line and scatter
// plot the raw pairs in view order. Text x columns are placed at ordinal
// positions and labelled. Empty and single-row views render a valid image.
func RenderChart(v dataset.View, x, y dataset.Column, kind ChartKind, opt ChartOptions) ([]byte, error) {
	if !y.Numeric() {
		return nil, fmt.Errorf("chart y axis %s: column is not numeric", y.Key())
	}
	if opt.Width <= 0 {
		opt.Width = DefaultChartOptions().Width
	}
	if opt.Height <= 0 {
		opt.Height = DefaultChartOptions().Height
	}
	p := plot.New()
	p.Title.Text = opt.Title
	if p.Title.Text == "" {
		p.Title.Text = fmt.Sprintf("%s por %s", y.Label(), x.Label())
	}
	p.X.Label.Text = x.Label()
	p.Y.Label.Text = y.Label()
	p.Add(plotter.NewGrid())

	var err error
	switch kind {
	case ChartBar:
		err = addBars(p, v, x, y)
	case ChartLine, ChartScatter:
		err = addPoints(p, v, x, y, kind)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownChartKind, kind)
	}
	if err != nil {
		return nil, err
	}

	wt, err := p.WriterTo(opt.Width, opt.Height, "png")
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Chart renders a chart as a Download named grafico.png.
func Chart(v dataset.View, x, y dataset.Column, kind ChartKind, opt ChartOptions) (*Download, error) {
	b, err := RenderChart(v, x, y, kind, opt)
	if err != nil {
		return nil, err
	}
	return &Download{Filename: ChartFilename, ContentType: PNGContentType, Data: b}, nil
}

// Group is one bar: the sum of y over rows sharing the same x.
type Group struct {
	Label string
	Sum   float64
}

// SumByX groups v by the text form of x and sums y, keeping first-seen order.
func SumByX(v dataset.View, x, y dataset.Column) []Group {
	pos := map[string]int{}
	var out []Group
	for i := 0; i < v.Len(); i++ {
		row := v.Row(i)
		key := row.Text(x)
		yv, _ := row.Float(y)
		j, ok := pos[key]
		if !ok {
			j = len(out)
			pos[key] = j
			out = append(out, Group{Label: key})
		}
		out[j].Sum += yv
	}
	return out
}

func addBars(p *plot.Plot, v dataset.View, x, y dataset.Column) error {
	groups := SumByX(v, x, y)
	if len(groups) == 0 {
		return nil
	}
	vals := make(plotter.Values, len(groups))
	labels := make([]string, len(groups))
	for i, g := range groups {
		vals[i] = g.Sum
		labels[i] = g.Label
	}
	bars, err := plotter.NewBarChart(vals, barWidth(len(groups)))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)
	if len(labels) > 12 {
		p.X.Tick.Label.Rotation = 1.2
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}
	return nil
}

func barWidth(n int) vg.Length {
	switch {
	case n > 60:
		return vg.Points(3)
	case n > 20:
		return vg.Points(8)
	}
	return vg.Points(20)
}

func addPoints(p *plot.Plot, v dataset.View, x, y dataset.Column, kind ChartKind) error {
	if v.Len() == 0 {
		return nil
	}
	pts := make(plotter.XYs, v.Len())
	var labels []string
	for i := 0; i < v.Len(); i++ {
		row := v.Row(i)
		if x.Numeric() {
			pts[i].X, _ = row.Float(x)
		} else {
			pts[i].X = float64(i)
			labels = append(labels, row.Text(x))
		}
		pts[i].Y, _ = row.Float(y)
	}
	switch kind {
	case ChartLine:
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("line chart: %w", err)
		}
		line.Color = barColor
		line.Width = vg.Points(1.5)
		p.Add(line)
	default:
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("scatter chart: %w", err)
		}
		sc.GlyphStyle.Color = barColor
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
	}
	if labels != nil && len(labels) <= 40 {
		p.NominalX(labels...)
	} else if labels != nil {
		p.X.Tick.Marker = ordinalTicks{}
	}
	return nil
}

// ordinalTicks labels a handful of integer positions when there are too many
// text values to name each one.
type ordinalTicks struct{}

func (ordinalTicks) Ticks(min, max float64) []plot.Tick {
	step := (max - min) / 8
	if step < 1 {
		step = 1
	}
	var ticks []plot.Tick
	for x := min; x <= max; x += step {
		ticks = append(ticks, plot.Tick{Value: x, Label: strconv.Itoa(int(x))})
	}
	return ticks
}
