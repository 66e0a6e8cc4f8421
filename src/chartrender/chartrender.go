// Package chartrender draws per-pod series as a line chart. The PDF path goes
// through gonum/plot (the only backend here with vector output); the PNG path
// goes through go-chart and exists for quick previews of a whole sweep
// directory.
package chartrender

import (
	"fmt"
	"image/color"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/openshift/metricplot/src/promdata"
)

// Chart holds everything needed to render one figure.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Series []promdata.Series
}

// Line colors cycled across series, matching the default matplotlib cycle so
// these charts sit comfortably next to matplotlib-rendered ones.
var palette = []color.RGBA{
	{31, 119, 180, 255},  // blue
	{255, 127, 14, 255},  // orange
	{44, 160, 44, 255},   // green
	{214, 39, 40, 255},   // red
	{148, 103, 189, 255}, // purple
	{140, 86, 75, 255},   // brown
	{227, 119, 194, 255}, // pink
	{127, 127, 127, 255}, // gray
	{188, 189, 34, 255},  // olive
	{23, 190, 207, 255},  // cyan
}

// SavePDF renders the figure and writes it to path. One line per series, the
// pod name as its legend label, legend anchored top-left.
func (c Chart) SavePDF(path string) error {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel

	for i, s := range c.Series {
		pts := make(plotter.XYs, len(s.X))
		for j := range s.X {
			pts[j].X = s.X[j]
			pts[j].Y = s.Y[j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		line.Color = palette[i%len(palette)]
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// RenderPNG renders the same figure as a PNG preview. go-chart refuses charts
// whose series have fewer than two points, so callers should expect an error
// on degenerate inputs rather than an empty image.
func (c Chart) RenderPNG(w io.Writer) error {
	series := make([]chart.Series, 0, len(c.Series))
	for i, s := range c.Series {
		col := palette[i%len(palette)]
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: s.X,
			YValues: s.Y,
			Style: chart.Style{
				StrokeColor: drawing.Color{R: col.R, G: col.G, B: col.B, A: col.A},
				StrokeWidth: 1.5,
			},
		})
	}
	ch := chart.Chart{
		Title:      c.Title,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 24}},
		XAxis:      chart.XAxis{Name: c.XLabel},
		YAxis:      chart.YAxis{Name: c.YLabel},
		Series:     series,
		Width:      800,
		Height:     480,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}
