// Package chart renders rank series as bar chart images.
package chart

import (
	"context"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/jaecal82/macc-survey-analysis/domain/survey"
	"github.com/jaecal82/macc-survey-analysis/internal"
	"github.com/jaecal82/macc-survey-analysis/internal/errors"
	"github.com/jaecal82/macc-survey-analysis/ports"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	barFill   = color.RGBA{R: 135, G: 206, B: 235, A: 255} // sky blue
	barEdge   = color.Black
	gridColor = color.Gray{Y: 190}
)

const (
	figureWidth  = 12 * vg.Inch
	figureHeight = 8 * vg.Inch
	maxBarWidth  = 60 // points
)

// GonumRenderer draws charts with gonum/plot. The image format follows the
// file extension (.png, .jpg, .svg, .pdf, .eps, .tif).
type GonumRenderer struct {
	logger *internal.Logger
}

var _ ports.ChartRenderer = (*GonumRenderer)(nil)

// NewGonumRenderer creates a gonum/plot renderer
func NewGonumRenderer(logger *internal.Logger) *GonumRenderer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &GonumRenderer{logger: logger}
}

// Render draws a vertical bar chart, one bar per entry, in series order
func (r *GonumRenderer) Render(ctx context.Context, series survey.RankSeries, spec ports.ChartSpec, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(series) == 0 {
		return errors.RenderFailed(path, errors.InvalidInput("no bars to draw"))
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	values := make(plotter.Values, len(series))
	for i, v := range barHeights(series, r.logger) {
		values[i] = v
	}

	bars, err := plotter.NewBarChart(values, barWidth(len(series)))
	if err != nil {
		return errors.RenderFailed(path, err)
	}
	bars.Color = barFill
	bars.LineStyle.Color = barEdge
	bars.LineStyle.Width = vg.Points(1)

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = gridColor
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}

	p.Add(grid, bars)
	p.NominalX(series.Labels()...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Y.Min = 0

	if err := ensureDir(path); err != nil {
		return err
	}
	if err := p.Save(figureWidth, figureHeight, path); err != nil {
		return errors.RenderFailed(path, err)
	}

	r.logger.Debug("Rendered %d bars to %s", len(series), path)
	return nil
}

func barWidth(n int) vg.Length {
	w := figureWidth * 0.6 / vg.Length(n)
	if w > vg.Points(maxBarWidth) {
		w = vg.Points(maxBarWidth)
	}
	return w
}

// barHeights returns plottable heights; NaN means become zero-height bars.
func barHeights(series survey.RankSeries, logger *internal.Logger) []float64 {
	heights := series.Means()
	for i, h := range heights {
		if math.IsNaN(h) || math.IsInf(h, 0) {
			logger.Warn("No numeric responses for %q; drawing an empty bar", series[i].Label)
			heights[i] = 0
		}
	}
	return heights
}

func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.OutputUnwritable(path, err)
		}
	}
	return nil
}
