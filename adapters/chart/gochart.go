package chart

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaecal82/macc-survey-analysis/domain/survey"
	"github.com/jaecal82/macc-survey-analysis/internal"
	"github.com/jaecal82/macc-survey-analysis/internal/errors"
	"github.com/jaecal82/macc-survey-analysis/ports"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"
)

const (
	goChartWidth   = 1200
	goChartHeight  = 800
	goChartSpacing = 10
)

// GoChartRenderer draws charts with go-chart. Only PNG and SVG are supported.
// go-chart bar charts have no x-axis title, so spec.XLabel is not drawn.
type GoChartRenderer struct {
	logger *internal.Logger
}

var _ ports.ChartRenderer = (*GoChartRenderer)(nil)

// NewGoChartRenderer creates a go-chart renderer
func NewGoChartRenderer(logger *internal.Logger) *GoChartRenderer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &GoChartRenderer{logger: logger}
}

// Render draws a vertical bar chart, one bar per entry, in series order
func (r *GoChartRenderer) Render(ctx context.Context, series survey.RankSeries, spec ports.ChartSpec, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(series) == 0 {
		return errors.RenderFailed(path, errors.InvalidInput("no bars to draw"))
	}

	var provider gochart.RendererProvider
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		provider = gochart.PNG
	case ".svg":
		provider = gochart.SVG
	default:
		return errors.RenderFailed(path, errors.UnsupportedFormat(filepath.Ext(path)))
	}

	heights := barHeights(series, r.logger)
	bars := make([]gochart.Value, len(series))
	for i, e := range series {
		bars[i] = gochart.Value{
			Label: e.Label,
			Value: heights[i],
			Style: gochart.Style{
				FillColor:   drawing.Color{R: 135, G: 206, B: 235, A: 255},
				StrokeColor: drawing.ColorBlack,
				StrokeWidth: 1,
			},
		}
	}

	// A pinned range keeps single-bar and all-equal charts renderable.
	top := floats.Max(heights) * 1.1
	if top <= 0 {
		top = 1
	}

	graph := gochart.BarChart{
		Title:  spec.Title,
		Width:  goChartWidth,
		Height: goChartHeight,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 60, Left: 20, Right: 20, Bottom: 180},
		},
		BarWidth:   goChartBarWidth(len(series)),
		BarSpacing: goChartSpacing,
		XAxis:      gochart.Style{TextRotationDegrees: 45},
		YAxis: gochart.YAxis{
			Name:  spec.YLabel,
			Range: &gochart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.OutputUnwritable(path, err)
	}
	defer file.Close()

	if err := graph.Render(provider, file); err != nil {
		return errors.RenderFailed(path, err)
	}
	if err := file.Close(); err != nil {
		return errors.OutputUnwritable(path, err)
	}

	r.logger.Debug("Rendered %d bars to %s", len(series), path)
	return nil
}

func goChartBarWidth(n int) int {
	usable := goChartWidth - 200
	w := usable/n - goChartSpacing
	if w > maxBarWidth {
		w = maxBarWidth
	}
	if w < 4 {
		w = 4
	}
	return w
}
