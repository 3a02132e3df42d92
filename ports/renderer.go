package ports

import (
	"context"

	"github.com/jaecal82/macc-survey-analysis/domain/survey"
)

// ChartSpec carries the chart's text
type ChartSpec struct {
	Title  string
	XLabel string
	YLabel string
}

// ChartRenderer draws a rank series as a bar chart image at path. Bars
// follow the series order.
type ChartRenderer interface {
	Render(ctx context.Context, series survey.RankSeries, spec ChartSpec, path string) error
}
