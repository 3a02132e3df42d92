package chart

import (
	"github.com/jaecal82/macc-survey-analysis/internal"
	"github.com/jaecal82/macc-survey-analysis/internal/config"
	"github.com/jaecal82/macc-survey-analysis/internal/errors"
	"github.com/jaecal82/macc-survey-analysis/ports"
)

// NewRenderer returns the renderer for a configured backend name
func NewRenderer(backend string, logger *internal.Logger) (ports.ChartRenderer, error) {
	switch backend {
	case config.BackendGonum, "":
		return NewGonumRenderer(logger), nil
	case config.BackendGoChart:
		return NewGoChartRenderer(logger), nil
	default:
		return nil, errors.ConfigInvalid("unknown chart backend: " + backend)
	}
}
