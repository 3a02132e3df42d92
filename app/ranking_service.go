package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jaecal82/macc-survey-analysis/adapters/datareadiness/coercer"
	"github.com/jaecal82/macc-survey-analysis/domain/core"
	"github.com/jaecal82/macc-survey-analysis/domain/survey"
	"github.com/jaecal82/macc-survey-analysis/internal"
	"github.com/jaecal82/macc-survey-analysis/internal/errors"
	"github.com/jaecal82/macc-survey-analysis/internal/ranking"
	"github.com/jaecal82/macc-survey-analysis/ports"
)

// RankingConfig holds the analyzer settings
type RankingConfig struct {
	CSVPath        string
	ChartPath      string
	ColumnPrefix   string
	LabelSeparator string
	MetadataRows   int
	ReportTitle    string
	Chart          ports.ChartSpec
}

// RankingService computes and reports average ranks for the ranking columns
// of a converted survey table.
type RankingService struct {
	reader   ports.TableReader
	renderer ports.ChartRenderer
	coercer  *coercer.TypeCoercer
	config   RankingConfig
	out      io.Writer
	logger   *internal.Logger
}

// RankingResult contains the complete output of one analysis
type RankingResult struct {
	RunID     core.RunID             `json:"run_id"`
	Columns   []survey.RankingColumn `json:"columns"`
	Series    survey.RankSeries      `json:"series"`
	ChartPath string                 `json:"chart_path"`
	RuntimeMs int64                  `json:"runtime_ms"`
}

// NewRankingService creates a ranking service
func NewRankingService(
	reader ports.TableReader,
	renderer ports.ChartRenderer,
	typeCoercer *coercer.TypeCoercer,
	config RankingConfig,
	out io.Writer,
	logger *internal.Logger,
) *RankingService {
	if typeCoercer == nil {
		typeCoercer = coercer.NewTypeCoercer(coercer.DefaultCoercionConfig())
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &RankingService{
		reader:   reader,
		renderer: renderer,
		coercer:  typeCoercer,
		config:   config,
		out:      out,
		logger:   logger,
	}
}

// Analyze runs the pipeline and turns the two recoverable conditions (no
// CSV file, no ranking columns) into a printed message. In those cases it
// returns a nil result and a nil error, and no chart is written.
func (s *RankingService) Analyze(ctx context.Context) (*RankingResult, error) {
	result, err := s.Run(ctx)
	switch {
	case err == nil:
		return result, nil
	case errors.IsInputNotFound(err):
		fmt.Fprintf(s.out, "Error: %s not found. Please run \"surveyrank convert\" first.\n", s.config.CSVPath)
		return nil, nil
	case errors.IsNoRankingColumns(err):
		fmt.Fprintf(s.out, "No %s columns found.\n", questionName(s.config.ColumnPrefix))
		return nil, nil
	default:
		return nil, err
	}
}

// Run executes load, discovery, labelling, projection, trimming, coercion,
// aggregation, ordering, reporting and rendering, in that order.
func (s *RankingService) Run(ctx context.Context) (*RankingResult, error) {
	startTime := time.Now()
	runID := core.NewRunID()
	logger := s.logger.With("run_id", runID.String())

	// Step 1: Load
	table, err := s.reader.ReadTable(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load survey table")
	}

	// Step 2: Discover ranking columns
	cols := ranking.DiscoverColumns(table.Headers, s.config.ColumnPrefix)
	if len(cols) == 0 {
		return nil, errors.NoRankingColumns(s.config.ColumnPrefix)
	}
	logger.Debug("Discovered %d ranking columns with prefix %q", len(cols), s.config.ColumnPrefix)

	// Step 3: Derive labels from the Question Text row
	cols, err = ranking.DeriveLabels(table, cols, s.config.LabelSeparator)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive column labels")
	}

	// Steps 4-5: Project onto a renamed copy and drop the metadata rows
	clean := ranking.TrimMetadata(ranking.Project(table, cols), s.config.MetadataRows)
	logger.Debug("%d respondent rows after dropping %d metadata rows", clean.Len(), s.config.MetadataRows)

	// Steps 6-7: Coerce each column on its own and aggregate it
	series := make(survey.RankSeries, len(cols))
	for i, col := range cols {
		numbers, analysis := s.coercer.CoerceColumn(clean.Column(i))
		if analysis.MissingCount > 0 {
			logger.Debug("Column %s (%s): %d numeric, %d missing", col.Name, col.Label, analysis.NumericCount, analysis.MissingCount)
		}
		series[i] = ranking.Summarize(col.Label, col.Name, numbers)
		logger.Debug("Column %s (%s): mean=%s sd=%.4f n=%d",
			col.Name, col.Label, ranking.FormatMean(series[i].Mean), series[i].StdDev, series[i].Responses)
	}

	// Step 8: Order ascending, lower average rank first
	series = ranking.SortAscending(series)

	// Step 9: Report
	if err := WriteReport(s.out, s.config.ReportTitle, series); err != nil {
		return nil, errors.Wrap(err, "failed to write report")
	}

	// Step 10: Visualize
	if err := s.renderer.Render(ctx, series, s.config.Chart, s.config.ChartPath); err != nil {
		return nil, errors.Wrap(err, "failed to render chart")
	}
	fmt.Fprintf(s.out, "Saved chart to %s\n", s.config.ChartPath)

	result := &RankingResult{
		RunID:     runID,
		Columns:   cols,
		Series:    series,
		ChartPath: s.config.ChartPath,
		RuntimeMs: time.Since(startTime).Milliseconds(),
	}
	logger.Info("Ranked %d columns in %dms", len(series), result.RuntimeMs)
	return result, nil
}

// WriteReport prints the title line followed by one "label: mean" line per
// entry, in series order.
func WriteReport(w io.Writer, title string, series survey.RankSeries) error {
	var b strings.Builder
	b.WriteString(title)
	b.WriteByte('\n')
	for _, e := range series {
		fmt.Fprintf(&b, "%s: %s\n", e.Label, ranking.FormatMean(e.Mean))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// questionName strips the item separator from a column prefix, "Q35_" -> "Q35"
func questionName(prefix string) string {
	name := strings.TrimRight(prefix, "_")
	if name == "" {
		return prefix
	}
	return name
}
