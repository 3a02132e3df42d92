package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jaecal82/macc-survey-analysis/domain/core"
	"github.com/jaecal82/macc-survey-analysis/internal"
	"github.com/jaecal82/macc-survey-analysis/internal/errors"
	"github.com/jaecal82/macc-survey-analysis/ports"
)

// ConvertService copies the first worksheet of a survey export into a CSV
// file without touching headers, rows or cell text.
type ConvertService struct {
	reader ports.TableReader
	writer ports.TableWriter
	out    io.Writer
	logger *internal.Logger
}

// ConvertRequest names the source and destination of a conversion
type ConvertRequest struct {
	InputPath  string
	OutputPath string
}

// ConvertResult reports what was written
type ConvertResult struct {
	RunID      core.RunID `json:"run_id"`
	OutputPath string     `json:"output_path"`
	Columns    int        `json:"columns"`
	Rows       int        `json:"rows"`
	RuntimeMs  int64      `json:"runtime_ms"`
}

// NewConvertService creates a convert service
func NewConvertService(reader ports.TableReader, writer ports.TableWriter, out io.Writer, logger *internal.Logger) *ConvertService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ConvertService{
		reader: reader,
		writer: writer,
		out:    out,
		logger: logger,
	}
}

// Convert reads the spreadsheet and writes it to req.OutputPath
func (s *ConvertService) Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error) {
	startTime := time.Now()
	runID := core.NewRunID()
	logger := s.logger.With("run_id", runID.String())

	table, err := s.reader.ReadTable(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read spreadsheet %s", req.InputPath)
	}

	if err := s.writer.WriteCSV(ctx, table, req.OutputPath); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", req.OutputPath)
	}

	result := &ConvertResult{
		RunID:      runID,
		OutputPath: req.OutputPath,
		Columns:    table.Width(),
		Rows:       table.Len(),
		RuntimeMs:  time.Since(startTime).Milliseconds(),
	}
	logger.Info("Converted %d columns x %d rows in %dms", result.Columns, result.Rows, result.RuntimeMs)

	fmt.Fprintf(s.out, "Successfully converted %s to %s\n", req.InputPath, req.OutputPath)
	return result, nil
}
