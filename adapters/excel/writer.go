package excel

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/jaecal82/macc-survey-analysis/domain/survey"
	"github.com/jaecal82/macc-survey-analysis/internal"
	"github.com/jaecal82/macc-survey-analysis/internal/errors"
)

// TableWriter writes tables as comma-delimited text
type TableWriter struct {
	logger *internal.Logger
}

// NewTableWriter creates a writer
func NewTableWriter(logger *internal.Logger) *TableWriter {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &TableWriter{logger: logger}
}

// WriteCSV writes header and rows to path, creating missing parent
// directories and replacing any existing file.
func (w *TableWriter) WriteCSV(ctx context.Context, table *survey.Table, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.OutputUnwritable(path, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.OutputUnwritable(path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(table.Records()); err != nil {
		return errors.OutputUnwritable(path, err)
	}
	if err := file.Close(); err != nil {
		return errors.OutputUnwritable(path, err)
	}

	w.logger.Debug("Wrote %s (%d columns, %d rows)", path, table.Width(), table.Len())
	return nil
}
