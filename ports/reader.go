package ports

import (
	"context"

	"github.com/jaecal82/macc-survey-analysis/domain/survey"
)

// TableReader loads a survey table from a source file
type TableReader interface {
	ReadTable(ctx context.Context) (*survey.Table, error)
}

// TableWriter persists a survey table as delimited text
type TableWriter interface {
	WriteCSV(ctx context.Context, table *survey.Table, path string) error
}
