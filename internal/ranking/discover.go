// Package ranking holds the column discovery, labelling and aggregation
// steps of the average-rank analysis.
package ranking

import (
	"strings"

	"github.com/jaecal82/macc-survey-analysis/domain/survey"
	"github.com/jaecal82/macc-survey-analysis/internal/errors"
)

// DiscoverColumns returns every header starting with prefix, in header order
func DiscoverColumns(headers []string, prefix string) []survey.RankingColumn {
	var cols []survey.RankingColumn
	for i, h := range headers {
		if strings.HasPrefix(h, prefix) {
			cols = append(cols, survey.RankingColumn{Name: h, Label: h, Index: i})
		}
	}
	return cols
}

// DeriveLabel returns the trimmed text after the last sep in questionText,
// or rawName when sep does not occur.
func DeriveLabel(questionText, rawName, sep string) string {
	idx := strings.LastIndex(questionText, sep)
	if idx < 0 {
		return rawName
	}
	return strings.TrimSpace(questionText[idx+len(sep):])
}

// DeriveLabels fills in Label for each column from the Question Text row
// (data row 0). Labels are not deduplicated.
func DeriveLabels(table *survey.Table, cols []survey.RankingColumn, sep string) ([]survey.RankingColumn, error) {
	if table.Len() == 0 {
		return nil, errors.MalformedTable("table has no question text row")
	}

	labelled := make([]survey.RankingColumn, len(cols))
	for i, col := range cols {
		text, ok := table.Cell(0, col.Index)
		if !ok {
			return nil, errors.MalformedTable("column " + col.Name + " is outside the table")
		}
		col.Label = DeriveLabel(text, col.Name, sep)
		labelled[i] = col
	}
	return labelled, nil
}

// Project copies the ranking columns out of table, renamed to their labels
func Project(table *survey.Table, cols []survey.RankingColumn) *survey.Table {
	indices := make([]int, len(cols))
	names := make([]string, len(cols))
	for i, col := range cols {
		indices[i] = col.Index
		names[i] = col.Label
	}
	return table.Project(indices, names)
}

// TrimMetadata drops the leading metadata rows (Question Text, Import Identifier)
func TrimMetadata(table *survey.Table, rows int) *survey.Table {
	return table.DropRows(rows)
}
