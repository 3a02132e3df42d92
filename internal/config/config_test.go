package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jaecal82/macc-survey-analysis/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"SURVEY_INPUT_FILE", "SURVEY_SHEET", "SURVEY_CSV_FILE", "SURVEY_CHART_FILE",
		"RANK_COLUMN_PREFIX", "RANK_LABEL_SEPARATOR", "RANK_METADATA_ROWS",
		"REPORT_TITLE", "CHART_BACKEND", "CHART_TITLE", "CHART_X_LABEL", "CHART_Y_LABEL",
		"LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Grad Program Exit Survey Data 2024 (1).xlsx", cfg.Paths.SpreadsheetFile)
	assert.Equal(t, "data/survey_data.csv", cfg.Paths.CSVFile)
	assert.Equal(t, "outputs/rank_order.png", cfg.Paths.ChartFile)
	assert.Equal(t, "Q35_", cfg.Ranking.ColumnPrefix)
	assert.Equal(t, " - ", cfg.Ranking.LabelSeparator)
	assert.Equal(t, 2, cfg.Ranking.MetadataRows)
	assert.Equal(t, BackendGonum, cfg.Chart.Backend)
	assert.Equal(t, "Average Rank", cfg.Chart.YLabel)
	assert.Equal(t, "Course", cfg.Chart.XLabel)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("RANK_COLUMN_PREFIX", "Q12_")
	t.Setenv("RANK_METADATA_ROWS", "1")
	t.Setenv("CHART_BACKEND", "GoChart")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Q12_", cfg.Ranking.ColumnPrefix)
	assert.Equal(t, 1, cfg.Ranking.MetadataRows)
	assert.Equal(t, BackendGoChart, cfg.Chart.Backend)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHART_BACKEND", "matplotlib")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadFileOverlay(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "survey.yaml")
	content := `paths:
  csv_file: tmp/table.csv
ranking:
  column_prefix: Q7_
  metadata_rows: 0
chart:
  backend: gochart
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tmp/table.csv", cfg.Paths.CSVFile)
	assert.Equal(t, "Q7_", cfg.Ranking.ColumnPrefix)
	assert.Equal(t, 0, cfg.Ranking.MetadataRows)
	assert.Equal(t, BackendGoChart, cfg.Chart.Backend)
	// untouched keys keep their defaults
	assert.Equal(t, " - ", cfg.Ranking.LabelSeparator)
	assert.Equal(t, "outputs/rank_order.png", cfg.Paths.ChartFile)
}

func TestLoadFileMissing(t *testing.T) {
	clearEnv(t)
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsInputNotFound(err))
}

func TestLoadFileInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ranking: [unclosed"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	base, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty prefix", func(c *Config) { c.Ranking.ColumnPrefix = "" }},
		{"empty separator", func(c *Config) { c.Ranking.LabelSeparator = "" }},
		{"negative metadata rows", func(c *Config) { c.Ranking.MetadataRows = -1 }},
		{"empty csv path", func(c *Config) { c.Paths.CSVFile = "" }},
		{"empty chart path", func(c *Config) { c.Paths.ChartFile = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
