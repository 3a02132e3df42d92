package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/jaecal82/macc-survey-analysis/internal/errors"

	"gopkg.in/yaml.v3"
)

// Chart backends understood by the renderer factory
const (
	BackendGonum   = "gonum"
	BackendGoChart = "gochart"
)

// Config represents the complete application configuration
type Config struct {
	Paths   PathConfig    `yaml:"paths"`
	Ranking RankingConfig `yaml:"ranking"`
	Report  ReportConfig  `yaml:"report"`
	Chart   ChartConfig   `yaml:"chart"`
	Logging LoggingConfig `yaml:"logging"`
}

// PathConfig holds file system paths
type PathConfig struct {
	SpreadsheetFile string `yaml:"spreadsheet_file"`
	Sheet           string `yaml:"sheet"`
	CSVFile         string `yaml:"csv_file"`
	ChartFile       string `yaml:"chart_file"`
}

// RankingConfig controls column discovery and label derivation
type RankingConfig struct {
	ColumnPrefix   string `yaml:"column_prefix"`
	LabelSeparator string `yaml:"label_separator"`
	MetadataRows   int    `yaml:"metadata_rows"`
}

// ReportConfig holds the stdout report settings
type ReportConfig struct {
	Title string `yaml:"title"`
}

// ChartConfig holds chart rendering settings
type ChartConfig struct {
	Backend string `yaml:"backend"`
	Title   string `yaml:"title"`
	XLabel  string `yaml:"x_label"`
	YLabel  string `yaml:"y_label"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Paths:   *loadPathConfig(),
		Ranking: *loadRankingConfig(),
		Report:  *loadReportConfig(),
		Chart:   *loadChartConfig(),
		Logging: LoggingConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// LoadFile reads configuration from the environment and then overlays the
// non-empty fields of the YAML file at path.
func LoadFile(path string) (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.InputNotFound(path), "failed to load configuration file")
		}
		return nil, errors.Wrapf(err, "failed to read configuration file %s", path)
	}

	var overlay Config
	// Metadata rows default to -1 so an explicit 0 in the file is honoured.
	overlay.Ranking.MetadataRows = -1
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "failed to parse configuration file %s", path))
	}
	config.merge(&overlay)

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func (c *Config) merge(o *Config) {
	setIfNotEmpty(&c.Paths.SpreadsheetFile, o.Paths.SpreadsheetFile)
	setIfNotEmpty(&c.Paths.Sheet, o.Paths.Sheet)
	setIfNotEmpty(&c.Paths.CSVFile, o.Paths.CSVFile)
	setIfNotEmpty(&c.Paths.ChartFile, o.Paths.ChartFile)
	setIfNotEmpty(&c.Ranking.ColumnPrefix, o.Ranking.ColumnPrefix)
	setIfNotEmpty(&c.Ranking.LabelSeparator, o.Ranking.LabelSeparator)
	if o.Ranking.MetadataRows >= 0 {
		c.Ranking.MetadataRows = o.Ranking.MetadataRows
	}
	setIfNotEmpty(&c.Report.Title, o.Report.Title)
	setIfNotEmpty(&c.Chart.Backend, o.Chart.Backend)
	setIfNotEmpty(&c.Chart.Title, o.Chart.Title)
	setIfNotEmpty(&c.Chart.XLabel, o.Chart.XLabel)
	setIfNotEmpty(&c.Chart.YLabel, o.Chart.YLabel)
	setIfNotEmpty(&c.Logging.Level, o.Logging.Level)
}

func setIfNotEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func loadPathConfig() *PathConfig {
	return &PathConfig{
		SpreadsheetFile: getEnvOrDefault("SURVEY_INPUT_FILE", "Grad Program Exit Survey Data 2024 (1).xlsx"),
		Sheet:           getEnvOrDefault("SURVEY_SHEET", ""),
		CSVFile:         getEnvOrDefault("SURVEY_CSV_FILE", "data/survey_data.csv"),
		ChartFile:       getEnvOrDefault("SURVEY_CHART_FILE", "outputs/rank_order.png"),
	}
}

func loadRankingConfig() *RankingConfig {
	return &RankingConfig{
		ColumnPrefix: getEnvOrDefault("RANK_COLUMN_PREFIX", "Q35_"),
		// Separator keeps its surrounding spaces, so no trimming here.
		LabelSeparator: getEnvRawOrDefault("RANK_LABEL_SEPARATOR", " - "),
		MetadataRows:   getEnvIntOrDefault("RANK_METADATA_ROWS", 2),
	}
}

func loadReportConfig() *ReportConfig {
	return &ReportConfig{
		Title: getEnvOrDefault("REPORT_TITLE", "Rank order of MAcc CORE courses (based on student ratings, lower is better):"),
	}
}

func loadChartConfig() *ChartConfig {
	return &ChartConfig{
		Backend: strings.ToLower(getEnvOrDefault("CHART_BACKEND", BackendGonum)),
		Title:   getEnvOrDefault("CHART_TITLE", "Average Course Rankings (Lower is Better)"),
		XLabel:  getEnvOrDefault("CHART_X_LABEL", "Course"),
		YLabel:  getEnvOrDefault("CHART_Y_LABEL", "Average Rank"),
	}
}

// Validate checks that the configuration can drive a run
func (c *Config) Validate() error {
	if c.Paths.SpreadsheetFile == "" {
		return errors.ConfigInvalid("spreadsheet input path is required")
	}
	if c.Paths.CSVFile == "" {
		return errors.ConfigInvalid("CSV path is required")
	}
	if c.Paths.ChartFile == "" {
		return errors.ConfigInvalid("chart output path is required")
	}
	if c.Ranking.ColumnPrefix == "" {
		return errors.ConfigInvalid("ranking column prefix is required")
	}
	if c.Ranking.LabelSeparator == "" {
		return errors.ConfigInvalid("label separator is required")
	}
	if c.Ranking.MetadataRows < 0 {
		return errors.ConfigInvalid("metadata rows cannot be negative")
	}
	switch c.Chart.Backend {
	case BackendGonum, BackendGoChart:
	default:
		return errors.ConfigInvalid("unknown chart backend: " + c.Chart.Backend)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRawOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
