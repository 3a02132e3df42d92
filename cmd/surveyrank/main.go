package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/jaecal82/macc-survey-analysis/adapters/chart"
	"github.com/jaecal82/macc-survey-analysis/adapters/datareadiness/coercer"
	"github.com/jaecal82/macc-survey-analysis/adapters/excel"
	"github.com/jaecal82/macc-survey-analysis/app"
	"github.com/jaecal82/macc-survey-analysis/internal"
	"github.com/jaecal82/macc-survey-analysis/internal/config"
	"github.com/jaecal82/macc-survey-analysis/internal/errors"
	"github.com/jaecal82/macc-survey-analysis/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	logLevel   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "surveyrank",
		Short:         "Convert survey exports and rank ranking-question items by average rank",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Optional YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: ERROR|WARN|INFO|DEBUG|TRACE (default from LOG_LEVEL)")

	rootCmd.AddCommand(
		newConvertCmd(opts),
		newAnalyzeCmd(opts),
	)
	return rootCmd
}

// loadRuntime resolves configuration (.env, environment, YAML file) and the logger
func loadRuntime(opts *rootOptions) (*config.Config, *internal.Logger, error) {
	envErr := godotenv.Load()

	cfg, err := config.LoadFile(opts.configFile)
	if err != nil {
		return nil, nil, err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Logging.Level))
	if envErr != nil {
		logger.Debug("No .env file found, using system environment variables")
	}
	return cfg, logger, nil
}

func newConvertCmd(opts *rootOptions) *cobra.Command {
	var input, output, sheet string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert the survey spreadsheet into a CSV table",
		Long: `Read the first worksheet of the survey export and write it, unchanged,
as a comma-delimited table. Missing output directories are created.

Example: surveyrank convert --input "Grad Program Exit Survey Data 2024 (1).xlsx" --output data/survey_data.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime(opts)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cmd.Flags().Changed("input") {
				cfg.Paths.SpreadsheetFile = input
			}
			if cmd.Flags().Changed("output") {
				cfg.Paths.CSVFile = output
			}
			if cmd.Flags().Changed("sheet") {
				cfg.Paths.Sheet = sheet
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runConvert(cmd.Context(), cfg, logger, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Spreadsheet to convert (default from SURVEY_INPUT_FILE)")
	cmd.Flags().StringVar(&output, "output", "", "CSV file to write (default from SURVEY_CSV_FILE)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name (default: first sheet)")

	return cmd
}

func runConvert(ctx context.Context, cfg *config.Config, logger *internal.Logger, out io.Writer) error {
	readerOpts := []excel.ReaderOption{excel.WithLogger(logger)}
	if cfg.Paths.Sheet != "" {
		readerOpts = append(readerOpts, excel.WithSheet(cfg.Paths.Sheet))
	}
	reader := excel.NewDataReader(cfg.Paths.SpreadsheetFile, readerOpts...)
	if err := checkSheet(reader, cfg.Paths.Sheet); err != nil {
		return err
	}

	svc := app.NewConvertService(reader, excel.NewTableWriter(logger), out, logger)
	_, err := svc.Convert(ctx, app.ConvertRequest{
		InputPath:  cfg.Paths.SpreadsheetFile,
		OutputPath: cfg.Paths.CSVFile,
	})
	return err
}

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var input, chartFile, prefix, backend string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute average ranks and save a bar chart",
		Long: `Load the converted CSV table, find the ranking columns by prefix, label them
from the Question Text row, average each column over the respondent rows and
print the result from best (lowest) to worst. A bar chart is saved as well.

Example: surveyrank analyze --input data/survey_data.csv --chart outputs/rank_order.png --prefix Q35_`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime(opts)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cmd.Flags().Changed("input") {
				cfg.Paths.CSVFile = input
			}
			if cmd.Flags().Changed("chart") {
				cfg.Paths.ChartFile = chartFile
			}
			if cmd.Flags().Changed("prefix") {
				cfg.Ranking.ColumnPrefix = prefix
			}
			if cmd.Flags().Changed("backend") {
				cfg.Chart.Backend = backend
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), cfg, logger, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "CSV table to analyze (default from SURVEY_CSV_FILE)")
	cmd.Flags().StringVar(&chartFile, "chart", "", "Chart image to write (default from SURVEY_CHART_FILE)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Ranking column prefix (default from RANK_COLUMN_PREFIX)")
	cmd.Flags().StringVar(&backend, "backend", "", "Chart backend: gonum|gochart (default from CHART_BACKEND)")

	return cmd
}

// checkSheet rejects a --sheet that the workbook does not have. A missing
// workbook is left for the converter to report.
func checkSheet(reader *excel.DataReader, sheet string) error {
	if sheet == "" {
		return nil
	}
	sheets, err := reader.SheetNames()
	if err != nil {
		if errors.IsInputNotFound(err) {
			return nil
		}
		return err
	}
	if !slices.Contains(sheets, sheet) {
		return errors.InvalidInput(fmt.Sprintf("sheet %q not found in %s; available sheets: %s",
			sheet, reader.Path(), strings.Join(sheets, ", ")))
	}
	return nil
}

func runAnalyze(ctx context.Context, cfg *config.Config, logger *internal.Logger, out io.Writer) error {
	renderer, err := chart.NewRenderer(cfg.Chart.Backend, logger)
	if err != nil {
		return err
	}

	svc := app.NewRankingService(
		excel.NewDataReader(cfg.Paths.CSVFile, excel.WithFileType(excel.FileTypeCSV), excel.WithLogger(logger)),
		renderer,
		coercer.NewTypeCoercer(coercer.DefaultCoercionConfig()),
		app.RankingConfig{
			CSVPath:        cfg.Paths.CSVFile,
			ChartPath:      cfg.Paths.ChartFile,
			ColumnPrefix:   cfg.Ranking.ColumnPrefix,
			LabelSeparator: cfg.Ranking.LabelSeparator,
			MetadataRows:   cfg.Ranking.MetadataRows,
			ReportTitle:    cfg.Report.Title,
			Chart: ports.ChartSpec{
				Title:  cfg.Chart.Title,
				XLabel: cfg.Chart.XLabel,
				YLabel: cfg.Chart.YLabel,
			},
		},
		out,
		logger,
	)
	_, err = svc.Analyze(ctx)
	return err
}
