package excel

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jaecal82/macc-survey-analysis/domain/survey"
	"github.com/jaecal82/macc-survey-analysis/internal"
	"github.com/jaecal82/macc-survey-analysis/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string // worksheet name; empty means the first sheet
	logger   *internal.Logger
}

// ReaderOption configures a DataReader
type ReaderOption func(*DataReader)

// WithSheet selects a worksheet by name instead of the first one
func WithSheet(sheet string) ReaderOption {
	return func(r *DataReader) { r.sheet = sheet }
}

// WithFileType forces the parser instead of detecting it from the extension.
// The converter always writes comma-delimited text, whatever the file is called.
func WithFileType(fileType string) ReaderOption {
	return func(r *DataReader) { r.fileType = fileType }
}

// WithLogger sets the reader's logger
func WithLogger(logger *internal.Logger) ReaderOption {
	return func(r *DataReader) { r.logger = logger }
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string, opts ...ReaderOption) *DataReader {
	r := &DataReader{
		filePath: filePath,
		fileType: detectFileType(filePath),
		logger:   internal.DefaultLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func detectFileType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		return FileTypeCSV
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FileTypeXLSX
	default:
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), ".")
	}
}

// Path returns the file the reader was created for
func (r *DataReader) Path() string {
	return r.filePath
}

// ReadTable reads the file into an ordered table. The first row becomes the
// header; all other rows are kept verbatim and in order.
func (r *DataReader) ReadTable(ctx context.Context) (*survey.Table, error) {
	r.logger.Debug("Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.InputNotFound(r.filePath)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		records [][]string
		err     error
	)
	switch r.fileType {
	case FileTypeCSV:
		records, err = r.readCSVRecords()
	case FileTypeXLSX:
		records, err = r.readExcelRecords()
	default:
		return nil, errors.UnsupportedFormat(r.fileType)
	}
	if err != nil {
		return nil, errors.InputUnreadable(r.filePath, err)
	}

	if len(records) == 0 {
		return nil, errors.InputUnreadable(r.filePath, errors.MalformedTable("file has no header row"))
	}

	table := survey.NewTable(records)
	r.logger.Info("%s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), table.Width(), table.Len())
	return table, nil
}

// SheetNames lists the worksheets of an Excel file in workbook order
func (r *DataReader) SheetNames() ([]string, error) {
	if r.fileType != FileTypeXLSX {
		return nil, errors.UnsupportedFormat(r.fileType)
	}
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.InputNotFound(r.filePath)
	}
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.InputUnreadable(r.filePath, err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// readExcelRecords reads every row of the selected worksheet with raw
// (unformatted) cell values.
func (r *DataReader) readExcelRecords() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r.logger.Debug("Excel file opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.MalformedTable("workbook has no worksheets")
		}
		sheet = sheets[0]
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Sheet %q read in %.2fms (%d rows)", sheet, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// readCSVRecords reads CSV data; ragged rows are allowed and padded later.
// Quotes inside unquoted cells are literal text (export metadata rows hold
// cells like {"ImportId":"QID35_1"}).
func (r *DataReader) readCSVRecords() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	r.logger.Debug("CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return rows, nil
}
