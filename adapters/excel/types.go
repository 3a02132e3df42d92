package excel

// Supported file types
const (
	FileTypeXLSX = "xlsx"
	FileTypeCSV  = "csv"
)
