package survey

// Table is an ordered, text-valued survey table. Every row has exactly
// len(Headers) cells; readers pad short rows so that column positions line up.
type Table struct {
	Headers []string   // Column names, in file order
	Rows    [][]string // Data rows, in file order
}

// Number is a cell parsed as a number. Valid is false for missing values.
type Number struct {
	Value float64
	Valid bool
}

// Missing is the missing-value marker
var Missing = Number{}

// NumberOf wraps a parsed value
func NumberOf(v float64) Number {
	return Number{Value: v, Valid: true}
}

// RankingColumn identifies one item of a multi-item ranking question
type RankingColumn struct {
	Name  string // Raw header, e.g. Q35_1
	Label string // Human-readable label derived from the Question Text row
	Index int    // Position in the source table
}

// RankEntry is the aggregate for one ranking column
type RankEntry struct {
	Label     string
	Column    string
	Mean      float64 // NaN when the column has no numeric responses
	StdDev    float64 // Sample standard deviation, NaN with fewer than two responses
	Responses int     // Number of non-missing responses
}

// RankSeries is an ordered list of rank entries
type RankSeries []RankEntry

// Labels returns the entry labels in series order
func (s RankSeries) Labels() []string {
	labels := make([]string, len(s))
	for i, e := range s {
		labels[i] = e.Label
	}
	return labels
}

// Means returns the entry means in series order
func (s RankSeries) Means() []float64 {
	means := make([]float64, len(s))
	for i, e := range s {
		means[i] = e.Mean
	}
	return means
}
