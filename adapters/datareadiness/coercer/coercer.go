package coercer

import (
	"math"
	"strconv"
	"strings"

	"github.com/jaecal82/macc-survey-analysis/domain/survey"
)

// TypeCoercer turns survey cell text into optional numbers. Anything that
// does not parse is reported as missing instead of failing the run.
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	TrimSpace     bool     `json:"trim_space"`     // Trim surrounding whitespace before parsing
	MissingTokens []string `json:"missing_tokens"` // Values always treated as missing (case-insensitive)
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		TrimSpace:     true,
		MissingTokens: []string{"", "n/a", "na", "nan", "null", "none", "-"},
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	tokens := make([]string, len(config.MissingTokens))
	for i, tok := range config.MissingTokens {
		tokens[i] = strings.ToLower(tok)
	}
	config.MissingTokens = tokens
	return &TypeCoercer{config: config}
}

// ParseNumber converts a single cell into a Number. Empty, non-numeric and
// NaN cells come back as survey.Missing.
func (c *TypeCoercer) ParseNumber(raw string) survey.Number {
	strVal := raw
	if c.config.TrimSpace {
		strVal = strings.TrimSpace(strVal)
	}

	if c.isMissingToken(strVal) {
		return survey.Missing
	}

	if isHexLiteral(strVal) {
		return survey.Missing
	}

	val, err := strconv.ParseFloat(strVal, 64)
	if err != nil || math.IsNaN(val) {
		return survey.Missing
	}
	return survey.NumberOf(val)
}

// CoerceColumn parses every cell of one column independently
func (c *TypeCoercer) CoerceColumn(cells []string) ([]survey.Number, ColumnAnalysis) {
	numbers := make([]survey.Number, len(cells))
	analysis := ColumnAnalysis{TotalCount: len(cells)}

	for i, cell := range cells {
		n := c.ParseNumber(cell)
		numbers[i] = n
		if n.Valid {
			analysis.NumericCount++
		} else {
			analysis.MissingCount++
		}
	}

	if analysis.TotalCount > 0 {
		analysis.NumericRatio = float64(analysis.NumericCount) / float64(analysis.TotalCount)
	}
	return numbers, analysis
}

// isHexLiteral reports a 0x-prefixed number, which ParseFloat would accept
// but a survey cell never means.
func isHexLiteral(strVal string) bool {
	unsigned := strings.TrimLeft(strVal, "+-")
	return len(unsigned) >= 2 && unsigned[0] == '0' && (unsigned[1] == 'x' || unsigned[1] == 'X')
}

func (c *TypeCoercer) isMissingToken(strVal string) bool {
	lower := strings.ToLower(strVal)
	for _, tok := range c.config.MissingTokens {
		if lower == tok {
			return true
		}
	}
	return false
}

// ColumnAnalysis summarises how a column coerced
type ColumnAnalysis struct {
	TotalCount   int     `json:"total_count"`
	NumericCount int     `json:"numeric_count"`
	MissingCount int     `json:"missing_count"`
	NumericRatio float64 `json:"numeric_ratio"`
}
