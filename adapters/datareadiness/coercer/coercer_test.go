package coercer

import (
	"testing"

	"github.com/jaecal82/macc-survey-analysis/domain/survey"
)

func TestParseNumber(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	tests := []struct {
		name     string
		input    string
		expected survey.Number
	}{
		{"integer rank", "3", survey.NumberOf(3)},
		{"float rank", "2.5", survey.NumberOf(2.5)},
		{"padded", "  4 ", survey.NumberOf(4)},
		{"negative", "-1", survey.NumberOf(-1)},
		{"empty", "", survey.Missing},
		{"blank", "   ", survey.Missing},
		{"not applicable", "N/A", survey.Missing},
		{"nan text", "NaN", survey.Missing},
		{"word", "first", survey.Missing},
		{"question text", "Rank the following - Intro to Accounting", survey.Missing},
		{"import id json", `{"ImportId":"QID35_1"}`, survey.Missing},
		{"hex float", "0x1p1", survey.Missing},
		{"signed hex", "-0X2p0", survey.Missing},
		{"leading zero decimal", "0.5", survey.NumberOf(0.5)},
		{"exponent", "1e1", survey.NumberOf(10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ParseNumber(tt.input)
			if got != tt.expected {
				t.Errorf("ParseNumber(%q) = %+v, expected %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseNumberWithoutTrim(t *testing.T) {
	c := NewTypeCoercer(CoercionConfig{TrimSpace: false})
	if got := c.ParseNumber(" 3"); got.Valid {
		t.Errorf("Expected untrimmed ' 3' to be missing, got %+v", got)
	}
	if got := c.ParseNumber(""); got.Valid {
		t.Errorf("Expected empty cell to be missing, got %+v", got)
	}
}

func TestCoerceColumn(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	numbers, analysis := c.CoerceColumn([]string{"1", "3", "", "N/A"})

	if len(numbers) != 4 {
		t.Fatalf("Expected 4 numbers, got %d", len(numbers))
	}
	if !numbers[0].Valid || numbers[0].Value != 1 {
		t.Errorf("Expected first cell to be 1, got %+v", numbers[0])
	}
	if numbers[2].Valid || numbers[3].Valid {
		t.Errorf("Expected trailing cells to be missing, got %+v %+v", numbers[2], numbers[3])
	}
	if analysis.NumericCount != 2 || analysis.MissingCount != 2 || analysis.TotalCount != 4 {
		t.Errorf("Unexpected analysis: %+v", analysis)
	}
	if analysis.NumericRatio != 0.5 {
		t.Errorf("Expected numeric ratio 0.5, got %f", analysis.NumericRatio)
	}
}

func TestCoerceEmptyColumn(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())
	numbers, analysis := c.CoerceColumn(nil)
	if len(numbers) != 0 || analysis.TotalCount != 0 || analysis.NumericRatio != 0 {
		t.Errorf("Expected empty analysis, got %d numbers and %+v", len(numbers), analysis)
	}
}
