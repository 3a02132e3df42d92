package ranking

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jaecal82/macc-survey-analysis/domain/survey"

	"github.com/montanaflynn/stats"
)

// Summarize computes the mean of the non-missing numbers. A column with no
// numeric values gets a NaN mean rather than an error.
func Summarize(label, column string, numbers []survey.Number) survey.RankEntry {
	data := make(stats.Float64Data, 0, len(numbers))
	for _, n := range numbers {
		if n.Valid {
			data = append(data, n.Value)
		}
	}

	entry := survey.RankEntry{
		Label:     label,
		Column:    column,
		Mean:      math.NaN(),
		StdDev:    math.NaN(),
		Responses: len(data),
	}

	if mean, err := stats.Mean(data); err == nil {
		entry.Mean = mean
	}
	if len(data) > 1 {
		if sd, err := stats.StandardDeviationSample(data); err == nil {
			entry.StdDev = sd
		}
	}
	return entry
}

// SortAscending orders the series by mean, lowest first. Ties keep their
// discovery order and NaN means go last.
func SortAscending(series survey.RankSeries) survey.RankSeries {
	sorted := append(survey.RankSeries(nil), series...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Mean, sorted[j].Mean
		if math.IsNaN(a) {
			return false
		}
		return math.IsNaN(b) || a < b
	})
	return sorted
}

// FormatMean renders a mean with up to six decimals and at least one, so
// 1 prints as "1.0" and 7/3 as "2.333333".
func FormatMean(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 0) {
		if v > 0 {
			return "inf"
		}
		return "-inf"
	}

	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	if s == "-0.0" {
		s = "0.0"
	}
	return s
}
