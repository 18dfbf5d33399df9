package examcheck

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/okian/examprep/pkg/logger"
)

// answerMatches compares a solve result, as decoded from JSON, with the
// catalog's expected answer. Expected fractions such as "3/5" are evaluated
// first; a decimal such as "1.414" matches anything that rounds to it.
func answerMatches(expected string, result any) bool {
	expected = strings.TrimSpace(expected)
	switch v := result.(type) {
	case float64:
		want, ok := parseAnswer(expected)
		return ok && math.Abs(want-v) <= answerTolerance(expected)
	case string:
		return strings.TrimSpace(v) == expected
	case []any:
		return compact(formatResult(v)) == compact(expected)
	default:
		return false
	}
}

// parseAnswer reads a decimal or a fraction.
func parseAnswer(s string) (float64, bool) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, false
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// answerTolerance is half a unit in the last stated decimal place, or
// floatTolerance for whole numbers and fractions.
func answerTolerance(s string) float64 {
	if strings.Contains(s, "/") {
		return floatTolerance
	}
	_, frac, ok := strings.Cut(s, ".")
	if !ok {
		return floatTolerance
	}
	digits := len(frac)
	if i := strings.IndexAny(frac, "eE"); i >= 0 {
		digits = i
	}
	if digits == 0 {
		return floatTolerance
	}
	return 0.5*math.Pow10(-digits) + floatTolerance
}

// formatResult renders a decoded result in the catalog's notation, e.g.
// [[4, 4], [10, 8]].
func formatResult(result any) string {
	switch v := result.(type) {
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = formatResult(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "?"
	}
}

func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// verifyResults tallies the replay verdicts into the report.
func verifyResults(ctx context.Context, report *Report) {
	for _, r := range report.Results {
		switch r.Status {
		case StatusMatched:
			report.Matched++
		case StatusMismatch:
			report.Mismatched++
			logger.Get().Warn(ctx, "sample answer mismatch",
				logger.String("topic", r.Topic),
				logger.String("sampleID", r.SampleID),
				logger.String("expected", r.Expected),
				logger.String("got", r.Got))
		case StatusFailed:
			report.Failed++
			logger.Get().Error(ctx, "sample failed to solve",
				logger.String("topic", r.Topic),
				logger.String("sampleID", r.SampleID),
				logger.String("error", r.Err))
		}
	}
}
