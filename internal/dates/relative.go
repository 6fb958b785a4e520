package dates

import (
	"strings"
	"time"
)

// RelativeDateResolution is the resolved representation of a relative date keyword.
type RelativeDateResolution struct {
	Keyword string
	Date    time.Time
}

// relativeDateKeywords maps accepted keywords to a day offset from today.
var relativeDateKeywords = map[string]int{
	"today":     0,
	"yesterday": -1,
	"tomorrow":  1,
	"오늘":        0,
	"어제":        -1,
	"내일":        1,
}

// NormalizeRelativeDateKeyword normalizes and validates a relative date keyword.
// Returns the canonical keyword and true when valid.
func NormalizeRelativeDateKeyword(value string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if _, ok := relativeDateKeywords[normalized]; !ok {
		return "", false
	}
	return normalized, true
}

// ResolveRelativeDateKeyword resolves a relative date keyword using the provided "now".
func ResolveRelativeDateKeyword(value string, now time.Time) (RelativeDateResolution, bool) {
	keyword, ok := NormalizeRelativeDateKeyword(value)
	if !ok {
		return RelativeDateResolution{}, false
	}
	offset := relativeDateKeywords[keyword]
	return RelativeDateResolution{
		Keyword: keyword,
		Date:    startOfDay(now).AddDate(0, 0, offset),
	}, true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
