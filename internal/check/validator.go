// Package check validates workout log documents against their layout rules.
package check

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aidanlsb/ironlog/internal/dates"
)

// IssueLevel indicates the severity of an issue.
type IssueLevel int

const (
	LevelError IssueLevel = iota
	LevelWarning
)

func (l IssueLevel) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARN"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the level as "error" or "warning" in JSON output.
func (l IssueLevel) MarshalText() ([]byte, error) {
	switch l {
	case LevelError:
		return []byte("error"), nil
	case LevelWarning:
		return []byte("warning"), nil
	}
	return nil, fmt.Errorf("unknown issue level %d", int(l))
}

// IssueType classifies an issue for machine consumers.
type IssueType string

const (
	IssueMissingTitle    IssueType = "missing_title"
	IssueInvalidDate     IssueType = "invalid_date"
	IssueDuplicateDate   IssueType = "duplicate_date"
	IssueOutOfOrder      IssueType = "out_of_order"
	IssueWeekdayMismatch IssueType = "weekday_mismatch"
	IssueWrongMonth      IssueType = "wrong_month"
	IssueDigestTooLong   IssueType = "digest_too_long"
	IssueDigestStale     IssueType = "digest_stale"
)

// Issue represents a validation issue.
type Issue struct {
	Level    IssueLevel `json:"level"`
	Type     IssueType  `json:"type"`
	FilePath string     `json:"file"`
	Line     int        `json:"line,omitempty"`
	Date     string     `json:"date,omitempty"`
	Message  string     `json:"message"`
}

func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("%s %s:%d: %s", i.Level, i.FilePath, i.Line, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", i.Level, i.FilePath, i.Message)
}

// Kind selects the rules a document is validated with.
type Kind int

const (
	KindMaster Kind = iota
	KindMonthly
	KindDigest
)

// Document describes one file to validate.
type Document struct {
	Kind  Kind
	Path  string
	Title string // expected title text without "# ", empty to skip
	Month string // YYYY-MM, monthly documents only
	Limit int    // maximum sections, digest only
}

// headingDateRegex matches "2026-02-10", "2026-02-10 (Tuesday)" and the like.
var headingDateRegex = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})(?:[\s(]|$)`)

var weekdayLabelRegex = regexp.MustCompile(`^\s*\(([^)]*)\)`)

// Entry is a dated level-2 heading of a validated document.
type Entry struct {
	Date string
	Line int
}

// Validate checks content against the rules for doc. It returns the issues
// and the valid dated entries in document order.
func Validate(doc Document, content []byte) ([]Issue, []Entry, error) {
	headings, err := Headings(content)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", doc.Path, err)
	}

	var issues []Issue
	add := func(level IssueLevel, typ IssueType, line int, date, format string, args ...any) {
		issues = append(issues, Issue{
			Level:    level,
			Type:     typ,
			FilePath: doc.Path,
			Line:     line,
			Date:     date,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if doc.Title != "" && len(strings.TrimSpace(string(content))) > 0 {
		if len(headings) == 0 || headings[0].Level != 1 || headings[0].Line != 1 {
			add(LevelWarning, IssueMissingTitle, 1, "", "Expected title '# %s' on the first line", doc.Title)
		} else if headings[0].Text != doc.Title {
			add(LevelWarning, IssueMissingTitle, 1, "", "Title is '%s', expected '%s'", headings[0].Text, doc.Title)
		}
	}

	var entries []Entry
	seen := make(map[string]int)
	for _, h := range headings {
		if h.Level != 2 {
			continue
		}
		m := headingDateRegex.FindStringSubmatch(h.Text)
		if m == nil {
			continue
		}
		date := m[1]
		if !dates.IsValidDate(date) {
			add(LevelWarning, IssueInvalidDate, h.Line, date, "Section header date '%s' is not a calendar date", date)
			continue
		}

		if first, ok := seen[date]; ok {
			add(LevelError, IssueDuplicateDate, h.Line, date, "Duplicate section for %s (first on line %d)", date, first)
			continue
		}
		seen[date] = h.Line

		if n := len(entries); n > 0 && date > entries[n-1].Date {
			add(LevelError, IssueOutOfOrder, h.Line, date, "Section %s is newer than the section above it (%s)", date, entries[n-1].Date)
		}

		if label := weekdayLabelRegex.FindStringSubmatch(h.Text[len(date):]); label != nil {
			want, _ := dates.Weekday(date)
			if strings.TrimSpace(label[1]) != want {
				add(LevelWarning, IssueWeekdayMismatch, h.Line, date, "Weekday label '%s' should be '%s'", label[1], want)
			}
		}

		if doc.Kind == KindMonthly && doc.Month != "" && !strings.HasPrefix(date, doc.Month+"-") {
			add(LevelError, IssueWrongMonth, h.Line, date, "Section %s does not belong to %s", date, doc.Month)
		}

		entries = append(entries, Entry{Date: date, Line: h.Line})
	}

	if doc.Kind == KindDigest && doc.Limit > 0 && len(entries) > doc.Limit {
		add(LevelError, IssueDigestTooLong, 0, "", "Digest holds %d dates, limit is %d", len(entries), doc.Limit)
	}

	return issues, entries, nil
}
