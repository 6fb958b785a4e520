// Package digest rebuilds the rolling "recent workouts" document.
//
// The digest is never edited incrementally: every write parses the existing
// digest, replaces the target date's entry, re-sorts and truncates.
package digest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aidanlsb/ironlog/internal/dates"
	"github.com/aidanlsb/ironlog/internal/logdoc"
)

const (
	// Title is the fixed title line of the digest document.
	Title = "# Recent Workouts (Last 7 Days)"
	// DefaultLimit is the number of dates the digest keeps.
	DefaultLimit = 7
)

// Entry is one date's block in the digest, header included.
type Entry struct {
	Date string
	Text string
}

// Parse splits a digest document into entries. Each entry starts at a dated
// header and runs to the next dated header; undated "## " blocks stay with
// the entry above them and anything before the first entry is dropped.
func Parse(content string) []Entry {
	doc := logdoc.Parse(content)

	var entries []Entry
	var current []string
	date := ""
	flush := func() {
		if date != "" {
			entries = append(entries, Entry{Date: date, Text: strings.TrimSpace(strings.Join(current, "\n"))})
		}
	}

	for _, s := range doc.Sections {
		if !s.Dated() {
			if date != "" {
				current = append(current, s.Header)
				current = append(current, s.Body...)
			}
			continue
		}
		flush()
		date = s.Date
		current = append([]string{s.Header}, s.Body...)
	}
	flush()

	return entries
}

// Build returns the new digest text after saving content for date. existing
// is the current digest text (empty if there is none). limit <= 0 selects
// DefaultLimit.
func Build(existing, date, content string, limit int) (string, error) {
	entry, err := render(date, content)
	if err != nil {
		return "", err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	seen := map[string]bool{date: true}
	entries := []Entry{}
	for _, e := range Parse(existing) {
		if seen[e.Date] {
			continue
		}
		seen[e.Date] = true
		entries = append(entries, e)
	}
	entries = append(entries, entry)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	return Render(entries), nil
}

// Render writes entries under the digest title.
func Render(entries []Entry) string {
	var b strings.Builder
	b.WriteString(Title)
	b.WriteString("\n\n")
	for _, e := range entries {
		b.WriteString(e.Text)
		b.WriteString("\n\n")
	}
	return logdoc.Normalize(b.String())
}

func render(date, content string) (Entry, error) {
	if !dates.IsValidDate(date) {
		return Entry{}, fmt.Errorf("%w: %q", dates.ErrInvalidDate, date)
	}
	header, err := logdoc.RenderHeader(date)
	if err != nil {
		return Entry{}, err
	}
	text := strings.TrimSpace(header + "\n" + content)
	return Entry{Date: date, Text: text}, nil
}
