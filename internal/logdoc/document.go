// Package logdoc models a markdown log document: an optional "# Title" line
// followed by "## YYYY-MM-DD (Weekday)" date sections.
//
// A document is deserialized from text once, mutated in memory through the
// section operations (Find, Append, Insert, Overwrite) and serialized once.
// Every line that is not touched by an operation is written back verbatim,
// so hand edits outside the affected section survive.
package logdoc

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aidanlsb/ironlog/internal/dates"
)

// HeaderMarker starts every section header line.
const HeaderMarker = "## "

var (
	// ErrSectionExists is returned by Insert when the date already has a section.
	ErrSectionExists = errors.New("date section already exists")
	// ErrSectionNotFound is returned by Append when the date has no section.
	ErrSectionNotFound = errors.New("date section not found")
)

// dateHeaderRegex captures the date key of a section header. The key must be
// followed by whitespace, "(" or end of line so "2026-02-1" never matches a
// header for "2026-02-10".
var dateHeaderRegex = regexp.MustCompile(`^## (\d{4}-\d{2}-\d{2})(?:[\s(]|$)`)

var blankRunRegex = regexp.MustCompile(`\n{3,}`)

// Section is a block that starts at a "## " header and runs until the next
// "## " header or the end of the document.
type Section struct {
	// Header is the raw header line, e.g. "## 2026-02-10 (Tuesday)".
	Header string
	// Date is the header's date key. Empty for headers that don't name a date.
	Date string
	// Body holds the lines after the header, including trailing blank lines.
	Body []string
}

// Dated reports whether the header names a date key.
func (s *Section) Dated() bool {
	return s.Date != ""
}

// Valid reports whether the header's date key is a real calendar date.
func (s *Section) Valid() bool {
	return s.Date != "" && dates.IsValidDate(s.Date)
}

// Content returns the body text without surrounding whitespace.
func (s *Section) Content() string {
	return strings.TrimSpace(strings.Join(s.Body, "\n"))
}

// Text returns the header and body as one trimmed block.
func (s *Section) Text() string {
	lines := append([]string{s.Header}, s.Body...)
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Document is an in-memory log document.
type Document struct {
	// Title is the raw title line ("# ..."), empty if the document has none.
	Title string
	// Lead holds the lines between the title and the first section.
	Lead     []string
	Sections []*Section
}

// New returns an empty document with the given title text.
func New(title string) *Document {
	doc := &Document{Lead: []string{""}}
	if title != "" {
		doc.Title = "# " + title
	}
	return doc
}

// Parse deserializes markdown text into a Document.
func Parse(content string) *Document {
	lines := SplitLines(content)
	doc := &Document{}

	start := 0
	if len(lines) > 0 && strings.HasPrefix(lines[0], "# ") {
		doc.Title = lines[0]
		start = 1
	}

	var current *Section
	for _, line := range lines[start:] {
		if strings.HasPrefix(line, HeaderMarker) {
			key, _ := DateKey(line)
			current = &Section{Header: line, Date: key}
			doc.Sections = append(doc.Sections, current)
			continue
		}
		if current == nil {
			doc.Lead = append(doc.Lead, line)
			continue
		}
		current.Body = append(current.Body, line)
	}

	return doc
}

// Lines serializes the document to lines, guaranteeing one blank line
// between the head of the document and each section.
func (d *Document) Lines() []string {
	var out []string
	if d.Title != "" {
		out = append(out, d.Title)
	}
	out = append(out, d.Lead...)
	for _, s := range d.Sections {
		if len(out) > 0 && out[len(out)-1] != "" {
			out = append(out, "")
		}
		out = append(out, s.Header)
		out = append(out, s.Body...)
	}
	return out
}

// String serializes and normalizes the document.
func (d *Document) String() string {
	return Normalize(strings.Join(d.Lines(), "\n"))
}

// Dates returns the date keys of all dated sections in document order.
func (d *Document) Dates() []string {
	var keys []string
	for _, s := range d.Sections {
		if s.Dated() {
			keys = append(keys, s.Date)
		}
	}
	return keys
}

// Section returns the section for date, or nil.
func (d *Document) Section(date string) *Section {
	if i := d.Find(date); i >= 0 {
		return d.Sections[i]
	}
	return nil
}

// Normalize collapses runs of two or more blank lines into one, trims
// surrounding whitespace and ends the text with exactly one newline.
func Normalize(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = blankRunRegex.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content) + "\n"
}

// SplitLines splits text into lines. A single trailing newline does not
// produce an empty final line, and empty text has no lines.
func SplitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// RenderHeader renders the section header for a date.
func RenderHeader(date string) (string, error) {
	weekday, err := dates.Weekday(date)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s (%s)", HeaderMarker, date, weekday), nil
}
