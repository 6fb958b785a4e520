package logdoc

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/ironlog/internal/dates"
)

// DateKey extracts the date key from a section header line.
func DateKey(line string) (string, bool) {
	m := dateHeaderRegex.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsDateHeader reports whether line is the header for date.
func IsDateHeader(line, date string) bool {
	prefix := HeaderMarker + date
	if !strings.HasPrefix(line, prefix) {
		return false
	}
	rest := line[len(prefix):]
	if rest == "" {
		return true
	}
	switch rest[0] {
	case ' ', '\t', '(':
		return true
	}
	return false
}

// HeaderIndex returns the index of the first header line for date, or -1.
func HeaderIndex(lines []string, date string) int {
	for i, line := range lines {
		if IsDateHeader(line, date) {
			return i
		}
	}
	return -1
}

// Find returns the index of the section for date, or -1.
func (d *Document) Find(date string) int {
	for i, s := range d.Sections {
		if s.Date == date {
			return i
		}
	}
	return -1
}

// Append adds a blank line and content to the end of the section for date.
func (d *Document) Append(date, content string) error {
	i := d.Find(date)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, date)
	}
	s := d.Sections[i]
	s.Body = append(s.Body, "")
	s.Body = append(s.Body, SplitLines(content)...)
	return nil
}

// Insert adds a new section for date so that dated sections stay ordered
// newest first. The existing order is trusted: the new section goes before
// the first valid dated section older than date, after the last one if all
// are newer, or first when the document has no dated sections.
func (d *Document) Insert(date, content string) error {
	header, err := RenderHeader(date)
	if err != nil {
		return err
	}
	if d.Find(date) >= 0 {
		return fmt.Errorf("%w: %s", ErrSectionExists, date)
	}

	s := &Section{Header: header, Date: date, Body: SplitLines(content)}
	at := d.insertionIndex(date)
	d.Sections = append(d.Sections, nil)
	copy(d.Sections[at+1:], d.Sections[at:])
	d.Sections[at] = s
	return nil
}

func (d *Document) insertionIndex(date string) int {
	hasDates := false
	for i, s := range d.Sections {
		// Headers with an unparsable key are skipped, not fatal.
		if !s.Valid() {
			continue
		}
		hasDates = true
		if date > s.Date {
			return i
		}
	}
	if hasDates {
		return len(d.Sections)
	}
	return 0
}

// Remove deletes the section for date and reports whether it existed.
func (d *Document) Remove(date string) bool {
	i := d.Find(date)
	if i < 0 {
		return false
	}
	d.Sections = append(d.Sections[:i], d.Sections[i+1:]...)
	return true
}

// Overwrite replaces the section for date with a fresh one holding content.
// A missing section degrades to Insert.
func (d *Document) Overwrite(date, content string) error {
	if !dates.IsValidDate(date) {
		return fmt.Errorf("%w: %q", dates.ErrInvalidDate, date)
	}
	d.Remove(date)
	return d.Insert(date, content)
}

// Save appends content to the section for date, inserting the section in
// chronological position when it doesn't exist yet.
func (d *Document) Save(date, content string) error {
	if !dates.IsValidDate(date) {
		return fmt.Errorf("%w: %q", dates.ErrInvalidDate, date)
	}
	if d.Find(date) >= 0 {
		return d.Append(date, content)
	}
	return d.Insert(date, content)
}
