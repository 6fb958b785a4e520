package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders space-aligned columns without borders. Widths are measured
// in terminal cells, so styled and wide (CJK) text lines up.
type Table struct {
	rows       [][]string
	colWidths  []int
	colPadding int
	maxWidth   int
}

// NewTable creates a new table with the specified number of columns
func NewTable(cols int) *Table {
	return &Table{
		colWidths:  make([]int, cols),
		colPadding: 2,
	}
}

// SetMaxWidth truncates the last column so rows fit in width cells.
// Zero disables truncation.
func (t *Table) SetMaxWidth(width int) {
	t.maxWidth = width
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.colWidths))
	for i := 0; i < len(t.colWidths) && i < len(cells); i++ {
		row[i] = cells[i]
		if w := lipgloss.Width(cells[i]); w > t.colWidths[i] {
			t.colWidths[i] = w
		}
	}
	t.rows = append(t.rows, row)
}

// String renders the table as a string
func (t *Table) String() string {
	if len(t.rows) == 0 {
		return ""
	}

	var sb strings.Builder
	padding := strings.Repeat(" ", t.colPadding)

	lead := 0
	for i := 0; i < len(t.colWidths)-1; i++ {
		lead += t.colWidths[i] + t.colPadding
	}

	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(padding)
			}
			if i < len(row)-1 {
				sb.WriteString(cell)
				sb.WriteString(strings.Repeat(" ", t.colWidths[i]-lipgloss.Width(cell)))
				continue
			}
			if t.maxWidth > 0 && lead+lipgloss.Width(cell) > t.maxWidth {
				cell = truncate(cell, t.maxWidth-lead)
			}
			sb.WriteString(cell)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// truncate shortens plain text to width cells, marking the cut with "…".
func truncate(s string, width int) string {
	if width <= 1 {
		return "…"
	}
	var sb strings.Builder
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > width-1 {
			break
		}
		sb.WriteRune(r)
		used += w
	}
	return sb.String() + "…"
}
