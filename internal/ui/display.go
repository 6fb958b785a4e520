package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/x/term"
)

// Width bounds for output that is not attached to a terminal or that would
// wrap too narrowly to read.
const (
	DefaultWidth = 100
	minWidth     = 40
)

// Display describes where command output goes.
type Display struct {
	Width int
	TTY   bool
}

// DetectDisplay inspects w. Only an *os.File attached to a terminal reports
// its real width; anything else gets DefaultWidth.
func DetectDisplay(w io.Writer) Display {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(f.Fd()) {
		return Display{Width: DefaultWidth}
	}
	d := Display{Width: DefaultWidth, TTY: true}
	if cols, _, err := term.GetSize(f.Fd()); err == nil && cols > 0 {
		d.Width = cols
	}
	return d
}

// MarkdownWidth is the word-wrap width for rendered markdown, leaving room
// for the left and right render margins.
func (d Display) MarkdownWidth() int {
	return clampWidth(d.Width - 2*MarkdownRenderMargin)
}

// TableWidth is the maximum rendered row width for tables.
func (d Display) TableWidth() int {
	return clampWidth(d.Width)
}

func clampWidth(w int) int {
	if w < minWidth {
		return minWidth
	}
	return w
}
