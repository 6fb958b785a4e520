package check

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is an ATX or setext heading found in a markdown document.
type Heading struct {
	Level int
	Text  string
	Line  int // 1-indexed
}

// Headings parses content with goldmark and returns its headings in order.
// Headings inside code blocks are not reported.
func Headings(content []byte) ([]Heading, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(content))
	lineStarts := computeLineStarts(content)

	var headings []Heading
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		// goldmark splits text at inline markers like '[', so join every text child.
		var b strings.Builder
		for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
			if t, ok := child.(*ast.Text); ok {
				b.Write(t.Segment.Value(content))
				if t.SoftLineBreak() {
					b.WriteByte(' ')
				}
			}
		}

		line := 0
		if heading.Lines().Len() > 0 {
			line = offsetToLine(lineStarts, heading.Lines().At(0).Start) + 1
		}
		headings = append(headings, Heading{
			Level: heading.Level,
			Text:  strings.TrimSpace(b.String()),
			Line:  line,
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	return headings, nil
}

func computeLineStarts(content []byte) []int {
	starts := []int{0}
	for i, c := range content {
		if c == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offsetToLine converts a byte offset to a 0-indexed line number.
func offsetToLine(lineStarts []int, offset int) int {
	for i := len(lineStarts) - 1; i >= 0; i-- {
		if lineStarts[i] <= offset {
			return i
		}
	}
	return 0
}
