package ui

import (
	"strings"

	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
)

// MarkdownRenderMargin is the left margin used for terminal markdown rendering.
const MarkdownRenderMargin = 2

const defaultCodeTheme = "monokai"

var markdownCodeTheme = defaultCodeTheme

// ConfigureMarkdownCodeTheme sets the chroma theme for fenced code blocks.
// Matching is case-insensitive; unknown themes fall back to the default.
func ConfigureMarkdownCodeTheme(theme string) {
	markdownCodeTheme = defaultCodeTheme
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return
	}
	for _, name := range chromastyles.Names() {
		if strings.EqualFold(name, theme) {
			markdownCodeTheme = name
			return
		}
	}
}

// RenderMarkdown renders a log document for terminal display, wrapped at
// width columns.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(logMarkdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

// logMarkdownStyle starts from glamour's dark style. The document title and
// date sections stand out, capture sub-headings ("### [HH:MM:SS] ...") are
// muted.
func logMarkdownStyle() ansi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	muted := ptr("8")
	var accent *string
	if color, ok := AccentColor(); ok {
		accent = ptr(color)
	}

	cfg.Document.Margin = ptr(uint(MarkdownRenderMargin))
	cfg.Document.Color = nil

	cfg.Heading.Color = accent
	cfg.Heading.Bold = ptr(true)

	cfg.H1.Prefix = "# "
	cfg.H1.Suffix = ""
	cfg.H1.Color = accent
	cfg.H1.BackgroundColor = nil
	cfg.H1.Underline = ptr(true)

	cfg.H2.Underline = ptr(true)

	cfg.H3.Color = muted
	cfg.H3.Bold = ptr(false)

	cfg.Code.Color = muted
	cfg.Code.BackgroundColor = nil
	cfg.CodeBlock.Theme = markdownCodeTheme

	return cfg
}

func ptr[T any](v T) *T { return &v }
