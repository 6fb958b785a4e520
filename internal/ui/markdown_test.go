package ui

import (
	"strings"
	"testing"
)

const sampleDigest = "# Recent Workouts (Last 7 Days)\n\n## 2026-02-10 (Tuesday)\n### [13:41:17] 운동 부위: 가슴\n\n### 운동 종목\nbench 60kg\n"

func TestRenderMarkdownKeepsContent(t *testing.T) {
	out, err := RenderMarkdown(sampleDigest, 80)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	for _, want := range []string{"Recent Workouts", "2026-02-10", "운동 부위", "bench 60kg"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output lost %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Errorf("expected exactly one trailing newline, got %q", out[max(0, len(out)-10):])
	}
}

func TestRenderMarkdownNonPositiveWidth(t *testing.T) {
	out, err := RenderMarkdown("squat 5x5", 0)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.Contains(out, "squat 5x5") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestLogMarkdownStyle(t *testing.T) {
	style := logMarkdownStyle()

	if style.H1.Prefix != "# " || style.H1.BackgroundColor != nil {
		t.Errorf("title heading should render as plain '# ', got prefix %q", style.H1.Prefix)
	}
	if style.H2.Underline == nil || !*style.H2.Underline {
		t.Error("date sections should be underlined")
	}
	if style.H3.Color == nil || *style.H3.Color != "8" {
		t.Error("capture headings should be muted")
	}
	if style.Document.Margin == nil || *style.Document.Margin != MarkdownRenderMargin {
		t.Error("document margin not applied")
	}
}

func TestConfigureMarkdownCodeTheme(t *testing.T) {
	t.Cleanup(func() { markdownCodeTheme = defaultCodeTheme })

	tests := []struct {
		input string
		want  string
	}{
		{"DrAcUlA", "dracula"},
		{"  github ", "github"},
		{"", defaultCodeTheme},
		{"not-a-real-theme", defaultCodeTheme},
	}
	for _, tt := range tests {
		ConfigureMarkdownCodeTheme(tt.input)
		if markdownCodeTheme != tt.want {
			t.Errorf("ConfigureMarkdownCodeTheme(%q) = %q, want %q", tt.input, markdownCodeTheme, tt.want)
		}
		if got := logMarkdownStyle().CodeBlock.Theme; got != tt.want {
			t.Errorf("style theme = %q, want %q", got, tt.want)
		}
	}
}
