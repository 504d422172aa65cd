package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdownKeepsText(t *testing.T) {
	out := RenderMarkdown("The cat is named **Felix**.", 80)
	if !strings.Contains(out, "Felix") {
		t.Errorf("rendered output lost the text: %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("rendered output should end with a newline")
	}
}

func TestRenderMarkdownStripsLinkSyntax(t *testing.T) {
	out := RenderMarkdown("See [the docs](https://example.com/docs) for more.", 80)
	if strings.Contains(out, "[the docs]") {
		t.Errorf("link syntax should be stripped: %q", out)
	}
	if !strings.Contains(out, "https://example.com/docs") {
		t.Errorf("URL should survive as plain text: %q", out)
	}
}

func TestRenderMarkdownZeroWidth(t *testing.T) {
	out := RenderMarkdown("hello", 0)
	if !strings.Contains(out, "hello") {
		t.Errorf("zero width should fall back to the default, got %q", out)
	}
}

func TestWidth(t *testing.T) {
	t.Setenv("COLUMNS", "132")
	if got := Width(); got != 132 {
		t.Errorf("Width() = %d, want 132", got)
	}

	t.Setenv("COLUMNS", "garbage")
	if got := Width(); got != defaultWidth {
		t.Errorf("Width() = %d, want default %d", got, defaultWidth)
	}
}

func TestFormatKeyValues(t *testing.T) {
	out := FormatKeyValues("provider", "ollama", "model", "llama3.1:latest")
	for _, want := range []string{"provider", "ollama", "model", "llama3.1:latest"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatKeyValues output missing %q: %q", want, out)
		}
	}

	// Odd trailing part is dropped
	out = FormatKeyValues("provider")
	if strings.Contains(out, "provider") {
		t.Errorf("unpaired label should be dropped: %q", out)
	}
}
