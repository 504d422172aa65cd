// Package ui renders assistant output for the terminal: markdown formatting
// for replies on a TTY, plain passthrough when piped, and lipgloss styles for
// diagnostics on stderr.
package ui

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	"github.com/mattn/go-isatty"
)

const defaultWidth = 100

var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
	urlRegex        = regexp.MustCompile(`(https?://[^\s]+)`)
)

// IsTerminal reports whether the given file is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Width returns the render width: COLUMNS when set, otherwise a default that
// reads well in most terminals.
func Width() int {
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if n, err := strconv.Atoi(cols); err == nil && n > 20 {
			return n
		}
	}
	return defaultWidth
}

// RenderMarkdown formats markdown for terminal display at the given width.
// Autolink is disabled so URLs stay plain text and the terminal emulator
// handles detection and clickability.
func RenderMarkdown(content string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	// Strip markdown link syntax [text](url) so all links appear as plain URLs
	content = mdLinkRegex.ReplaceAllString(content, "$2")

	customExt := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(customExt)
	r := markdown.NewRenderer(width, 0)
	doc := p.Parse([]byte(content))
	rendered := gomarkdown.Render(doc, r)

	out := fixInlineCode(string(rendered))
	out = colorURLs(out)
	return strings.TrimRight(out, "\n") + "\n"
}

func fixInlineCode(s string) string {
	// Replace: \x1b[44;3m...text...\x1b[0m (Blue BG + Italic)
	// With:    \x1b[31m...text...\x1b[0m (Red text)
	return inlineCodeRegex.ReplaceAllString(s, "\x1b[31m$1\x1b[0m")
}

func colorURLs(s string) string {
	redColor := "\x1b[31m"
	reset := "\x1b[0m"

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		// Skip code block lines (┃ prefix from the renderer)
		if !strings.Contains(line, "┃") {
			lines[i] = urlRegex.ReplaceAllString(line, redColor+"$1"+reset)
		}
	}
	return strings.Join(lines, "\n")
}
