package render

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/pagebrief/core"
)

// MarkdownRenderer writes the page as a heading, an italic source line and a
// bullet list.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the page as Markdown.
func (r *MarkdownRenderer) Render(page core.Page) ([]byte, error) {
	var b strings.Builder
	if page.Headline != "" {
		b.WriteString("# " + page.Headline + "\n\n")
	}
	if page.Subheadline != "" {
		b.WriteString("_" + page.Subheadline + "_\n\n")
	}
	if bullets := core.ParseBullets(page.SummaryText); len(bullets) > 0 {
		b.WriteString(core.FormatBullets(bullets) + "\n")
	}
	if page.URL != "" {
		b.WriteString("\nSource: " + page.URL + "\n")
	}
	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

var (
	italicRegex     = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)
	inlineCodeRegex = regexp.MustCompile("`([^`]+)`")
	linkRegex       = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
)

// cleanInlineMarkdown strips inline Markdown formatting models like to add
// to bullets, so the image shows plain text.
func cleanInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = italicRegex.ReplaceAllString(text, " $1 ")
	text = inlineCodeRegex.ReplaceAllString(text, "$1")
	text = linkRegex.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
