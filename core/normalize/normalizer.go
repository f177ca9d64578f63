// Package normalize implements the Normalizer interface.
// It converts the cleaned content root into Markdown so users can inspect
// what the extractor picked before it is summarized.
package normalize

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct {
	// BaseURL, when set, resolves relative links and images against it.
	BaseURL string
}

// New creates a MarkdownNormalizer that resolves links against baseURL.
func New(baseURL string) *MarkdownNormalizer {
	return &MarkdownNormalizer{BaseURL: baseURL}
}

// Normalize converts a cleaned HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	var opts []converter.ConvertOptionFunc
	if n.BaseURL != "" {
		opts = append(opts, converter.WithDomain(n.BaseURL))
	}
	markdown, err := htmltomarkdown.ConvertString(html, opts...)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}
