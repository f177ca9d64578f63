// Package extract implements the Extractor interface.
// It reduces a full HTML page to summarizable article text by:
//  1. Removing non-content elements (scripts, frames, nav, header, footer)
//  2. Picking the content root (<article>, else <main>, else <body>)
//  3. Collecting heading and paragraph text in document order
//  4. Rejecting pages with too little text, then collapsing blank lines
package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/pagebrief/core"
)

// MinTextLength is the minimum extracted length, in characters, for a page
// to count as an article.
const MinTextLength = 50

// noiseSelectors are HTML elements removed before extraction.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"iframe", "frame", "embed", "object",
	"nav", "header", "footer",
}

// rootSelectors are tried in order; the first match becomes the content root.
var rootSelectors = []string{"article", "main", "body"}

// textSelector picks the elements whose text is collected.
const textSelector = "h1, h2, h3, h4, h5, h6, p"

var blankLines = regexp.MustCompile(`\n{2,}`)

// HTMLExtractor strips noise from HTML and returns the article text.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract reduces html to ArticleText. It fails with core.InsufficientContent
// when fewer than MinTextLength characters survive.
func (e *HTMLExtractor) Extract(url string, html string) (*core.ArticleText, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	title := findTitle(doc)
	removeNoise(doc)
	root := contentRoot(doc)

	var parts []string
	root.Find(textSelector).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	text := strings.TrimSpace(blankLines.ReplaceAllString(strings.Join(parts, "\n"), "\n"))

	if utf8.RuneCountInString(text) < MinTextLength {
		return nil, &core.Error{Kind: core.InsufficientContent, URL: url}
	}

	return &core.ArticleText{URL: url, Title: title, Text: text}, nil
}

// ContentRoot returns the outer HTML of the cleaned content root.
func (e *HTMLExtractor) ContentRoot(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}
	removeNoise(doc)

	result, err := goquery.OuterHtml(contentRoot(doc))
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return result, nil
}

// removeNoise deletes non-content elements from the whole document.
func removeNoise(doc *goquery.Document) {
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
}

// contentRoot picks the first semantic container, falling back to the
// whole document when even <body> is missing.
func contentRoot(doc *goquery.Document) *goquery.Selection {
	for _, tag := range rootSelectors {
		if sel := doc.Find(tag); sel.Length() > 0 {
			return sel.First()
		}
	}
	return doc.Selection
}

// findTitle prefers <title>, then the first <h1>.
func findTitle(doc *goquery.Document) string {
	if t := collapseSpaces(doc.Find("head title").First().Text()); t != "" {
		return t
	}
	return collapseSpaces(doc.Find("h1").First().Text())
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
