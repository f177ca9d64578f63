// Package core defines the pipeline interfaces for PageBrief.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// ArticleText is the cleaned, summarizable text extracted from a page.
type ArticleText struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Page is the input to every renderer: a headline, a subheadline and the
// summary text whose "- " lines become bullets.
type Page struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
	SummaryText string `json:"summary_text"`
	URL         string `json:"url,omitempty"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor reduces raw HTML to article text.
type Extractor interface {
	Extract(url string, html string) (*ArticleText, error)
}

// Normalizer converts cleaned HTML into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts a summary page into a final output format.
type Renderer interface {
	Render(page Page) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".png", ".pdf").
	Extension() string
}
