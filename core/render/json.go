package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/pagebrief/core"
)

// PageJSON is the structured form of a summary page.
type PageJSON struct {
	Headline    string   `json:"headline"`
	Subheadline string   `json:"subheadline"`
	URL         string   `json:"url,omitempty"`
	Bullets     []string `json:"bullets"`
}

// JSONRenderer produces the page as indented JSON.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the page with its bullets parsed out of the summary text.
func (r *JSONRenderer) Render(page core.Page) ([]byte, error) {
	bullets := core.ParseBullets(page.SummaryText)
	if bullets == nil {
		bullets = []string{}
	}
	data, err := json.MarshalIndent(PageJSON{
		Headline:    page.Headline,
		Subheadline: page.Subheadline,
		URL:         page.URL,
		Bullets:     bullets,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
