package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/pagebrief/config"
	"github.com/gaurav-prasanna/pagebrief/core"
	"github.com/gaurav-prasanna/pagebrief/core/extract"
	"github.com/gaurav-prasanna/pagebrief/core/fetch"
	"github.com/gaurav-prasanna/pagebrief/core/render"
	"github.com/gaurav-prasanna/pagebrief/core/summarize"
)

func newFetcher(c *config.Config) *fetch.HTTPFetcher {
	opts := []fetch.Option{
		fetch.WithTimeout(c.Fetch.Timeout),
		fetch.WithMaxBodyBytes(c.Fetch.MaxBodyBytes),
	}
	if c.Fetch.UserAgent != "" {
		opts = append(opts, fetch.WithUserAgent(c.Fetch.UserAgent))
	}
	return fetch.New(opts...)
}

func newSummarizer(c *config.Config) *summarize.Summarizer {
	var backend summarize.Backend
	switch c.LLM.Provider {
	case "openai":
		backend = summarize.NewOpenAIBackend(c.LLM.BaseURL, c.LLM.APIKey, c.LLM.Model)
	default:
		backend = summarize.NewOllamaBackend(c.LLM.BaseURL, c.LLM.Model)
	}
	s := summarize.New(backend)
	s.MaxTokens = c.LLM.MaxTokens
	s.MaxInputWords = c.LLM.MaxInputWords
	return s
}

// extractURL runs the extraction pipeline on one URL.
func extractURL(ctx context.Context, fetcher core.Fetcher, rawURL string) (*core.ArticleText, string, error) {
	result, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("fetch: %w", err)
	}
	article, err := extract.New().Extract(rawURL, result.HTML)
	if err != nil {
		return nil, "", fmt.Errorf("extract: %w", err)
	}
	return article, result.HTML, nil
}

// formatFlags are the mutually exclusive output format flags.
type formatFlags struct {
	png, pdf, markdown, json, dataURI bool
}

func (f *formatFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.png, "png", false, "Output PNG")
	cmd.Flags().BoolVar(&f.pdf, "pdf", false, "Output PDF")
	cmd.Flags().BoolVar(&f.markdown, "markdown", false, "Output Markdown")
	cmd.Flags().BoolVar(&f.json, "json", false, "Output structured JSON")
	cmd.Flags().BoolVar(&f.dataURI, "datauri", false, "Output a PNG data URI")
}

// selected checks that exactly one output format is chosen.
func (f *formatFlags) selected() (render.Format, error) {
	var chosen []render.Format
	for _, opt := range []struct {
		set    bool
		format render.Format
	}{
		{f.png, render.FormatPNG},
		{f.pdf, render.FormatPDF},
		{f.markdown, render.FormatMarkdown},
		{f.json, render.FormatJSON},
		{f.dataURI, render.FormatDataURI},
	} {
		if opt.set {
			chosen = append(chosen, opt.format)
		}
	}
	switch len(chosen) {
	case 0:
		return "", fmt.Errorf("exactly one output format is required: --png, --pdf, --markdown, --json, or --datauri")
	case 1:
		return chosen[0], nil
	default:
		return "", fmt.Errorf("only one output format allowed per run (got %d)", len(chosen))
	}
}
