package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/pagebrief/core/output"
	"github.com/gaurav-prasanna/pagebrief/core/render"
	"github.com/gaurav-prasanna/pagebrief/core/summarize"
	"github.com/gaurav-prasanna/pagebrief/service"
	"github.com/gaurav-prasanna/pagebrief/store"
	"github.com/gaurav-prasanna/pagebrief/weburl"
)

var (
	summarizeFormats   formatFlags
	flagSummarizeOut   string
	flagSummarizeShort bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <url>",
	Short: "Summarize an article and render the summary page",
	Long: `Summarize runs the whole pipeline without persistence:
fetch → extract → summarize → render → write.

Examples:
  pagebrief summarize https://go.dev/blog/loopvar-preview --png
  pagebrief summarize https://go.dev/blog/loopvar-preview --pdf --output_dir ./out
  pagebrief summarize https://go.dev/blog/loopvar-preview --markdown --shorter`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeFormats.bind(summarizeCmd)
	summarizeCmd.Flags().StringVar(&flagSummarizeOut, "output_dir", "", "Output directory (default: current directory)")
	summarizeCmd.Flags().BoolVar(&flagSummarizeShort, "shorter", false, "Refine the first summary once to make it shorter")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	format, err := summarizeFormats.selected()
	if err != nil {
		return err
	}
	u, err := weburl.Validate(args[0])
	if err != nil {
		return err
	}
	rawURL := u.String()
	ctx := cmd.Context()

	writer, err := output.New(flagSummarizeOut)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	article, _, err := extractURL(ctx, newFetcher(cfg), rawURL)
	if err != nil {
		return err
	}

	summarizer := newSummarizer(cfg)
	summary, err := summarizer.Summarize(ctx, article.Text)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	if flagSummarizeShort {
		summary, err = summarizer.Refine(ctx, summarize.ModeShorter, article.Text, summary)
		if err != nil {
			return fmt.Errorf("refine: %w", err)
		}
	}
	log.Debug().Str("summary", summary).Msg("model summary")

	page := service.PageFor(&store.Record{URL: article.URL, Title: article.Title, SummaryText: summary})
	renderer := render.For(format, render.NewPNGRenderer())
	data, err := renderer.Render(page)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	path, err := writer.WriteForURL(rawURL, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}
