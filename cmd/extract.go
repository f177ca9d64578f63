package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/pagebrief/core/extract"
	"github.com/gaurav-prasanna/pagebrief/core/normalize"
	"github.com/gaurav-prasanna/pagebrief/weburl"
)

var flagExtractMarkdown bool

var extractCmd = &cobra.Command{
	Use:   "extract <url>",
	Short: "Print the readable text of an article",
	Long: `Extract fetches a page and prints the text the summarizer would see.
With --markdown it prints the cleaned content root as Markdown instead.

Examples:
  pagebrief extract https://go.dev/blog/loopvar-preview
  pagebrief extract https://go.dev/blog/loopvar-preview --markdown`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().BoolVar(&flagExtractMarkdown, "markdown", false, "Print the content root as Markdown")
}

func runExtract(cmd *cobra.Command, args []string) error {
	u, err := weburl.Validate(args[0])
	if err != nil {
		return err
	}
	rawURL := u.String()

	article, html, err := extractURL(cmd.Context(), newFetcher(cfg), rawURL)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !flagExtractMarkdown {
		if article.Title != "" {
			fmt.Fprintf(out, "# %s\n\n", article.Title)
		}
		fmt.Fprintln(out, article.Text)
		return nil
	}

	root, err := extract.New().ContentRoot(html)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	markdown, err := normalize.New(rawURL).Normalize(root)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	fmt.Fprintln(out, markdown)
	return nil
}
