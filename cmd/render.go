package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/pagebrief/core"
	"github.com/gaurav-prasanna/pagebrief/core/output"
	"github.com/gaurav-prasanna/pagebrief/core/render"
	"github.com/gaurav-prasanna/pagebrief/weburl"
)

var (
	renderFormats         formatFlags
	flagRenderSummary     string
	flagRenderHeadline    string
	flagRenderSubheadline string
	flagRenderURL         string
	flagRenderOut         string
)

var renderCmd = &cobra.Command{
	Use:   "render --summary <file>",
	Short: "Render an existing bullet summary as a page",
	Long: `Render lays out a summary file ("- " lines) without fetching anything.
Use "-" to read the summary from stdin.

Examples:
  pagebrief render --summary notes.txt --headline "Loop variables" --png
  cat notes.txt | pagebrief render --summary - --url https://go.dev/blog --pdf`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderFormats.bind(renderCmd)
	renderCmd.Flags().StringVar(&flagRenderSummary, "summary", "", "Summary file, or - for stdin (required)")
	renderCmd.Flags().StringVar(&flagRenderHeadline, "headline", "", "Headline (default: host of --url)")
	renderCmd.Flags().StringVar(&flagRenderSubheadline, "subheadline", "", "Subheadline (default: host of --url)")
	renderCmd.Flags().StringVar(&flagRenderURL, "url", "", "Source URL for the page and the output filename")
	renderCmd.Flags().StringVar(&flagRenderOut, "output_dir", "", "Output directory (default: current directory)")
	_ = renderCmd.MarkFlagRequired("summary")
}

func runRender(cmd *cobra.Command, args []string) error {
	format, err := renderFormats.selected()
	if err != nil {
		return err
	}

	summary, err := readSummary(cmd.InOrStdin(), flagRenderSummary)
	if err != nil {
		return err
	}
	if len(core.ParseBullets(summary)) == 0 {
		return errors.New(`summary has no bullet lines (lines must start with "- ")`)
	}

	page := core.Page{
		Headline:    flagRenderHeadline,
		Subheadline: flagRenderSubheadline,
		SummaryText: summary,
		URL:         flagRenderURL,
	}
	if host := weburl.Host(flagRenderURL); host != "" {
		if page.Headline == "" {
			page.Headline = host
		}
		if page.Subheadline == "" {
			page.Subheadline = host
		}
	}

	renderer := render.For(format, render.NewPNGRenderer())
	data, err := renderer.Render(page)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	writer, err := output.New(flagRenderOut)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	var path string
	if flagRenderURL != "" {
		path, err = writer.WriteForURL(flagRenderURL, data, renderer.Extension())
	} else {
		path, err = writer.Write(summaryName(flagRenderSummary), data, renderer.Extension())
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}

func readSummary(stdin io.Reader, name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("reading summary: %w", err)
	}
	return string(data), nil
}

func summaryName(file string) string {
	if file == "-" {
		return "summary"
	}
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
