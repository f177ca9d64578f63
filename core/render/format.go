package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/pagebrief/core"
)

// Format names an output format.
type Format string

const (
	FormatPNG      Format = "png"
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
	FormatDataURI  Format = "datauri"
)

// ParseFormat accepts the format names used by the API and CLI. An empty
// string means PNG.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatPNG, nil
	case FormatPNG, FormatPDF, FormatMarkdown, FormatJSON, FormatDataURI:
		return f, nil
	case "markdown":
		return FormatMarkdown, nil
	default:
		return "", &core.Error{Kind: core.InvalidInput, Cause: fmt.Errorf("unknown format %q", s)}
	}
}

// ContentType returns the HTTP media type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatDataURI:
		return "text/plain; charset=utf-8"
	default:
		return "image/png"
	}
}

// For returns the renderer for f. PDF and data URI output draw through png.
func For(f Format, png *PNGRenderer) core.Renderer {
	switch f {
	case FormatPDF:
		return NewPDFRenderer(png)
	case FormatMarkdown:
		return NewMarkdownRenderer()
	case FormatJSON:
		return NewJSONRenderer()
	case FormatDataURI:
		return &DataURIRenderer{PNG: png}
	default:
		return png
	}
}
