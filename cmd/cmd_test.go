package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/pagebrief/config"
	"github.com/gaurav-prasanna/pagebrief/core/render"
	"github.com/gaurav-prasanna/pagebrief/core/summarize"
)

func TestFormatFlags_Selected(t *testing.T) {
	_, err := (&formatFlags{}).selected()
	assert.Error(t, err)

	_, err = (&formatFlags{png: true, pdf: true}).selected()
	assert.ErrorContains(t, err, "only one output format")

	f, err := (&formatFlags{markdown: true}).selected()
	require.NoError(t, err)
	assert.Equal(t, render.FormatMarkdown, f)

	f, err = (&formatFlags{dataURI: true}).selected()
	require.NoError(t, err)
	assert.Equal(t, render.FormatDataURI, f)
}

func TestNewSummarizer_Backend(t *testing.T) {
	c := config.Default()
	s := newSummarizer(c)
	assert.IsType(t, &summarize.OllamaBackend{}, s.Backend)
	assert.Equal(t, c.LLM.MaxTokens, s.MaxTokens)

	c.LLM.Provider = "openai"
	c.LLM.BaseURL = "http://localhost:1/v1"
	assert.IsType(t, &summarize.OpenAIBackend{}, newSummarizer(c).Backend)
}

func TestReadSummary(t *testing.T) {
	got, err := readSummary(strings.NewReader("- from stdin"), "-")
	require.NoError(t, err)
	assert.Equal(t, "- from stdin", got)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("- from file"), 0o644))
	got, err = readSummary(nil, path)
	require.NoError(t, err)
	assert.Equal(t, "- from file", got)

	_, err = readSummary(nil, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestSummaryName(t *testing.T) {
	assert.Equal(t, "summary", summaryName("-"))
	assert.Equal(t, "notes", summaryName("/tmp/notes.txt"))
}
