package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilenameFromURL(t *testing.T) {
	tests := map[string]string{
		"https://example.com":                  "example_com",
		"https://example.com/":                 "example_com",
		"https://example.com/docs/intro":       "example_com_docs_intro",
		"https://www.example.com:8443/a-b?q=1": "www_example_com_a_b",
		"not a url":                            "not_a_url",
	}
	for in, want := range tests {
		assert.Equal(t, want, FilenameFromURL(in), in)
	}
}

func TestWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.WriteForURL("https://example.com/post", []byte("png"), ".png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "example_com_post.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	path, err = w.Write("", []byte("x"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "summary.md"), path)
}
