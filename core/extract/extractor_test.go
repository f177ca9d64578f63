package extract

import (
	"strings"
	"testing"

	"github.com/gaurav-prasanna/pagebrief/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const longParagraph = "This paragraph carries enough words to clear the minimum length check easily."

func TestExtract_ArticleWordExample(t *testing.T) {
	html := "<article><h1>Title</h1>" + strings.Repeat("<p>Word </p>", 10) + "</article>"

	got, err := New().Extract("https://example.com/a", html)
	require.NoError(t, err)
	assert.Equal(t, "Title"+strings.Repeat("\nWord", 10), got.Text)
	assert.NotContains(t, got.Text, "\n\n")
	assert.Equal(t, "https://example.com/a", got.URL)
}

func TestExtract_PreservesDocumentOrder(t *testing.T) {
	html := `<html><body><article>
		<h2>Second level first</h2>
		<p>Alpha paragraph with some words in it.</p>
		<h1>Top level after</h1>
		<div><p>Nested beta paragraph.</p></div>
		<h3>Closing heading</h3>
	</article></body></html>`

	got, err := New().Extract("u", html)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"Second level first",
		"Alpha paragraph with some words in it.",
		"Top level after",
		"Nested beta paragraph.",
		"Closing heading",
	}, "\n"), got.Text)
}

func TestExtract_PrefersArticleOverMain(t *testing.T) {
	html := `<html><body>
		<main><p>Main wrapper text that should not be chosen at all.</p>
			<article><h1>Story</h1><p>` + longParagraph + `</p></article>
		</main>
	</body></html>`

	got, err := New().Extract("u", html)
	require.NoError(t, err)
	assert.Equal(t, "Story\n"+longParagraph, got.Text)
}

func TestExtract_FallsBackToMain(t *testing.T) {
	html := `<html><body><p>Outside main, ignored because main exists here.</p>
		<main><h2>Inside</h2><p>` + longParagraph + `</p></main></body></html>`

	got, err := New().Extract("u", html)
	require.NoError(t, err)
	assert.Equal(t, "Inside\n"+longParagraph, got.Text)
}

func TestExtract_FallsBackToBody(t *testing.T) {
	html := `<!doctype html><html><head><title>No Semantic Markup</title></head>
		<body><div><h2>Body Heading</h2></div><p>` + longParagraph + `</p></body></html>`

	got, err := New().Extract("u", html)
	require.NoError(t, err)
	assert.Equal(t, "Body Heading\n"+longParagraph, got.Text)
	assert.Equal(t, "No Semantic Markup", got.Title)
}

func TestExtract_RemovesBoilerplate(t *testing.T) {
	html := `<html><body>
		<header><h1>Site Banner</h1></header>
		<nav><p>Home | About</p></nav>
		<script>var x = "<p>script text</p>";</script>
		<style>p { color: red }</style>
		<iframe src="ad.html"></iframe>
		<h1>Real Headline</h1>
		<p>` + longParagraph + `</p>
		<footer><p>Copyright notice</p></footer>
	</body></html>`

	got, err := New().Extract("u", html)
	require.NoError(t, err)
	assert.Equal(t, "Real Headline\n"+longParagraph, got.Text)
	for _, noise := range []string{"Site Banner", "Home | About", "script text", "color: red", "Copyright"} {
		assert.NotContains(t, got.Text, noise)
	}
}

func TestExtract_InsufficientContent(t *testing.T) {
	html := `<html><body><article><h1>Paywall</h1><p>Subscribe to read.</p></article>
		<div>Lots of text outside headings and paragraphs is ignored entirely by design of the heuristic.</div>
	</body></html>`

	got, err := New().Extract("https://example.com/x", html)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, core.IsKind(err, core.InsufficientContent))
}

func TestExtract_LengthCountedAfterCollapsing(t *testing.T) {
	html := "<body><p>Short" + strings.Repeat("\n", 60) + "text</p></body>"

	got, err := New().Extract("https://x.test", html)
	assert.Nil(t, got)
	assert.True(t, core.IsKind(err, core.InsufficientContent))
}

func TestExtract_CollapsesBlankLines(t *testing.T) {
	html := "<article><p>  First line of the paragraph\n\n\n\nsecond line of the same paragraph  </p><p>\n\n</p><p>Tail text here.</p></article>"

	got, err := New().Extract("u", html)
	require.NoError(t, err)
	assert.Equal(t, "First line of the paragraph\nsecond line of the same paragraph\nTail text here.", got.Text)
}

func TestExtract_Idempotent(t *testing.T) {
	html := `<html><head><title>T</title></head><body><main><h1>Heading</h1><p>` +
		longParagraph + `</p><p>` + longParagraph + `</p></main></body></html>`

	e := New()
	first, err := e.Extract("u", html)
	require.NoError(t, err)
	second, err := e.Extract("u", html)
	require.NoError(t, err)
	assert.Equal(t, first.Text, second.Text)
}

func TestExtract_TitleFallsBackToHeading(t *testing.T) {
	html := `<html><body><article><h1>  Story   Title </h1><p>` + longParagraph + `</p></article></body></html>`

	got, err := New().Extract("u", html)
	require.NoError(t, err)
	assert.Equal(t, "Story Title", got.Title)
}

func TestContentRoot(t *testing.T) {
	html := `<html><body><nav>menu</nav><article><h1>Kept</h1><script>x()</script></article></body></html>`

	root, err := New().ContentRoot(html)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(root, "<article>"))
	assert.Contains(t, root, "<h1>Kept</h1>")
	assert.NotContains(t, root, "script")
	assert.NotContains(t, root, "menu")
}
