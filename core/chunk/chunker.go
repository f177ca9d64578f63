// Package chunk bounds article text before it is sent to the summarizer.
// Uses a simple whitespace tokenizer (words ≈ tokens), keeping whole lines
// so headings and paragraphs stay intact.
package chunk

import "strings"

// DefaultMaxWords is used when a Budget is created with a non-positive size.
const DefaultMaxWords = 3000

// Budget trims text to a word limit.
type Budget struct {
	MaxWords int // number of tokens (words) allowed
}

// New creates a Budget with the given word limit.
// Defaults to DefaultMaxWords if maxWords <= 0.
func New(maxWords int) *Budget {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	return &Budget{MaxWords: maxWords}
}

// Fit returns the longest prefix of whole lines within MaxWords words, and
// whether anything was cut. When the first non-empty line alone exceeds the
// budget it is cut at the word limit.
func (b *Budget) Fit(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	used := 0

	for _, line := range lines {
		words := strings.Fields(line)
		if used+len(words) <= b.MaxWords {
			kept = append(kept, line)
			used += len(words)
			continue
		}
		if used == 0 {
			kept = append(kept, strings.Join(words[:b.MaxWords], " "))
		}
		return strings.Join(kept, "\n"), true
	}
	return text, false
}
