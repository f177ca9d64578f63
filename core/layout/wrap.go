package layout

import "strings"

// Wrap breaks text into lines no wider than maxWidth using greedy packing:
// words are added to the current line while the measured width still fits,
// otherwise the line is committed and the word starts the next one.
// A word wider than maxWidth on its own still gets its own line.
func Wrap(m Measurer, text string, f Font, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if m.MeasureText(candidate, f) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// ellipsis marks a shortened headline.
const ellipsis = "…"

// fitLine shortens text word by word, appending an ellipsis, until it fits
// in maxWidth. A first word that is too wide on its own is cut rune by rune.
// Text that already fits is returned unchanged.
func fitLine(m Measurer, text string, f Font, maxWidth float64) string {
	text = strings.Join(strings.Fields(text), " ")
	if m.MeasureText(text, f) <= maxWidth {
		return text
	}
	words := strings.Fields(text)
	for n := len(words) - 1; n > 0; n-- {
		candidate := strings.Join(words[:n], " ") + ellipsis
		if m.MeasureText(candidate, f) <= maxWidth {
			return candidate
		}
	}
	first := []rune(words[0])
	for n := len(first) - 1; n > 0; n-- {
		candidate := string(first[:n]) + ellipsis
		if m.MeasureText(candidate, f) <= maxWidth {
			return candidate
		}
	}
	return ellipsis
}
