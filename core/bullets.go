package core

import (
	"regexp"
	"strings"
)

// BulletMarker starts every bullet line in summary text.
const BulletMarker = "- "

// ParseBullets returns the text of each "- " line, marker stripped.
// Non-bullet lines and empty bullets are skipped.
func ParseBullets(summary string) []string {
	var bullets []string
	for _, line := range strings.Split(summary, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, BulletMarker) {
			continue
		}
		text := strings.TrimSpace(strings.TrimPrefix(line, BulletMarker))
		if text == "" {
			continue
		}
		bullets = append(bullets, text)
	}
	return bullets
}

// FormatBullets joins bullets back into "- " lines.
func FormatBullets(bullets []string) string {
	lines := make([]string, 0, len(bullets))
	for _, b := range bullets {
		lines = append(lines, BulletMarker+strings.TrimSpace(b))
	}
	return strings.Join(lines, "\n")
}

// altMarker matches list markers models commonly emit instead of "- ".
var altMarker = regexp.MustCompile(`^(?:[*•–]\s+|\d+[.)]\s+|-\s+)`)

// NormalizeBullets rewrites each non-blank line into "- " form so the editor
// and the layout see a single convention.
func NormalizeBullets(text string) string {
	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(altMarker.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		bullets = append(bullets, line)
	}
	return FormatBullets(bullets)
}
