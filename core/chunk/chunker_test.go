package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFit_UnderBudget(t *testing.T) {
	text := "Heading\nOne two three."
	got, cut := New(10).Fit(text)
	assert.False(t, cut)
	assert.Equal(t, text, got)
}

func TestFit_KeepsWholeLines(t *testing.T) {
	text := "one two\nthree four five\nsix"
	got, cut := New(4).Fit(text)
	assert.True(t, cut)
	assert.Equal(t, "one two", got)
}

func TestFit_CutsOversizedFirstLine(t *testing.T) {
	text := strings.Repeat("word ", 20)
	got, cut := New(5).Fit(text)
	assert.True(t, cut)
	assert.Equal(t, "word word word word word", got)
}

func TestNew_DefaultsNonPositive(t *testing.T) {
	assert.Equal(t, DefaultMaxWords, New(0).MaxWords)
	assert.Equal(t, DefaultMaxWords, New(-3).MaxWords)
}
