// Package summarize asks a language model for bullet summaries of article
// text and for shorter, longer or reworded versions of an existing summary.
package summarize

import (
	"context"
	"errors"
)

// Prompt is one completion request.
type Prompt struct {
	System    string
	User      string
	MaxTokens int
}

// Backend produces a completion for a prompt.
type Backend interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}

// ErrEmptySummary means the model returned no usable bullets.
var ErrEmptySummary = errors.New("model returned an empty summary")
