package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gaurav-prasanna/pagebrief/core"
	"github.com/gaurav-prasanna/pagebrief/core/chunk"
	"github.com/gaurav-prasanna/pagebrief/core/retry"
)

const (
	// MaxBullets caps every summary so it can fit on one page.
	MaxBullets = 10

	defaultMaxTokens  = 800
	defaultRetryDelay = 500 * time.Millisecond
)

// Mode selects how Refine changes a summary.
type Mode string

const (
	ModeShorter Mode = "shorter"
	ModeLonger  Mode = "longer"
	ModeRewrite Mode = "rewrite"
)

// ParseMode validates a refinement mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeShorter, ModeLonger, ModeRewrite:
		return m, nil
	default:
		return "", &core.Error{Kind: core.InvalidInput, Cause: fmt.Errorf("unknown refine mode %q", s)}
	}
}

const systemPrompt = `You summarize articles for a one-page visual brief.
Answer with bullet points only. Every line starts with "- ".
No headings, no introduction, no closing remarks, no Markdown other than the bullets.
Use only facts from the article.`

// Summarizer builds prompts, calls the backend with one retry, and
// normalizes the answer into "- " bullet lines.
type Summarizer struct {
	Backend       Backend
	MaxTokens     int
	MaxInputWords int
	RetryDelay    time.Duration
}

// New creates a Summarizer with default limits.
func New(b Backend) *Summarizer {
	return &Summarizer{
		Backend:       b,
		MaxTokens:     defaultMaxTokens,
		MaxInputWords: chunk.DefaultMaxWords,
		RetryDelay:    defaultRetryDelay,
	}
}

// Summarize returns a 3 to 7 bullet summary of articleText.
func (s *Summarizer) Summarize(ctx context.Context, articleText string) (string, error) {
	text, trimmed := chunk.New(s.MaxInputWords).Fit(strings.TrimSpace(articleText))
	if text == "" {
		return "", &core.Error{Kind: core.InsufficientContent}
	}
	if trimmed {
		log.Debug().Int("max_words", s.MaxInputWords).Msg("article trimmed before summarizing")
	}

	var b strings.Builder
	b.WriteString("Summarize the article below in 3 to 7 bullet points.\n")
	b.WriteString("Each bullet is one or two sentences and starts with \"- \".\n\n")
	b.WriteString("Article:\n")
	b.WriteString(text)

	out, err := s.complete(ctx, b.String())
	if err != nil {
		return "", fmt.Errorf("summarizing: %w", err)
	}
	return finish(out)
}

// Refine rewrites currentSummary according to mode, with the original article
// text as context.
func (s *Summarizer) Refine(ctx context.Context, mode Mode, originalText, currentSummary string) (string, error) {
	var instruction string
	switch mode {
	case ModeShorter:
		instruction = "Make this summary about 30% shorter. Merge or drop the least important points. Keep at least one bullet."
	case ModeLonger:
		instruction = fmt.Sprintf("Make this summary about 30%% longer by adding detail from the article. Use at most %d bullets.", MaxBullets)
	case ModeRewrite:
		instruction = "Rewrite this summary in different words. Keep the same points and about the same length."
	default:
		return "", &core.Error{Kind: core.InvalidInput, Cause: fmt.Errorf("unknown refine mode %q", mode)}
	}

	text, _ := chunk.New(s.MaxInputWords).Fit(strings.TrimSpace(originalText))

	var b strings.Builder
	b.WriteString(instruction)
	b.WriteString("\nAnswer with the new bullet list only.\n\n")
	b.WriteString("Current summary:\n")
	b.WriteString(currentSummary)
	b.WriteString("\n\nArticle:\n")
	b.WriteString(text)

	out, err := s.complete(ctx, b.String())
	if err != nil {
		return "", fmt.Errorf("refining (%s): %w", mode, err)
	}

	summary, err := finish(out)
	if errors.Is(err, ErrEmptySummary) && mode == ModeShorter {
		if current := core.ParseBullets(currentSummary); len(current) > 0 {
			return core.FormatBullets(current[:1]), nil
		}
	}
	return summary, err
}

func (s *Summarizer) complete(ctx context.Context, user string) (string, error) {
	p := Prompt{System: systemPrompt, User: user, MaxTokens: s.MaxTokens}
	var out string
	attempt := 0
	err := retry.Once(ctx, s.RetryDelay, func() error {
		attempt++
		var err error
		out, err = s.Backend.Complete(ctx, p)
		if err != nil && attempt == 1 {
			log.Warn().Err(err).Msg("model call failed, retrying once")
		}
		return err
	})
	return out, err
}

// finish normalizes model output and enforces the bullet cap.
func finish(out string) (string, error) {
	bullets := core.ParseBullets(core.NormalizeBullets(out))
	if len(bullets) == 0 {
		return "", ErrEmptySummary
	}
	if len(bullets) > MaxBullets {
		bullets = bullets[:MaxBullets]
	}
	return core.FormatBullets(bullets), nil
}
