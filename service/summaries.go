// Package service ties the pipeline to the store: it creates summaries from
// URLs, lets their owner edit and refine them, and renders them.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/gaurav-prasanna/pagebrief/core"
	"github.com/gaurav-prasanna/pagebrief/core/render"
	"github.com/gaurav-prasanna/pagebrief/core/summarize"
	"github.com/gaurav-prasanna/pagebrief/store"
	"github.com/gaurav-prasanna/pagebrief/weburl"
)

// DefaultArticleTTL is how long extracted articles stay cached.
const DefaultArticleTTL = 15 * time.Minute

// ErrUpstream marks failures of the language model collaborator.
var ErrUpstream = errors.New("summarizer unavailable")

// Summarizer is the language model collaborator.
type Summarizer interface {
	Summarize(ctx context.Context, articleText string) (string, error)
	Refine(ctx context.Context, mode summarize.Mode, originalText, currentSummary string) (string, error)
}

// Summaries runs every user-facing operation. Operations for the same user
// are serialized; different users run concurrently.
type Summaries struct {
	fetcher    core.Fetcher
	extractor  core.Extractor
	summarizer Summarizer
	store      store.Store
	png        *render.PNGRenderer

	articles *cache.Cache

	mu    sync.Mutex
	locks map[uuid.UUID]*userLock
}

// userLock is dropped from Summaries.locks once nobody holds or waits on it.
type userLock struct {
	sem  chan struct{}
	refs int
}

// New creates a Summaries service. A non-positive articleTTL uses
// DefaultArticleTTL.
func New(f core.Fetcher, e core.Extractor, s Summarizer, st store.Store, png *render.PNGRenderer, articleTTL time.Duration) *Summaries {
	if articleTTL <= 0 {
		articleTTL = DefaultArticleTTL
	}
	return &Summaries{
		fetcher:    f,
		extractor:  e,
		summarizer: s,
		store:      st,
		png:        png,
		articles:   cache.New(articleTTL, 2*articleTTL),
		locks:      make(map[uuid.UUID]*userLock),
	}
}

// Create fetches rawURL, summarizes it and stores the result for userID.
func (s *Summaries) Create(ctx context.Context, userID uuid.UUID, rawURL string) (*store.Record, error) {
	unlock, err := s.lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	u, err := weburl.Validate(rawURL)
	if err != nil {
		return nil, err
	}
	article, err := s.article(ctx, u.String())
	if err != nil {
		return nil, err
	}

	summary, err := s.summarizer.Summarize(ctx, article.Text)
	if err != nil {
		return nil, upstream(err)
	}

	rec := &store.Record{
		UserID:       userID.String(),
		URL:          article.URL,
		Title:        article.Title,
		OriginalText: article.Text,
		SummaryText:  summary,
	}
	if err := s.store.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("saving summary: %w", err)
	}
	log.Info().Str("id", rec.ID).Str("user", rec.UserID).Str("url", rec.URL).Msg("summary created")
	return rec, nil
}

// Get returns one of the user's summaries.
func (s *Summaries) Get(ctx context.Context, userID uuid.UUID, id string) (*store.Record, error) {
	unlock, err := s.lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return s.owned(ctx, userID, id)
}

// List returns the user's summaries, newest first.
func (s *Summaries) List(ctx context.Context, userID uuid.UUID, limit int) ([]store.Record, error) {
	unlock, err := s.lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	recs, err := s.store.ListByUser(ctx, userID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("listing summaries: %w", err)
	}
	return recs, nil
}

// Edit replaces the summary text. The text is normalized to "- " lines and
// must keep at least one bullet.
func (s *Summaries) Edit(ctx context.Context, userID uuid.UUID, id, summaryText string) (*store.Record, error) {
	normalized := core.NormalizeBullets(summaryText)
	if len(core.ParseBullets(normalized)) == 0 {
		return nil, &core.Error{Kind: core.InvalidInput, Cause: errors.New("summary must contain at least one bullet")}
	}

	unlock, err := s.lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if _, err := s.owned(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.store.UpdateSummary(ctx, id, normalized)
}

// Refine asks the model for a shorter, longer or reworded summary and
// stores it.
func (s *Summaries) Refine(ctx context.Context, userID uuid.UUID, id string, mode summarize.Mode) (*store.Record, error) {
	unlock, err := s.lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	rec, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	summary, err := s.summarizer.Refine(ctx, mode, rec.OriginalText, rec.SummaryText)
	if err != nil {
		return nil, upstream(err)
	}
	log.Info().Str("id", id).Str("mode", string(mode)).Msg("summary refined")
	return s.store.UpdateSummary(ctx, id, summary)
}

// Render produces the summary page in the requested format.
func (s *Summaries) Render(ctx context.Context, userID uuid.UUID, id string, format render.Format) ([]byte, error) {
	unlock, err := s.lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	rec, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	page := PageFor(rec)

	if format == render.FormatPNG {
		img, err := s.png.RenderImage(ctx, page)
		if err != nil {
			return nil, err
		}
		return img.PNG, nil
	}
	return render.For(format, s.png).Render(page)
}

// PageFor builds the render input for a record: the article title as the
// headline (the host when there is none) and the host as the subheadline.
func PageFor(rec *store.Record) core.Page {
	host := weburl.Host(rec.URL)
	headline := rec.Title
	if headline == "" {
		headline = host
	}
	return core.Page{
		Headline:    headline,
		Subheadline: host,
		SummaryText: rec.SummaryText,
		URL:         rec.URL,
	}
}

// owned loads a record and hides records that belong to someone else.
func (s *Summaries) owned(ctx context.Context, userID uuid.UUID, id string) (*store.Record, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID.String() {
		return nil, store.ErrNotFound
	}
	return rec, nil
}

// article returns extracted text for url, from cache when possible.
func (s *Summaries) article(ctx context.Context, url string) (*core.ArticleText, error) {
	key := weburl.Normalize(url)
	if v, ok := s.articles.Get(key); ok {
		log.Debug().Str("url", url).Msg("article cache hit")
		return v.(*core.ArticleText), nil
	}

	res, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	article, err := s.extractor.Extract(url, res.HTML)
	if err != nil {
		return nil, err
	}
	s.articles.Set(key, article, cache.DefaultExpiration)
	return article, nil
}

func (s *Summaries) lock(ctx context.Context, userID uuid.UUID) (func(), error) {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userLock{sem: make(chan struct{}, 1)}
		s.locks[userID] = l
	}
	l.refs++
	s.mu.Unlock()

	select {
	case l.sem <- struct{}{}:
		return func() {
			<-l.sem
			s.release(userID, l)
		}, nil
	case <-ctx.Done():
		s.release(userID, l)
		return nil, ctx.Err()
	}
}

func (s *Summaries) release(userID uuid.UUID, l *userLock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, userID)
	}
}

// activeLocks reports how many users currently hold or wait on a lock.
func (s *Summaries) activeLocks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}

// upstream tags model failures unless they already carry a pipeline kind.
func upstream(err error) error {
	if _, ok := core.KindOf(err); ok {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}
