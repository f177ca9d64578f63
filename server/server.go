// Package server exposes the summary service as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/gaurav-prasanna/pagebrief/auth"
	"github.com/gaurav-prasanna/pagebrief/core/render"
	"github.com/gaurav-prasanna/pagebrief/core/summarize"
	"github.com/gaurav-prasanna/pagebrief/store"
)

// Summaries is the service the handlers call.
type Summaries interface {
	Create(ctx context.Context, userID uuid.UUID, rawURL string) (*store.Record, error)
	Get(ctx context.Context, userID uuid.UUID, id string) (*store.Record, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]store.Record, error)
	Edit(ctx context.Context, userID uuid.UUID, id, summaryText string) (*store.Record, error)
	Refine(ctx context.Context, userID uuid.UUID, id string, mode summarize.Mode) (*store.Record, error)
	Render(ctx context.Context, userID uuid.UUID, id string, format render.Format) ([]byte, error)
}

// Options configures the HTTP layer.
type Options struct {
	Addr            string
	RatePerSecond   float64
	RateBurst       int
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// Server holds the routes and the http.Server.
type Server struct {
	svc      Summaries
	validate *validator.Validate
	limiter  *ipLimiter
	opts     Options
	handler  http.Handler
}

// New wires routes and middleware.
func New(svc Summaries, tokens auth.Validator, opts Options) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	s := &Server{
		svc:      svc,
		validate: validator.New(),
		limiter:  newIPLimiter(opts.RatePerSecond, opts.RateBurst),
		opts:     opts,
	}

	authed := auth.Middleware(tokens)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("POST /api/summaries", authed(http.HandlerFunc(s.handleCreate)))
	mux.Handle("GET /api/summaries", authed(http.HandlerFunc(s.handleList)))
	mux.Handle("GET /api/summaries/{id}", authed(http.HandlerFunc(s.handleGet)))
	mux.Handle("PUT /api/summaries/{id}", authed(http.HandlerFunc(s.handleEdit)))
	mux.Handle("POST /api/summaries/{id}/refine", authed(http.HandlerFunc(s.handleRefine)))
	mux.Handle("GET /api/summaries/{id}/image", authed(http.HandlerFunc(s.handleImage)))

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	s.handler = s.withLogging(c.Handler(s.withRateLimit(mux)))
	return s
}

// Handler returns the full middleware chain.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on opts.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      300 * time.Second, // summarization can be slow
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("server starting")
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
