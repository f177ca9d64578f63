package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/pagebrief/auth"
	"github.com/gaurav-prasanna/pagebrief/core/extract"
	"github.com/gaurav-prasanna/pagebrief/core/render"
	"github.com/gaurav-prasanna/pagebrief/server"
	"github.com/gaurav-prasanna/pagebrief/service"
	"github.com/gaurav-prasanna/pagebrief/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serve starts the JSON API on server.addr (LISTEN_ADDR). Requests under
/api/ need a bearer token; see "pagebrief token".`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateServe(); err != nil {
		return err
	}
	ctx := cmd.Context()

	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	tokens, err := auth.NewService(cfg.Auth.Secret, cfg.Auth.TTL)
	if err != nil {
		return err
	}

	svc := service.New(newFetcher(cfg), extract.New(), newSummarizer(cfg), st, render.NewPNGRenderer(), cfg.Cache.ArticleTTL)
	srv := server.New(svc, tokens, server.Options{
		Addr:            cfg.Server.Addr,
		RatePerSecond:   cfg.Server.RatePerSecond,
		RateBurst:       cfg.Server.RateBurst,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	return srv.Run(ctx)
}
