package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justestif/moodtunes/internal/catalog"
	"github.com/justestif/moodtunes/internal/classifier/huggingface"
	"github.com/justestif/moodtunes/internal/inference"
	"github.com/justestif/moodtunes/internal/web"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Addr = addr
			}
			return a.serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	return cmd
}

func (a *app) serve(ctx context.Context) error {
	playlists, err := a.loadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	if a.cfg.SpotifyEnabled() {
		go a.verifyInBackground(ctx, playlists)
	}

	hf := huggingface.NewClient(huggingface.Config{
		BaseURL:    a.cfg.HFBaseURL,
		Token:      a.cfg.HFToken,
		TextModel:  a.cfg.TextModel,
		ImageModel: a.cfg.ImageModel,
	})
	if a.cfg.HFToken == "" {
		a.logger.Warn("hf_token not set; classifier requests are anonymous and heavily rate limited")
	}

	svc := inference.NewService(hf, hf, playlists,
		inference.WithTopK(a.cfg.TopK),
		inference.WithConcurrency(a.cfg.BatchConcurrency),
		inference.WithLogger(a.logger),
	)

	server := web.NewServer(web.ServerConfig{
		Addr:           a.cfg.Addr,
		AllowedOrigins: a.cfg.AllowedOrigins,
		MaxUploadBytes: a.cfg.MaxUploadBytes,
		Logger:         a.logger,
	}, svc, playlists)

	return server.Run(ctx)
}

// verifyInBackground checks catalog playlists against Spotify. Failures are
// logged and never stop the server.
func (a *app) verifyInBackground(ctx context.Context, playlists *catalog.Catalog) {
	client, err := a.spotifyClient(ctx)
	if err != nil {
		a.logger.Warn("catalog verification skipped", "error", err)
		return
	}

	problems := catalog.Verify(ctx, playlists, client, a.logger)
	if len(problems) == 0 {
		a.logger.Info("catalog verified")
		return
	}
	a.logger.Warn("catalog has unreachable playlists", "count", len(problems))
}
