package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/justestif/moodtunes/internal/catalog"
	"github.com/justestif/moodtunes/internal/config"
	"github.com/justestif/moodtunes/internal/db"
	"github.com/justestif/moodtunes/internal/logging"
	"github.com/justestif/moodtunes/internal/spotify"
	webfs "github.com/justestif/moodtunes/web"
)

// app carries state shared by subcommands. It is filled in by the root
// command's PersistentPreRunE.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "moodtunes",
		Short:         "Mood inference API with playlist recommendations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.Path(), "Configuration file path (env "+config.EnvConfigPath+")")

	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newCatalogCommand(a))
	rootCmd.AddCommand(newSeedCommand(a))
	rootCmd.AddCommand(newVerifyCommand(a))

	return rootCmd
}

// load reads configuration and builds the logger.
func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	a.cfg = cfg
	a.logger = logger
	return nil
}

// loadCatalog returns the playlist catalog from the highest-precedence
// source: Postgres, then catalog_path, then the embedded catalog.
func (a *app) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if a.cfg.DatabaseURL != "" {
		database, err := db.New(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			return nil, err
		}

		c, err := storeCatalog(ctx, database.Playlists())
		if err != nil {
			return nil, err
		}
		a.logger.Info("catalog loaded", "source", "postgres", "moods", c.Len())
		return c, nil
	}

	return a.loadFileCatalog()
}

// storeCatalog loads the catalog from store. An unseeded table fails with a
// hint pointing at the seed command.
func storeCatalog(ctx context.Context, store catalog.Store) (*catalog.Catalog, error) {
	c, err := catalog.LoadStore(ctx, store)
	if errors.Is(err, catalog.ErrMissingFallback) {
		return nil, fmt.Errorf("%w: database has no neutral playlists; run `moodtunes seed` to load the catalog", err)
	}
	return c, err
}

// loadFileCatalog returns the catalog from catalog_path or the embedded file.
func (a *app) loadFileCatalog() (*catalog.Catalog, error) {
	if a.cfg.CatalogPath != "" {
		c, err := catalog.LoadFile(a.cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		a.logger.Info("catalog loaded", "source", a.cfg.CatalogPath, "moods", c.Len())
		return c, nil
	}

	c, err := catalog.LoadFS(webfs.CatalogFS, webfs.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	a.logger.Debug("catalog loaded", "source", "embedded", "moods", c.Len())
	return c, nil
}

// spotifyClient returns an app-authenticated Spotify client.
func (a *app) spotifyClient(ctx context.Context) (*spotify.Client, error) {
	if !a.cfg.SpotifyEnabled() {
		return nil, spotify.ErrMissingCredentials
	}
	return spotify.NewWithCredentials(ctx, a.cfg.SpotifyID, a.cfg.SpotifySecret)
}
