package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/justestif/moodtunes/internal/catalog"
	"github.com/justestif/moodtunes/internal/db"
)

func newCatalogCommand(a *app) *cobra.Command {
	var moodFilter string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the playlist catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			moods := c.Moods()
			if moodFilter != "" {
				moods = []string{moodFilter}
			}

			var rows [][]string
			for _, m := range moods {
				entries, ok := c.Lookup(m)
				if !ok {
					return fmt.Errorf("no playlists for mood %q", m)
				}
				for i, e := range entries {
					rows = append(rows, []string{m, strconv.Itoa(i + 1), e.Title, e.Source, e.URL})
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Mood", "#", "Title", "Source", "URL"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&moodFilter, "mood", "", "Only print playlists for this mood")

	return cmd
}

func newSeedCommand(a *app) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the Postgres catalog with a catalog file",
		Long: "Seed loads a catalog file (--from, catalog_path, or the built-in catalog) " +
			"and replaces every row of the playlist_entries table with it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if a.cfg.DatabaseURL == "" {
				return errors.New("database_url is required to seed the catalog")
			}
			if from != "" {
				a.cfg.CatalogPath = from
			}

			c, err := a.loadFileCatalog()
			if err != nil {
				return err
			}

			database, err := db.New(ctx, a.cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.Migrate(ctx); err != nil {
				return err
			}
			if err := catalog.Seed(ctx, database.Playlists(), c); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d moods (%d playlists)\n", c.Len(), len(c.Rows()))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Catalog YAML file to seed from")

	return cmd
}

func newVerifyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that catalog Spotify playlists are reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c, err := a.loadCatalog(ctx)
			if err != nil {
				return err
			}
			client, err := a.spotifyClient(ctx)
			if err != nil {
				return err
			}

			problems := catalog.Verify(ctx, c, client, a.logger)
			if err := ctx.Err(); err != nil {
				return err
			}
			if len(problems) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "All catalog playlists are reachable")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderProblems(problems))
			return fmt.Errorf("%d catalog playlists are unreachable", len(problems))
		},
	}
}

func renderProblems(problems []catalog.Problem) string {
	rows := make([][]string, 0, len(problems))
	for _, p := range problems {
		rows = append(rows, []string{p.Mood, p.Entry.Title, p.Entry.URL, p.Err.Error()})
	}
	return renderTable([]string{"Mood", "Title", "URL", "Error"}, rows, nil)
}
