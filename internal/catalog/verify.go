package catalog

import (
	"context"
	"log/slog"
)

// PlaylistNamer looks up the display name of a playlist by URL.
// *spotify.Client from internal/spotify implements it.
type PlaylistNamer interface {
	PlaylistName(ctx context.Context, playlistURL string) (string, error)
}

// Problem describes a catalog entry that could not be confirmed.
type Problem struct {
	Mood  string
	Entry Entry
	Err   error
}

// Verify checks every spotify entry in c against the Spotify API and returns
// the entries that could not be fetched. URLs shared by several moods are
// only looked up once. Verification never modifies the catalog.
func Verify(ctx context.Context, c *Catalog, namer PlaylistNamer, logger *slog.Logger) []Problem {
	checked := make(map[string]error)
	var problems []Problem

	for _, mood := range c.Moods() {
		for _, e := range c.moods[mood] {
			if e.Source != "spotify" {
				continue
			}
			if ctx.Err() != nil {
				return problems
			}

			err, seen := checked[e.URL]
			if !seen {
				var name string
				name, err = namer.PlaylistName(ctx, e.URL)
				checked[e.URL] = err
				if err == nil {
					logger.Debug("catalog playlist verified", "mood", mood, "title", e.Title, "name", name)
				}
			}
			if err != nil {
				logger.Warn("catalog playlist unavailable", "mood", mood, "title", e.Title, "url", e.URL, "error", err)
				problems = append(problems, Problem{Mood: mood, Entry: e, Err: err})
			}
		}
	}

	return problems
}
