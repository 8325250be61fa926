package catalog

import (
	"context"
	"fmt"

	"github.com/justestif/moodtunes/internal/db"
)

// Store reads and writes catalog rows. *db.PlaylistRepository implements it.
type Store interface {
	ListAll(ctx context.Context) ([]db.PlaylistEntry, error)
	ReplaceAll(ctx context.Context, entries []db.PlaylistEntry) error
}

// LoadStore builds a Catalog from the rows held in store.
// Rows are grouped by mood and kept in position order.
func LoadStore(ctx context.Context, store Store) (*Catalog, error) {
	rows, err := store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog rows: %w", err)
	}
	return FromRows(rows)
}

// FromRows groups database rows into a Catalog. Rows are assumed to be
// ordered by mood and position.
func FromRows(rows []db.PlaylistEntry) (*Catalog, error) {
	moods := make(map[string][]Entry)
	for _, r := range rows {
		moods[r.Mood] = append(moods[r.Mood], Entry{
			Title:  r.Title,
			Source: r.Source,
			URL:    r.URL,
		})
	}
	return New(moods)
}

// Rows flattens c into database rows, sorted by mood then position.
func (c *Catalog) Rows() []db.PlaylistEntry {
	var rows []db.PlaylistEntry
	for _, mood := range c.Moods() {
		for i, e := range c.moods[mood] {
			rows = append(rows, db.PlaylistEntry{
				Mood:     mood,
				Position: i,
				Title:    e.Title,
				Source:   e.Source,
				URL:      e.URL,
			})
		}
	}
	return rows
}

// Seed replaces the rows in store with the contents of c.
func Seed(ctx context.Context, store Store, c *Catalog) error {
	if err := store.ReplaceAll(ctx, c.Rows()); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}
	return nil
}
