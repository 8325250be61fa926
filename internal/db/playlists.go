package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PlaylistRepository handles playlist catalog database operations.
type PlaylistRepository struct {
	pool *pgxpool.Pool
}

// ListAll returns every catalog row ordered by mood and position.
func (r *PlaylistRepository) ListAll(ctx context.Context) ([]PlaylistEntry, error) {
	query := `
		SELECT mood, position, title, source, url
		FROM playlist_entries
		ORDER BY mood, position
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying playlist entries: %w", err)
	}
	defer rows.Close()

	var entries []PlaylistEntry
	for rows.Next() {
		var e PlaylistEntry
		if err := rows.Scan(
			&e.Mood,
			&e.Position,
			&e.Title,
			&e.Source,
			&e.URL,
		); err != nil {
			return nil, fmt.Errorf("scanning playlist entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ReplaceAll swaps the whole catalog for entries in a single transaction.
func (r *PlaylistRepository) ReplaceAll(ctx context.Context, entries []PlaylistEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM playlist_entries`); err != nil {
		return fmt.Errorf("clearing playlist entries: %w", err)
	}

	rows := make([][]any, len(entries))
	for i, e := range entries {
		rows[i] = []any{e.Mood, e.Position, e.Title, e.Source, e.URL}
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"playlist_entries"},
		[]string{"mood", "position", "title", "source", "url"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("inserting playlist entries: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
