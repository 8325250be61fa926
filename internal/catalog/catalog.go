// Package catalog holds the static mood-to-playlist table and resolves moods
// to playlists, falling back to the neutral list for unknown moods.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// FallbackMood is the catalog key used when a mood has no playlists.
const FallbackMood = "neutral"

// ErrMissingFallback is returned when a catalog has no neutral playlists.
var ErrMissingFallback = errors.New("catalog: missing neutral playlists")

// ErrDuplicateMood is returned when two mood keys fold to the same name.
var ErrDuplicateMood = errors.New("catalog: duplicate mood")

// Entry is a curated playlist.
type Entry struct {
	Title  string `json:"title" yaml:"title"`
	Source string `json:"source" yaml:"source"`
	URL    string `json:"url" yaml:"url"`
}

// Catalog is an immutable mapping from mood to an ordered list of playlists.
// It is safe for concurrent use.
type Catalog struct {
	moods map[string][]Entry
}

// New builds a Catalog from a mood table. Keys are case-folded and trimmed;
// two keys that fold to the same name are rejected.
// The table must contain a non-empty neutral list.
func New(moods map[string][]Entry) (*Catalog, error) {
	c := &Catalog{moods: make(map[string][]Entry, len(moods))}
	seen := make(map[string]string, len(moods))
	for mood, entries := range moods {
		key := foldKey(mood)
		if key == "" {
			return nil, fmt.Errorf("catalog: empty mood name")
		}
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %q and %q", ErrDuplicateMood, prev, mood)
		}
		seen[key] = mood
		if len(entries) == 0 {
			continue
		}
		c.moods[key] = slices.Clone(entries)
	}

	if len(c.moods[FallbackMood]) == 0 {
		return nil, ErrMissingFallback
	}
	return c, nil
}

// Resolve returns the playlists for mood, or the neutral playlists when the
// mood is not in the catalog. The result is never empty.
func (c *Catalog) Resolve(mood string) []Entry {
	entries, ok := c.moods[foldKey(mood)]
	if !ok {
		entries = c.moods[FallbackMood]
	}
	return slices.Clone(entries)
}

// Lookup returns the playlists stored for mood without falling back.
func (c *Catalog) Lookup(mood string) ([]Entry, bool) {
	entries, ok := c.moods[foldKey(mood)]
	if !ok {
		return nil, false
	}
	return slices.Clone(entries), true
}

// Moods returns the catalog keys in sorted order.
func (c *Catalog) Moods() []string {
	moods := make([]string, 0, len(c.moods))
	for m := range c.moods {
		moods = append(moods, m)
	}
	slices.Sort(moods)
	return moods
}

// Len returns the number of moods in the catalog.
func (c *Catalog) Len() int {
	return len(c.moods)
}

func foldKey(mood string) string {
	return strings.ToLower(strings.TrimSpace(mood))
}
