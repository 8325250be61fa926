package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

// mockNamer implements PlaylistNamer, failing for URLs in missing.
type mockNamer struct {
	missing map[string]bool
	calls   map[string]int
}

func (m *mockNamer) PlaylistName(ctx context.Context, playlistURL string) (string, error) {
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[playlistURL]++
	if m.missing[playlistURL] {
		return "", errors.New("not found")
	}
	return "name", nil
}

func TestVerify(t *testing.T) {
	c, err := New(map[string][]Entry{
		"neutral": {
			{Title: "Cafe", Source: "spotify", URL: "https://open.spotify.com/playlist/shared"},
			{Title: "Radio", Source: "youtube", URL: "https://youtube.com/x"},
		},
		"calm": {
			{Title: "Coffeehouse", Source: "spotify", URL: "https://open.spotify.com/playlist/shared"},
			{Title: "Gone", Source: "spotify", URL: "https://open.spotify.com/playlist/gone"},
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	namer := &mockNamer{missing: map[string]bool{"https://open.spotify.com/playlist/gone": true}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	problems := Verify(context.Background(), c, namer, logger)

	if len(problems) != 1 {
		t.Fatalf("expected 1 problem, got %d: %v", len(problems), problems)
	}
	if problems[0].Mood != "calm" || problems[0].Entry.Title != "Gone" {
		t.Errorf("unexpected problem: %+v", problems[0])
	}
	if n := namer.calls["https://open.spotify.com/playlist/shared"]; n != 1 {
		t.Errorf("shared URL looked up %d times, want 1", n)
	}
	if n := namer.calls["https://youtube.com/x"]; n != 0 {
		t.Errorf("non-spotify entry looked up %d times, want 0", n)
	}
}

func TestVerify_CancelledContext(t *testing.T) {
	c := testCatalog(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	namer := &mockNamer{}
	problems := Verify(ctx, c, namer, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if len(problems) != 0 {
		t.Errorf("expected no problems, got %v", problems)
	}
	if len(namer.calls) != 0 {
		t.Errorf("expected no lookups after cancel, got %v", namer.calls)
	}
}
