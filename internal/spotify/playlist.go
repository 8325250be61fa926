package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/zmb3/spotify/v2"
)

// ParsePlaylistURL extracts the playlist ID from an open.spotify.com URL
// or a spotify:playlist:<id> URI.
func ParsePlaylistURL(raw string) (string, error) {
	if id, ok := strings.CutPrefix(raw, "spotify:playlist:"); ok && id != "" {
		return id, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing playlist URL: %w", err)
	}
	if u.Host != "open.spotify.com" {
		return "", fmt.Errorf("not a Spotify URL: %q", raw)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "playlist" && parts[i+1] != "" {
			return parts[i+1], nil
		}
	}
	return "", fmt.Errorf("no playlist ID in %q", raw)
}

// PlaylistName fetches a playlist by URL and returns its name.
func (c *Client) PlaylistName(ctx context.Context, playlistURL string) (string, error) {
	id, err := ParsePlaylistURL(playlistURL)
	if err != nil {
		return "", err
	}

	playlist, err := c.api.GetPlaylist(ctx, spotify.ID(id))
	if err != nil {
		return "", fmt.Errorf("getting playlist %s: %w", id, err)
	}

	return playlist.Name, nil
}
