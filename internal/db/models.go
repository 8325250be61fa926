package db

// PlaylistEntry is one row of the playlist catalog.
// Position orders entries within a mood, starting at 0.
type PlaylistEntry struct {
	Mood     string
	Position int
	Title    string
	Source   string
	URL      string
}
