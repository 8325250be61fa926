// Package mood turns raw classifier outputs into a single mood, a confidence
// and a probability distribution.
package mood

import "strings"

// Label is a mood name. Labels produced by Normalize may fall outside the
// known vocabulary; the playlist catalog falls back to Neutral for those.
type Label string

// Core moods, shared with the image-emotion classifier.
const (
	Happy    Label = "happy"
	Sad      Label = "sad"
	Angry    Label = "angry"
	Neutral  Label = "neutral"
	Disgust  Label = "disgust"
	Fear     Label = "fear"
	Surprise Label = "surprise"
)

// Extended moods, reachable from text.
const (
	Excited   Label = "excited"
	Calm      Label = "calm"
	Romantic  Label = "romantic"
	Lonely    Label = "lonely"
	Motivated Label = "motivated"
)

// Category moods.
const (
	Energetic  Label = "energetic"
	ChillNight Label = "chill_night"
	Karaoke    Label = "karaoke"
	Desi       Label = "desi"
	Gaming     Label = "gaming"
	Study      Label = "study"
)

// Vocabulary lists every known mood in display order.
var Vocabulary = []Label{
	Happy, Sad, Angry, Neutral, Disgust, Fear, Surprise,
	Excited, Calm, Romantic, Lonely, Motivated,
	Energetic, ChillNight, Karaoke, Desi, Gaming, Study,
}

// aliases maps lower-cased classifier labels onto moods.
var aliases = map[string]Label{
	"angry":    Angry,
	"disgust":  Disgust,
	"fear":     Fear,
	"happy":    Happy,
	"neutral":  Neutral,
	"sad":      Sad,
	"surprise": Surprise,
}

// String returns the label as a plain string.
func (l Label) String() string {
	return string(l)
}

// Known reports whether l is part of Vocabulary.
func (l Label) Known() bool {
	for _, v := range Vocabulary {
		if v == l {
			return true
		}
	}
	return false
}

// Normalize canonicalizes a raw classifier label.
// The label is trimmed and lower-cased, then looked up in the alias table.
// Labels without an alias are returned as-is (trimmed and lower-cased).
func Normalize(raw string) Label {
	l := strings.ToLower(strings.TrimSpace(raw))
	if m, ok := aliases[l]; ok {
		return m
	}
	return Label(l)
}
