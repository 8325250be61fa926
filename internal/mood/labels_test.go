package mood

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Label
	}{
		{name: "title case alias", raw: "Happy", want: Happy},
		{name: "upper case alias", raw: "SURPRISE", want: Surprise},
		{name: "surrounding whitespace", raw: "  Angry \n", want: Angry},
		{name: "already canonical", raw: "happy", want: Happy},
		{name: "every core alias", raw: "Disgust", want: Disgust},
		{name: "fear", raw: "fear", want: Fear},
		{name: "neutral", raw: "Neutral", want: Neutral},
		{name: "sad", raw: "Sad", want: Sad},
		{name: "unknown passes through lower-cased", raw: " Contempt ", want: Label("contempt")},
		{name: "empty stays empty", raw: "", want: Label("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, raw := range []string{"Happy", "SAD", " neutral ", "Contempt", "chill_night"} {
		once := Normalize(raw)
		twice := Normalize(string(once))
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", raw, once, twice)
		}
	}
}

func TestLabelKnown(t *testing.T) {
	for _, l := range Vocabulary {
		if !l.Known() {
			t.Errorf("%q should be known", l)
		}
	}

	if Label("contempt").Known() {
		t.Error("contempt should not be known")
	}

	if len(Vocabulary) != 18 {
		t.Errorf("len(Vocabulary) = %d, want 18", len(Vocabulary))
	}
}
