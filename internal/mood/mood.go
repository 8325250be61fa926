package mood

import (
	"math"
	"slices"
	"strings"

	"github.com/justestif/moodtunes/internal/classifier"
)

// Distribution maps a label to a probability-like value in [0, 1].
// Values are not guaranteed to sum to 1.
type Distribution map[string]float64

// Core is the outcome of mood inference before a playlist is attached.
type Core struct {
	Mood         Label        // Selected mood
	Confidence   float64      // In [0, 1]
	Distribution Distribution // Text path: positive/negative/neutral; image path: per-mood scores
}

// neutralCore is returned for blank text.
func neutralCore() Core {
	return Core{
		Mood:         Neutral,
		Confidence:   0,
		Distribution: Distribution{string(Neutral): 1.0},
	}
}

// IsBlank reports whether text has no content after trimming whitespace.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// Top returns the labels of d ordered by descending value, ties by label.
// At most n labels are returned; n <= 0 returns all of them.
func (d Distribution) Top(n int) []string {
	labels := make([]string, 0, len(d))
	for l := range d {
		labels = append(labels, l)
	}
	slices.SortFunc(labels, func(a, b string) int {
		switch {
		case d[a] > d[b]:
			return -1
		case d[a] < d[b]:
			return 1
		default:
			return strings.Compare(a, b)
		}
	})
	if n > 0 && n < len(labels) {
		labels = labels[:n]
	}
	return labels
}

// argmax returns the label with the highest value in d.
// Equal maxima resolve to the lexicographically smallest label so the
// choice does not depend on map iteration order.
func argmax(d Distribution) (string, float64, bool) {
	if len(d) == 0 {
		return "", 0, false
	}
	labels := make([]string, 0, len(d))
	for l := range d {
		labels = append(labels, l)
	}
	slices.Sort(labels)

	best := labels[0]
	for _, l := range labels[1:] {
		if d[l] > d[best] {
			best = l
		}
	}
	return best, d[best], true
}

// toDistribution normalizes each result label and records its score.
// A later result overwrites an earlier one with the same normalized label.
func toDistribution(results []classifier.Result) Distribution {
	d := make(Distribution, len(results))
	for _, r := range results {
		d[string(Normalize(r.Label))] = clampScore(r.Score)
	}
	return d
}

// clampScore forces a classifier score into [0, 1]. NaN becomes 0.
func clampScore(s float64) float64 {
	if math.IsNaN(s) {
		return 0
	}
	return min(max(s, 0), 1)
}
