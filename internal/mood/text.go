package mood

import (
	"strings"

	"github.com/justestif/moodtunes/internal/classifier"
)

// Keys of the text-path distribution.
const (
	Positive = "positive"
	Negative = "negative"
)

// MapText converts a sentiment classification of text into a mood.
//
// Blank text always yields Neutral with zero confidence; callers should skip
// the classifier call in that case and may pass a zero Result.
// Topical keywords take precedence over the sentiment label. Confidence is
// the classifier score even when the mood comes from a keyword.
func MapText(text string, r classifier.Result) Core {
	if IsBlank(text) {
		return neutralCore()
	}

	lower := strings.ToLower(text)
	label := strings.ToLower(r.Label)
	score := clampScore(r.Score)

	m, ok := MatchKeywords(lower)
	if !ok {
		m = sentimentMood(lower, label)
	}

	return Core{
		Mood:         m,
		Confidence:   score,
		Distribution: sentimentDistribution(label, score),
	}
}

// sentimentMood picks a mood from a lower-cased sentiment label, refining
// negative sentiment with anger and loneliness keywords.
func sentimentMood(lower, label string) Label {
	switch {
	case strings.Contains(label, "positive"):
		return Happy
	case strings.Contains(label, "negative"):
		if m, ok := firstMatch(lower, negativeRules); ok {
			return m
		}
		return Sad
	default:
		return Neutral
	}
}

// sentimentDistribution builds the three-way chart values for the text path.
// The proportions are display heuristics, not calibrated probabilities.
func sentimentDistribution(label string, score float64) Distribution {
	rest := 1.0 - score
	switch {
	case strings.Contains(label, "pos"):
		return Distribution{
			Positive:        score,
			Negative:        rest * 0.6,
			string(Neutral): rest * 0.4,
		}
	case strings.Contains(label, "neg"):
		return Distribution{
			Negative:        score,
			Positive:        rest * 0.3,
			string(Neutral): rest * 0.7,
		}
	default:
		return Distribution{
			string(Neutral): 0.6,
			Positive:        0.2,
			Negative:        0.2,
		}
	}
}
