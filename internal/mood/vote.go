package mood

import "github.com/justestif/moodtunes/internal/classifier"

// InferSingle picks the mood for one image from its classifier results.
// The distribution holds every normalized label with its raw score and is not
// renormalized. An empty result set yields Neutral with zero confidence.
func InferSingle(results []classifier.Result) Core {
	d := toDistribution(results)

	best, score, ok := argmax(d)
	if !ok {
		return Core{Mood: Neutral, Confidence: 0, Distribution: Distribution{}}
	}

	return Core{
		Mood:         Label(best),
		Confidence:   score,
		Distribution: d,
	}
}

// InferBatch votes across several images.
//
// Each image's normalized scores are summed per label and divided by the
// number of images, so a label missing from one image's top-k counts as 0 for
// that image. The label with the highest mean wins.
// With no images (or no labels at all) the result is Neutral with zero confidence.
func InferBatch(perImage [][]classifier.Result) Core {
	avg := make(Distribution)
	for _, results := range perImage {
		for label, score := range toDistribution(results) {
			avg[label] += score
		}
	}

	n := float64(max(1, len(perImage)))
	for label := range avg {
		avg[label] /= n
	}

	best, score, ok := argmax(avg)
	if !ok {
		return Core{Mood: Neutral, Confidence: 0, Distribution: avg}
	}

	return Core{
		Mood:         Label(best),
		Confidence:   score,
		Distribution: avg,
	}
}
