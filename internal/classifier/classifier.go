// Package classifier defines the contract between the mood inference core and
// the external text-sentiment and image-emotion classifiers.
package classifier

import "context"

// Result is a single label/score pair produced by a classifier.
type Result struct {
	Label string  `json:"label"`
	Score float64 `json:"score"` // In [0, 1]
}

// TextClassifier classifies the sentiment of free-form text.
// Implementations return the single most likely label.
type TextClassifier interface {
	ClassifyText(ctx context.Context, text string) (Result, error)
}

// ImageClassifier classifies the facial emotion in an encoded image.
// Implementations return at most topK results, highest score first.
type ImageClassifier interface {
	ClassifyImage(ctx context.Context, image []byte, topK int) ([]Result, error)
}
