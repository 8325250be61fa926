package huggingface

import (
	"encoding/json"
	"fmt"

	"github.com/justestif/moodtunes/internal/classifier"
)

// textRequest is the JSON body for text classification.
type textRequest struct {
	Inputs string `json:"inputs"`
}

// imageRequest is the JSON body for image classification.
// Inputs holds the base64-encoded image.
type imageRequest struct {
	Inputs     string          `json:"inputs"`
	Parameters imageParameters `json:"parameters"`
}

type imageParameters struct {
	TopK int `json:"top_k,omitempty"`
}

// apiError is the error body returned by the Inference API.
type apiError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}

// decodeResults accepts both a flat list of results and the nested
// list-per-input form returned by text classification.
func decodeResults(body []byte) ([]classifier.Result, error) {
	var flat []classifier.Result
	if err := json.Unmarshal(body, &flat); err == nil {
		return flat, nil
	}

	var nested [][]classifier.Result
	if err := json.Unmarshal(body, &nested); err != nil {
		return nil, fmt.Errorf("decoding classifier results: %w", err)
	}
	if len(nested) == 0 {
		return []classifier.Result{}, nil
	}
	return nested[0], nil
}
