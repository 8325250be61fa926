package huggingface

import "time"

// Default models match the sentiment pipeline default and the facial emotion
// model the catalog was curated against.
const (
	DefaultBaseURL    = "https://api-inference.huggingface.co"
	DefaultTextModel  = "distilbert/distilbert-base-uncased-finetuned-sst-2-english"
	DefaultImageModel = "dima806/facial_emotions_image_detection"
	DefaultTimeout    = 30 * time.Second
)

// Config holds Hugging Face Inference API configuration.
type Config struct {
	BaseURL    string
	Token      string // Optional; anonymous requests are heavily rate limited
	TextModel  string
	ImageModel string
	Timeout    time.Duration
}

// withDefaults fills empty fields with the package defaults.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.TextModel == "" {
		c.TextModel = DefaultTextModel
	}
	if c.ImageModel == "" {
		c.ImageModel = DefaultImageModel
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
