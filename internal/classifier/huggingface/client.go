// Package huggingface classifies text sentiment and facial emotion through the
// Hugging Face Inference API.
package huggingface

import (
	"bytes"
	"cmp"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/justestif/moodtunes/internal/classifier"
)

const userAgent = "moodtunes/1.0"

// Sentinel errors.
var (
	// ErrModelLoading is returned when the model is still loading after retries.
	ErrModelLoading = errors.New("model is loading")

	// ErrRateLimited is returned when the API rate limit is exceeded after retries.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrUnauthorized is returned when the API token is missing or invalid.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoResults is returned when the API answers with an empty result list.
	ErrNoResults = errors.New("classifier returned no results")
)

// StatusError is returned for unexpected HTTP status codes.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

// Client is a Hugging Face Inference API client.
// It implements classifier.TextClassifier and classifier.ImageClassifier.
type Client struct {
	baseURL    string
	token      string
	textModel  string
	imageModel string
	httpClient *http.Client
	delays     []time.Duration
}

var (
	_ classifier.TextClassifier  = (*Client)(nil)
	_ classifier.ImageClassifier = (*Client)(nil)
)

// NewClient creates a new Inference API client from the provided configuration.
func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		delays: []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
	}
}

// ClassifyText returns the highest scoring sentiment label for text.
func (c *Client) ClassifyText(ctx context.Context, text string) (classifier.Result, error) {
	body, err := json.Marshal(textRequest{Inputs: text})
	if err != nil {
		return classifier.Result{}, fmt.Errorf("encoding text request: %w", err)
	}

	results, err := c.classify(ctx, c.textModel, body)
	if err != nil {
		return classifier.Result{}, fmt.Errorf("classifying text: %w", err)
	}
	return results[0], nil
}

// ClassifyImage returns up to topK emotion labels for an encoded image,
// highest score first. topK <= 0 returns everything the model reports.
func (c *Client) ClassifyImage(ctx context.Context, image []byte, topK int) ([]classifier.Result, error) {
	req := imageRequest{Inputs: base64.StdEncoding.EncodeToString(image)}
	if topK > 0 {
		req.Parameters.TopK = topK
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding image request: %w", err)
	}

	results, err := c.classify(ctx, c.imageModel, body)
	if err != nil {
		return nil, fmt.Errorf("classifying image: %w", err)
	}
	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// classify posts body to the model endpoint and returns the results sorted
// by descending score.
func (c *Client) classify(ctx context.Context, model string, body []byte) ([]classifier.Result, error) {
	respBody, err := c.doRequest(ctx, c.baseURL+"/models/"+model, body)
	if err != nil {
		return nil, err
	}

	results, err := decodeResults(respBody)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	slices.SortStableFunc(results, func(a, b classifier.Result) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return results, nil
}

// doRequest performs an HTTP POST with retry while the model is loading or
// the API is rate limiting. Retries up to 3 times with exponential backoff.
func (c *Client) doRequest(ctx context.Context, url string, body []byte) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= len(c.delays); attempt++ {
		// Wait before retry (skip on first attempt)
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.delays[attempt-1]):
			}
		}

		respBody, err := c.doSingleRequest(ctx, url, body)
		if err == nil {
			return respBody, nil
		}

		if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrModelLoading) {
			lastErr = err
			continue
		}

		// Non-retryable error
		return nil, err
	}

	return nil, lastErr
}

// doSingleRequest performs a single HTTP request.
func (c *Client) doSingleRequest(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return respBody, nil
	case resp.StatusCode == http.StatusServiceUnavailable:
		return nil, ErrModelLoading
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	}

	var apiErr apiError
	_ = json.Unmarshal(respBody, &apiErr)
	return nil, &StatusError{StatusCode: resp.StatusCode, Message: apiErr.Error}
}
