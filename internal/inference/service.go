// Package inference runs mood inference requests end to end: classify the
// input, reduce the classifier output to a mood, and attach a playlist.
package inference

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/justestif/moodtunes/internal/catalog"
	"github.com/justestif/moodtunes/internal/classifier"
	"github.com/justestif/moodtunes/internal/mood"
)

// Defaults for image classification.
const (
	DefaultTopK        = 6
	DefaultConcurrency = 4
)

// Result is the full answer to an inference request.
type Result struct {
	Mood         mood.Label
	Confidence   float64
	Distribution mood.Distribution
	Playlist     []catalog.Entry
}

// Resolver maps a mood to playlists. *catalog.Catalog implements it.
type Resolver interface {
	Resolve(mood string) []catalog.Entry
}

// ImageError reports which image of a batch failed.
type ImageError struct {
	Index int
	Err   error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("image %d: %v", e.Index, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

// Service implements the three inference operations.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	text        classifier.TextClassifier
	image       classifier.ImageClassifier
	playlists   Resolver
	topK        int
	concurrency int
	logger      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithTopK sets how many labels are requested per image.
func WithTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithConcurrency sets the number of images classified at once in a batch.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLogger sets the logger used for per-request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates an inference service from its collaborators.
func NewService(text classifier.TextClassifier, image classifier.ImageClassifier, playlists Resolver, opts ...Option) *Service {
	s := &Service{
		text:        text,
		image:       image,
		playlists:   playlists,
		topK:        DefaultTopK,
		concurrency: DefaultConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InferFromText infers a mood from free-form text.
// Blank text resolves to neutral without calling the classifier.
func (s *Service) InferFromText(ctx context.Context, text string) (Result, error) {
	if mood.IsBlank(text) {
		return s.attach(mood.MapText(text, classifier.Result{})), nil
	}

	r, err := s.text.ClassifyText(ctx, text)
	if err != nil {
		return Result{}, fmt.Errorf("inference: classify text: %w", err)
	}

	core := mood.MapText(text, r)
	s.logger.Debug("text mood inferred",
		"label", r.Label,
		"score", r.Score,
		"mood", core.Mood,
	)
	return s.attach(core), nil
}

// InferFromImage infers a mood from a single encoded image.
func (s *Service) InferFromImage(ctx context.Context, image []byte) (Result, error) {
	results, err := s.image.ClassifyImage(ctx, image, s.topK)
	if err != nil {
		return Result{}, fmt.Errorf("inference: classify image: %w", err)
	}

	core := mood.InferSingle(results)
	s.logger.Debug("image mood inferred",
		"labels", len(results),
		"mood", core.Mood,
		"confidence", core.Confidence,
	)
	return s.attach(core), nil
}

// InferFromImages classifies every image and votes on a single mood.
//
// Images are classified concurrently but voted on in input order. The first
// failing image cancels the rest and fails the whole batch; the returned
// error is an *ImageError naming that image. No images resolves to neutral.
func (s *Service) InferFromImages(ctx context.Context, images [][]byte) (Result, error) {
	perImage, err := s.classifyAll(ctx, images)
	if err != nil {
		return Result{}, fmt.Errorf("inference: classify images: %w", err)
	}

	core := mood.InferBatch(perImage)
	s.logger.Debug("batch mood inferred",
		"images", len(images),
		"mood", core.Mood,
		"confidence", core.Confidence,
		"top", core.Distribution.Top(3),
	)
	return s.attach(core), nil
}

// classifyAll classifies images with at most s.concurrency in flight.
// Results are returned in the same order as images.
func (s *Service) classifyAll(ctx context.Context, images [][]byte) ([][]classifier.Result, error) {
	perImage := make([][]classifier.Result, len(images))
	if len(images) == 0 {
		return perImage, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, img := range images {
		g.Go(func() error {
			results, err := s.image.ClassifyImage(gctx, img, s.topK)
			if err != nil {
				return &ImageError{Index: i, Err: err}
			}
			perImage[i] = results
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return perImage, nil
}

// attach resolves the playlist for core.
func (s *Service) attach(core mood.Core) Result {
	return Result{
		Mood:         core.Mood,
		Confidence:   core.Confidence,
		Distribution: core.Distribution,
		Playlist:     s.playlists.Resolve(string(core.Mood)),
	}
}
