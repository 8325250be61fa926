package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/justestif/moodtunes/internal/catalog"
	"github.com/justestif/moodtunes/internal/inference"
	"github.com/justestif/moodtunes/internal/mood"
)

// Predictor runs mood inference. *inference.Service implements it.
type Predictor interface {
	InferFromText(ctx context.Context, text string) (inference.Result, error)
	InferFromImage(ctx context.Context, image []byte) (inference.Result, error)
	InferFromImages(ctx context.Context, images [][]byte) (inference.Result, error)
}

// Playlists exposes the playlist catalog. *catalog.Catalog implements it.
type Playlists interface {
	Resolve(mood string) []catalog.Entry
	Lookup(mood string) ([]catalog.Entry, bool)
	Moods() []string
}

// Handlers contains HTTP handlers for the mood API.
type Handlers struct {
	predictor      Predictor
	playlists      Playlists
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(predictor Predictor, playlists Playlists, maxUploadBytes int64, logger *slog.Logger) *Handlers {
	return &Handlers{
		predictor:      predictor,
		playlists:      playlists,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// predictionResponse is the body of every predict endpoint.
type predictionResponse struct {
	ID         string            `json:"id"`
	Mood       string            `json:"mood"`
	Confidence float64           `json:"confidence"`
	Playlist   []catalog.Entry   `json:"playlist"`
	Probs      mood.Distribution `json:"probs"`
}

type playlistResponse struct {
	Mood     string          `json:"mood"`
	Fallback bool            `json:"fallback"`
	Playlist []catalog.Entry `json:"playlist"`
}

type textRequest struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// PredictText infers a mood from a JSON text payload (POST /api/predict/text).
// An empty body is treated as blank text.
func (h *Handlers) PredictText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.predictor.InferFromText(r.Context(), req.Text)
	if err != nil {
		h.classifierFailed(w, r, err)
		return
	}

	writePrediction(w, result)
}

// PredictImage infers a mood from one uploaded image (POST /api/predict/image).
func (h *Handlers) PredictImage(w http.ResponseWriter, r *http.Request) {
	if err := parseUpload(w, r, h.maxUploadBytes); err != nil {
		h.uploadFailed(w, err)
		return
	}

	files := formFiles(r, "file")
	if len(files) == 0 {
		h.uploadFailed(w, fmt.Errorf("%w: field %q", ErrMissingFile, "file"))
		return
	}

	img, err := readImage(files[0])
	if err != nil {
		h.uploadFailed(w, err)
		return
	}

	result, err := h.predictor.InferFromImage(r.Context(), img)
	if err != nil {
		h.classifierFailed(w, r, err)
		return
	}

	writePrediction(w, result)
}

// PredictImages votes on a mood across uploaded frames (POST /api/predict/images).
// No frames resolves to neutral.
func (h *Handlers) PredictImages(w http.ResponseWriter, r *http.Request) {
	if err := parseUpload(w, r, h.maxUploadBytes); err != nil {
		h.uploadFailed(w, err)
		return
	}

	files := formFiles(r, "files")
	images := make([][]byte, 0, len(files))
	for i, fh := range files {
		img, err := readImage(fh)
		if err != nil {
			h.uploadFailed(w, fmt.Errorf("image %d: %w", i, err))
			return
		}
		images = append(images, img)
	}

	result, err := h.predictor.InferFromImages(r.Context(), images)
	if err != nil {
		h.classifierFailed(w, r, err)
		return
	}

	writePrediction(w, result)
}

// Playlist returns the playlists for a mood (GET /api/playlists/{mood}).
func (h *Handlers) Playlist(w http.ResponseWriter, r *http.Request) {
	m := string(mood.Normalize(chi.URLParam(r, "mood")))

	_, found := h.playlists.Lookup(m)
	writeJSON(w, http.StatusOK, playlistResponse{
		Mood:     m,
		Fallback: !found,
		Playlist: h.playlists.Resolve(m),
	})
}

// Moods lists the moods that have playlists (GET /api/moods).
func (h *Handlers) Moods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"moods": h.playlists.Moods()})
}

// Health reports liveness (GET /health).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) uploadFailed(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", h.maxUploadBytes))
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func (h *Handlers) classifierFailed(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "inference failed", "path", r.URL.Path, "error", err)

	msg := "classifier unavailable"
	var imgErr *inference.ImageError
	if errors.As(err, &imgErr) {
		msg = fmt.Sprintf("classifier failed on image %d", imgErr.Index)
	}
	writeError(w, http.StatusBadGateway, msg)
}

func writePrediction(w http.ResponseWriter, result inference.Result) {
	probs := result.Distribution
	if probs == nil {
		probs = mood.Distribution{}
	}
	playlist := result.Playlist
	if playlist == nil {
		playlist = []catalog.Entry{}
	}

	writeJSON(w, http.StatusOK, predictionResponse{
		ID:         uuid.NewString(),
		Mood:       string(result.Mood),
		Confidence: result.Confidence,
		Playlist:   playlist,
		Probs:      probs,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
