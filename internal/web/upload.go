package web

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

var (
	// ErrInvalidImage is returned when an upload is not a decodable image.
	ErrInvalidImage = errors.New("invalid image")

	// ErrMissingFile is returned when a required multipart field is absent.
	ErrMissingFile = errors.New("missing file")

	// ErrTooLarge is returned when the request body exceeds the upload cap.
	ErrTooLarge = errors.New("upload too large")
)

// parseUpload reads a multipart body no larger than maxBytes.
func parseUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return ErrTooLarge
		}
		return fmt.Errorf("parse multipart form: %w", err)
	}
	return nil
}

// readImage reads an uploaded file and checks that it decodes as a
// supported image format.
func readImage(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", fh.Filename, err)
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidImage, fh.Filename, err)
	}
	return data, nil
}

// formFiles returns the file headers uploaded under field.
func formFiles(r *http.Request, field string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.File[field]
}
