package storage

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrNotAnImage = errors.New("payload is not a base64 image data URL")

// DecodeImage parses a `data:image/<type>;base64,<payload>` data URL as
// sent by the frontend and returns the raw bytes plus the image extension.
func DecodeImage(dataURL string) ([]byte, string, error) {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return nil, "", ErrNotAnImage
	}

	head, payload, found := strings.Cut(dataURL, ";base64,")
	if !found {
		return nil, "", ErrNotAnImage
	}

	ext := strings.TrimPrefix(head, "data:image/")
	if ext == "" {
		return nil, "", ErrNotAnImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", ErrNotAnImage
	}

	return data, ext, nil
}

// ImageKey derives a fresh storage key for a category image.
func ImageKey(ext string) string {
	return "category/" + uuid.NewString() + "." + ext
}
