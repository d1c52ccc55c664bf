// Package imagestore persists uploaded news images and returns the path
// stored alongside the news row.
package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedImageType is returned for uploads outside the allowed set.
var ErrUnsupportedImageType = errors.New("unsupported image type")

// Store saves and removes news images. Save returns the path to persist on
// the news entity; Remove accepts the same path back.
type Store interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error)
	Remove(ctx context.Context, path string) error
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// objectName builds a collision-free name, keeping the original extension
// when it agrees with the declared content type.
func objectName(filename, contentType string) (string, error) {
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImageType, contentType)
	}
	if orig := strings.ToLower(filepath.Ext(filename)); orig != "" && orig != ext {
		// .jpeg and .jpg both satisfy image/jpeg.
		if !(orig == ".jpeg" && ext == ".jpg") {
			return "", fmt.Errorf("%w: extension %s does not match %s",
				ErrUnsupportedImageType, orig, contentType)
		}
		ext = orig
	}
	return uuid.New().String() + ext, nil
}
