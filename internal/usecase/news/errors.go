package news

import "errors"

var (
	// ErrNewsNotFound is returned when the requested news item does not exist.
	ErrNewsNotFound = errors.New("news not found")
	// ErrInvalidNewsID is returned when a news ID is zero or negative.
	ErrInvalidNewsID = errors.New("invalid news id")
	// ErrImageRequired is returned when a news item is created without an image.
	ErrImageRequired = errors.New("image is required")
)
