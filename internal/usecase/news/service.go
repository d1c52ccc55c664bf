// Package news implements the news-management use cases: the public feed,
// admin CRUD, and the synchronization of the two language variants of every
// item.
package news

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"newsportal/internal/common/pagination"
	"newsportal/internal/domain/entity"
	"newsportal/internal/infra/imagestore"
	"newsportal/internal/repository"
)

// ImageUpload carries an uploaded image stream with its metadata.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// CreateInput represents the input parameters for publishing a news item in
// its authored language. Image is required.
type CreateInput struct {
	Language string
	Title    string
	Subtitle string
	Body     string
	Image    *ImageUpload
}

// UpdateInput represents the input parameters for editing a news item.
// The edited text replaces the translation in Language; the complementary
// translation is re-derived. Image is optional and replaces the stored one.
type UpdateInput struct {
	ID       int64
	Language string
	Title    string
	Subtitle string
	Body     string
	Image    *ImageUpload
}

// PaginatedResult represents one page of the news feed with pagination
// metadata.
type PaginatedResult struct {
	Data       []*entity.News
	Pagination pagination.Metadata
}

// Service provides news management use cases. Reads go straight to the
// repository; writes run through the translation synchronizer.
type Service struct {
	Repo   repository.NewsRepository
	Sync   *Synchronizer
	Images imagestore.Store
}

// ListPage retrieves one feed page in the given language, newest first.
func (s *Service) ListPage(ctx context.Context, params pagination.Params, language string) (*PaginatedResult, error) {
	offset := pagination.CalculateOffset(params.Page, params.Limit)

	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count news: %w", err)
	}

	items, err := s.Repo.ListPage(ctx, offset, params.Limit, language)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}

	return &PaginatedResult{
		Data: items,
		Pagination: pagination.Metadata{
			Total:      total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: pagination.CalculateTotalPages(total, params.Limit),
		},
	}, nil
}

// Latest retrieves the newest count items in the given language.
func (s *Service) Latest(ctx context.Context, count int, language string) ([]*entity.News, error) {
	items, err := s.Repo.ListLatest(ctx, count, language)
	if err != nil {
		return nil, fmt.Errorf("list latest news: %w", err)
	}
	return items, nil
}

// Get retrieves a single news item with all its translations.
// Returns ErrInvalidNewsID if the ID is not positive.
// Returns ErrNewsNotFound if the item does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.News, error) {
	if id <= 0 {
		return nil, ErrInvalidNewsID
	}
	item, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get news: %w", err)
	}
	if item == nil {
		return nil, ErrNewsNotFound
	}
	return item, nil
}

// Count returns the total number of news items.
func (s *Service) Count(ctx context.Context) (int64, error) {
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count news: %w", err)
	}
	return total, nil
}

// Create validates and publishes a news item, stores its image, and kicks
// off translation derivation. Returns the new item's ID. A translation
// failure does not fail the call; the item comes back with partial status.
func (s *Service) Create(ctx context.Context, in CreateInput) (int64, error) {
	authored := &entity.NewsTranslation{
		Language: entity.NormalizeLanguage(in.Language),
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Body:     in.Body,
	}
	if err := entity.ValidateTranslation(authored); err != nil {
		return 0, err
	}
	if in.Image == nil {
		return 0, ErrImageRequired
	}

	imagePath, err := s.Images.Save(ctx, in.Image.Filename, in.Image.ContentType, in.Image.Reader, in.Image.Size)
	if err != nil {
		return 0, fmt.Errorf("store image: %w", err)
	}

	item := &entity.News{ImagePath: imagePath}
	if err := s.Sync.Create(ctx, item, authored); err != nil {
		// The item was not stored, so nothing references the upload.
		s.removeImage(ctx, imagePath)
		return 0, err
	}
	return item.ID, nil
}

// Update validates and applies an edit to a news item, optionally replacing
// its image, and re-derives the complementary translation.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	item, err := s.Get(ctx, in.ID)
	if err != nil {
		return err
	}

	edited := &entity.NewsTranslation{
		NewsID:   item.ID,
		Language: entity.NormalizeLanguage(in.Language),
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Body:     in.Body,
	}
	if existing := item.TranslationFor(edited.Language); existing != nil {
		edited.ID = existing.ID
	}
	if err := entity.ValidateTranslation(edited); err != nil {
		return err
	}

	previousImage := ""
	if in.Image != nil {
		imagePath, err := s.Images.Save(ctx, in.Image.Filename, in.Image.ContentType, in.Image.Reader, in.Image.Size)
		if err != nil {
			return fmt.Errorf("store image: %w", err)
		}
		previousImage = item.ImagePath
		item.ImagePath = imagePath
	}

	if err := s.Sync.Update(ctx, item, edited); err != nil {
		// The edit was not stored; the old row still points at the old
		// image, so only the fresh upload is removed.
		if in.Image != nil {
			s.removeImage(ctx, item.ImagePath)
		}
		return err
	}

	if previousImage != "" && previousImage != item.ImagePath {
		s.removeImage(ctx, previousImage)
	}
	return nil
}

// Delete removes a news item with its translations and stored image.
// Deleting a missing item is not an error.
// Returns ErrInvalidNewsID if the ID is not positive.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidNewsID
	}

	item, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get news: %w", err)
	}
	if item == nil {
		return nil
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	s.removeImage(ctx, item.ImagePath)
	return nil
}

// removeImage is best-effort: a leaked object must not fail the operation.
func (s *Service) removeImage(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.Images.Remove(ctx, path); err != nil {
		slog.Warn("image removal failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
	}
}
