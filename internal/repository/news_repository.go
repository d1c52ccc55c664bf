// Package repository defines persistence interfaces for the domain entities.
// Concrete implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"newsportal/internal/domain/entity"
)

// NewsRepository persists news items together with their translations.
//
// Every method that writes touches a single news row plus its translation
// rows inside one transaction; there is no cross-item coordination.
type NewsRepository interface {
	// ListPage retrieves one page of news, newest CreatedAt first.
	// Each returned item carries at most one translation: the one in the
	// requested language, when it exists.
	ListPage(ctx context.Context, offset, limit int, language string) ([]*entity.News, error)

	// ListLatest retrieves the newest count items, shaped like ListPage.
	ListLatest(ctx context.Context, count int, language string) ([]*entity.News, error)

	// Get retrieves a news item with ALL its translations attached.
	// Returns (nil, nil) when the id does not exist.
	Get(ctx context.Context, id int64) (*entity.News, error)

	// Count returns the total number of news items, independent of language.
	Count(ctx context.Context) (int64, error)

	// Create inserts a news item together with its first translation in a
	// single transaction and assigns both IDs.
	Create(ctx context.Context, news *entity.News, translation *entity.NewsTranslation) error

	// Update persists changed news fields (image path, translation status)
	// and upserts the given translation on (news_id, language): an existing
	// row in that language is updated in place, never duplicated.
	Update(ctx context.Context, news *entity.News, translation *entity.NewsTranslation) error

	// Delete removes the news item and all its translations.
	// Deleting a missing id is a no-op, not an error.
	Delete(ctx context.Context, id int64) error

	// ListIncomplete retrieves up to limit news items whose translation
	// status is not complete, oldest first, with all translations attached.
	// This feeds the reconciliation worker.
	ListIncomplete(ctx context.Context, limit int) ([]*entity.News, error)
}

// AdminRepository persists administrator accounts.
type AdminRepository interface {
	// GetByEmail returns the admin with the given email, or (nil, nil).
	GetByEmail(ctx context.Context, email string) (*entity.AdminUser, error)

	// Count returns the number of admin accounts.
	Count(ctx context.Context) (int64, error)

	// Create inserts a new admin account and assigns its ID.
	Create(ctx context.Context, user *entity.AdminUser) error
}
