// Package postgres implements the repository interfaces on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsportal/internal/domain/entity"
	"newsportal/internal/repository"
)

type NewsRepo struct {
	db *sql.DB
}

func NewNewsRepo(db *sql.DB) repository.NewsRepository {
	return &NewsRepo{db: db}
}

// feedQuery selects news with the translation in one language attached.
// LEFT JOIN keeps items that have no translation in the requested language.
const feedQuery = `
SELECT n.id, n.image_path, n.translation_status, n.created_at,
       t.id, t.language, t.title, t.subtitle, t.body
FROM news n
LEFT JOIN news_translations t ON t.news_id = n.id AND t.language = $1
ORDER BY n.created_at DESC, n.id DESC`

func (repo *NewsRepo) ListPage(ctx context.Context, offset, limit int, language string) ([]*entity.News, error) {
	rows, err := repo.db.QueryContext(ctx, feedQuery+`
LIMIT $2 OFFSET $3`, language, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items, err := scanFeedRows(rows, limit)
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	return items, rows.Err()
}

func (repo *NewsRepo) ListLatest(ctx context.Context, count int, language string) ([]*entity.News, error) {
	rows, err := repo.db.QueryContext(ctx, feedQuery+`
LIMIT $2`, language, count)
	if err != nil {
		return nil, fmt.Errorf("ListLatest: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items, err := scanFeedRows(rows, count)
	if err != nil {
		return nil, fmt.Errorf("ListLatest: %w", err)
	}
	return items, rows.Err()
}

// scanFeedRows scans feed-shaped rows where the translation columns may be NULL.
func scanFeedRows(rows *sql.Rows, capacity int) ([]*entity.News, error) {
	if capacity < 0 {
		capacity = 0
	}
	items := make([]*entity.News, 0, capacity)
	for rows.Next() {
		var (
			n         entity.News
			imagePath sql.NullString
			status    string
			trID      sql.NullInt64
			trLang    sql.NullString
			trTitle   sql.NullString
			trSub     sql.NullString
			trBody    sql.NullString
		)
		if err := rows.Scan(&n.ID, &imagePath, &status, &n.CreatedAt,
			&trID, &trLang, &trTitle, &trSub, &trBody); err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		n.ImagePath = imagePath.String
		n.TranslationStatus = entity.TranslationStatus(status)
		if trID.Valid {
			n.Translations = []*entity.NewsTranslation{{
				ID:       trID.Int64,
				NewsID:   n.ID,
				Language: trLang.String,
				Title:    trTitle.String,
				Subtitle: trSub.String,
				Body:     trBody.String,
			}}
		}
		items = append(items, &n)
	}
	return items, nil
}

func (repo *NewsRepo) Get(ctx context.Context, id int64) (*entity.News, error) {
	const query = `
SELECT id, image_path, translation_status, created_at
FROM news
WHERE id = $1
LIMIT 1`
	var (
		n         entity.News
		imagePath sql.NullString
		status    string
	)
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&n.ID, &imagePath, &status, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	n.ImagePath = imagePath.String
	n.TranslationStatus = entity.TranslationStatus(status)

	translations, err := repo.translationsFor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	n.Translations = translations
	return &n, nil
}

func (repo *NewsRepo) translationsFor(ctx context.Context, newsID int64) ([]*entity.NewsTranslation, error) {
	const query = `
SELECT id, news_id, language, title, subtitle, body
FROM news_translations
WHERE news_id = $1
ORDER BY id`
	rows, err := repo.db.QueryContext(ctx, query, newsID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	translations := make([]*entity.NewsTranslation, 0, 2)
	for rows.Next() {
		var (
			t        entity.NewsTranslation
			subtitle sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.NewsID, &t.Language, &t.Title, &subtitle, &t.Body); err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		t.Subtitle = subtitle.String
		translations = append(translations, &t)
	}
	return translations, rows.Err()
}

func (repo *NewsRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM news`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *NewsRepo) Create(ctx context.Context, news *entity.News, translation *entity.NewsTranslation) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Create: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowContext(ctx, `
INSERT INTO news (image_path, translation_status, created_at)
VALUES ($1, $2, $3)
RETURNING id`,
		nullable(news.ImagePath), string(news.TranslationStatus), news.CreatedAt).
		Scan(&news.ID)
	if err != nil {
		return fmt.Errorf("Create: insert news: %w", err)
	}

	translation.NewsID = news.ID
	err = tx.QueryRowContext(ctx, `
INSERT INTO news_translations (news_id, language, title, subtitle, body)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`,
		translation.NewsID, translation.Language, translation.Title,
		nullable(translation.Subtitle), translation.Body).
		Scan(&translation.ID)
	if err != nil {
		return fmt.Errorf("Create: insert translation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Create: commit: %w", err)
	}
	return nil
}

func (repo *NewsRepo) Update(ctx context.Context, news *entity.News, translation *entity.NewsTranslation) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Update: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
UPDATE news
SET image_path = $2, translation_status = $3
WHERE id = $1`,
		news.ID, nullable(news.ImagePath), string(news.TranslationStatus)); err != nil {
		return fmt.Errorf("Update: news: %w", err)
	}

	// Upsert on (news_id, language) so a translation row is refreshed in
	// place, never duplicated.
	err = tx.QueryRowContext(ctx, `
INSERT INTO news_translations (news_id, language, title, subtitle, body)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (news_id, language) DO UPDATE
SET title = EXCLUDED.title, subtitle = EXCLUDED.subtitle, body = EXCLUDED.body
RETURNING id`,
		news.ID, translation.Language, translation.Title,
		nullable(translation.Subtitle), translation.Body).
		Scan(&translation.ID)
	if err != nil {
		return fmt.Errorf("Update: translation: %w", err)
	}
	translation.NewsID = news.ID

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Update: commit: %w", err)
	}
	return nil
}

func (repo *NewsRepo) Delete(ctx context.Context, id int64) error {
	// Translations go with the news row via ON DELETE CASCADE.
	// Deleting a missing id affects zero rows and is not an error.
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func (repo *NewsRepo) ListIncomplete(ctx context.Context, limit int) ([]*entity.News, error) {
	const query = `
SELECT n.id, n.image_path, n.translation_status, n.created_at,
       t.id, t.news_id, t.language, t.title, t.subtitle, t.body
FROM (
    SELECT id, image_path, translation_status, created_at
    FROM news
    WHERE translation_status <> 'complete'
    ORDER BY created_at ASC, id ASC
    LIMIT $1
) n
LEFT JOIN news_translations t ON t.news_id = n.id
ORDER BY n.created_at ASC, n.id ASC, t.id ASC`

	rows, err := repo.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ListIncomplete: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var (
		items   = make([]*entity.News, 0, limit)
		current *entity.News
	)
	for rows.Next() {
		var (
			id        int64
			imagePath sql.NullString
			status    string
			createdAt sql.NullTime
			trID      sql.NullInt64
			trNewsID  sql.NullInt64
			trLang    sql.NullString
			trTitle   sql.NullString
			trSub     sql.NullString
			trBody    sql.NullString
		)
		if err := rows.Scan(&id, &imagePath, &status, &createdAt,
			&trID, &trNewsID, &trLang, &trTitle, &trSub, &trBody); err != nil {
			return nil, fmt.Errorf("ListIncomplete: Scan: %w", err)
		}
		if current == nil || current.ID != id {
			current = &entity.News{
				ID:                id,
				ImagePath:         imagePath.String,
				TranslationStatus: entity.TranslationStatus(status),
				CreatedAt:         createdAt.Time,
			}
			items = append(items, current)
		}
		if trID.Valid {
			current.Translations = append(current.Translations, &entity.NewsTranslation{
				ID:       trID.Int64,
				NewsID:   trNewsID.Int64,
				Language: trLang.String,
				Title:    trTitle.String,
				Subtitle: trSub.String,
				Body:     trBody.String,
			})
		}
	}
	return items, rows.Err()
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
