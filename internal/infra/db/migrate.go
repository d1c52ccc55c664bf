package db

import "database/sql"

// MigrateUp creates the schema. Statements are idempotent so the migration
// can run on every startup.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS news (
    id                 BIGSERIAL PRIMARY KEY,
    image_path         TEXT,
    translation_status VARCHAR(10) NOT NULL DEFAULT 'pending',
    created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS news_translations (
    id       BIGSERIAL PRIMARY KEY,
    news_id  BIGINT NOT NULL REFERENCES news(id) ON DELETE CASCADE,
    language VARCHAR(2) NOT NULL,
    title    VARCHAR(200) NOT NULL,
    subtitle VARCHAR(300),
    body     TEXT NOT NULL,
    UNIQUE (news_id, language)
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS admin_users (
    id            BIGSERIAL PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    name          TEXT NOT NULL,
    password_hash TEXT NOT NULL
)`); err != nil {
		return err
	}

	indexes := []string{
		// feed queries order by created_at DESC
		`CREATE INDEX IF NOT EXISTS idx_news_created_at ON news(created_at DESC)`,
		// translation lookup per news item
		`CREATE INDEX IF NOT EXISTS idx_news_translations_news_id ON news_translations(news_id)`,
		// reconciliation worker scans incomplete items
		`CREATE INDEX IF NOT EXISTS idx_news_translation_status ON news(translation_status) WHERE translation_status <> 'complete'`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	if _, err := db.Exec(`
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint
        WHERE conname = 'chk_translation_status'
    ) THEN
        ALTER TABLE news ADD CONSTRAINT chk_translation_status
        CHECK (translation_status IN ('pending', 'partial', 'complete'));
    END IF;
END $$;
`); err != nil {
		return err
	}

	return nil
}

// MigrateDown rolls back the schema.
// Use with caution: this deletes all data in the affected tables.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS news_translations CASCADE`,
		`DROP TABLE IF EXISTS news CASCADE`,
		`DROP TABLE IF EXISTS admin_users CASCADE`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
