package db

import "database/sql"

// MigrateUp creates the articles table and its indexes.
// All statements are idempotent so the init-db command can run repeatedly.
//
// The url column carries the uniqueness constraint that makes persistence
// idempotent: a second insert for the same URL fails with a unique violation
// which the repository reports as a duplicate, never as data loss.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    id               SERIAL PRIMARY KEY,
    url              TEXT NOT NULL UNIQUE,
    title            TEXT NOT NULL,
    content          TEXT NOT NULL DEFAULT '',
    author           TEXT,
    subtitle         TEXT,
    image_url        TEXT,
    published_at     TIMESTAMPTZ,
    scraped_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
    tags             JSONB,
    related_articles JSONB,
    word_count       INTEGER,
    reading_time_min INTEGER
)`); err != nil {
		return err
	}

	indexes := []string{
		// ORDER BY published_at DESC drives the read API listing
		`CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles (published_at DESC)`,
	}
	for _, stmt := range indexes {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	// pg_trgm speeds up the ILIKE title filter; ignore failures when the
	// extension is unavailable or the role lacks permission.
	_, _ = db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)
	_, _ = db.Exec(`CREATE INDEX IF NOT EXISTS idx_articles_title_gin ON articles USING gin(title gin_trgm_ops)`)

	return nil
}
