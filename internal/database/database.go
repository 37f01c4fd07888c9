package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Connect opens the Postgres pool and makes sure the schema exists.
func Connect(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// CreateSchema creates the two application tables.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Players: one row per login.
-- password is nullable: players created through the increment endpoint
-- have no credentials until an explicit add.
CREATE TABLE IF NOT EXISTS players (
    login TEXT PRIMARY KEY,
    points INTEGER NOT NULL DEFAULT 0,
    military_flag INTEGER NOT NULL DEFAULT 0,
    password TEXT
);

-- Photos: append-only species-tagged uploads.
CREATE TABLE IF NOT EXISTS photos (
    id SERIAL PRIMARY KEY,
    login TEXT NOT NULL,
    location TEXT NOT NULL,
    species TEXT NOT NULL,
    image BYTEA NOT NULL,
    upload_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_photos_login ON photos(login);
CREATE INDEX IF NOT EXISTS idx_photos_species ON photos(species);
`
