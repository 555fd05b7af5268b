package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id           TEXT PRIMARY KEY,
    title        TEXT NOT NULL,
    description  TEXT,
    location     TEXT NOT NULL,
    category     TEXT NOT NULL DEFAULT 'others' CHECK (category IN ('electronics', 'documents', 'accessories', 'others')),
    image_url    TEXT,
    finder_name  TEXT NOT NULL,
    finder_email TEXT NOT NULL,
    finder_phone TEXT,
    status       TEXT NOT NULL DEFAULT 'found' CHECK (status IN ('found', 'pending', 'claimed')),
    claimed_by   TEXT,
    claimed_at   DATETIME,
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_items_status ON items(status);
CREATE INDEX IF NOT EXISTS idx_items_finder_email ON items(finder_email);

CREATE TABLE IF NOT EXISTS item_status_history (
    id         INTEGER PRIMARY KEY,
    item_id    TEXT NOT NULL REFERENCES items(id),
    old_status TEXT NOT NULL,
    new_status TEXT NOT NULL,
    changed_by TEXT NOT NULL,
    notes      TEXT,
    changed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_history_item ON item_status_history(item_id, changed_at DESC);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
