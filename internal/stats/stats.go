// Package stats tracks per-entity usage counts in a small SQLite database
// next to the configuration tree.
package stats

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS usage (
	entity_id TEXT PRIMARY KEY,
	uses      INTEGER NOT NULL DEFAULT 0,
	last_used TEXT
);`

// Recorder persists usage counters. Safe for use from the UI goroutine; the
// database serializes everything else.
type Recorder struct {
	db *sql.DB
}

// Open initializes the database at baseDir/usage.db, creating the schema if
// needed. The baseDir parameter lets tests use t.TempDir().
func Open(baseDir string) (*Recorder, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create stats directory: %w", err)
	}

	dbPath := filepath.Join(baseDir, "usage.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open stats database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create usage table: %w", err)
	}

	return &Recorder{db: db}, nil
}

// Close closes the underlying database.
func (r *Recorder) Close() error {
	return r.db.Close()
}

// RecordUse increments the usage counter for an entity.
func (r *Recorder) RecordUse(entityID string) error {
	_, err := r.db.Exec(`
		INSERT INTO usage (entity_id, uses, last_used) VALUES (?, 1, ?)
		ON CONFLICT(entity_id) DO UPDATE SET uses = uses + 1, last_used = excluded.last_used`,
		entityID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to record use: %w", err)
	}
	return nil
}

// Count returns how often an entity was used. Unknown entities count zero.
func (r *Recorder) Count(entityID string) (int, error) {
	var uses int
	err := r.db.QueryRow(`SELECT uses FROM usage WHERE entity_id = ?`, entityID).Scan(&uses)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query usage: %w", err)
	}
	return uses, nil
}

// Forget drops the counter for an entity, used when the entity is deleted.
func (r *Recorder) Forget(entityID string) error {
	if _, err := r.db.Exec(`DELETE FROM usage WHERE entity_id = ?`, entityID); err != nil {
		return fmt.Errorf("failed to forget usage: %w", err)
	}
	return nil
}
