// Package storage keeps the most recent snapshots in a local SQLite file so
// list commands can re-render without hitting the backend (--cached) and
// degrade to stale data when the backend is unreachable.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SnapshotCache is a small key/value store of JSON-encoded snapshots with a
// uniform TTL.
type SnapshotCache struct {
	db  *sql.DB
	ttl time.Duration
}

// Open opens (and if needed creates) the cache database at path.
func Open(path string, ttl time.Duration) (*SnapshotCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	cache := &SnapshotCache{db: db, ttl: ttl}
	if err := cache.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	return cache, nil
}

func (c *SnapshotCache) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			key        TEXT PRIMARY KEY,
			data       TEXT NOT NULL,            -- JSON snapshot
			fetched_at TEXT NOT NULL             -- RFC3339 UTC
		);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Put stores a snapshot under key, replacing any previous entry.
func (c *SnapshotCache) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO snapshots (key, data, fetched_at) VALUES (?, ?, ?)`,
		key, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Get loads the snapshot under key into v. It reports false when the key is
// absent or the entry has outlived the TTL; expired entries are removed.
func (c *SnapshotCache) Get(key string, v any) (bool, error) {
	var data, fetchedAt string
	err := c.db.QueryRow(
		`SELECT data, fetched_at FROM snapshots WHERE key = ?`, key,
	).Scan(&data, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	at, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil || time.Since(at) > c.ttl {
		_, _ = c.db.Exec(`DELETE FROM snapshots WHERE key = ?`, key)
		return false, nil
	}

	if err := json.Unmarshal([]byte(data), v); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached snapshot: %w", err)
	}
	return true, nil
}

// Close closes the underlying database.
func (c *SnapshotCache) Close() error {
	return c.db.Close()
}
