package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// busyTimeoutMS bounds how long a write waits on a locked database.
const busyTimeoutMS = 10_000

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	slot       TEXT NOT NULL,
	key        TEXT NOT NULL,
	data       BLOB NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (slot, key)
);`

// SQLiteStore implements Store on a single sqlite database. Both slots
// share one table keyed by (slot, key).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and
// applies the snapshot schema. WAL and a busy timeout are set so a
// concurrent reader does not fail a pipeline write.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, recordDirPermission); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeoutMS),
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(snapshotSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Put upserts the record for (slot, key).
func (s *SQLiteStore) Put(ctx context.Context, slot Slot, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (slot, key, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (slot, key) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at`,
		string(slot), key, data, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

// Get reads the record for (slot, key), mapping no rows to ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, slot Slot, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM snapshots WHERE slot = ? AND key = ?`,
		string(slot), key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query record: %w", err)
	}
	return data, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
