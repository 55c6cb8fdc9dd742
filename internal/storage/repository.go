// Package storage backs the ledger's snapshot slot with SQLite. The
// whole persisted state is one JSON blob under a single key, plus an
// independent key for the dark-mode preference; every save is a full
// overwrite of the blob.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"spendera/internal/ledger"

	_ "modernc.org/sqlite"
)

const (
	snapshotKey = "spendera_data"
	darkModeKey = "darkMode"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ ledger.SnapshotRepository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load reads and parses the snapshot slot. A missing row maps to
// ledger.ErrNotFound, unparseable JSON to ledger.ErrCorrupt; the store
// recovers from both by substituting defaults.
func (r *SQLiteRepository) Load(ctx context.Context) (ledger.Snapshot, error) {
	blob, err := r.get(ctx, snapshotKey)
	if err != nil {
		return ledger.Snapshot{}, err
	}

	var snap ledger.Snapshot
	if err := json.Unmarshal([]byte(blob), &snap); err != nil {
		return ledger.Snapshot{}, fmt.Errorf("%w: %v", ledger.ErrCorrupt, err)
	}
	return snap, nil
}

// Save overwrites the snapshot slot with the full state.
func (r *SQLiteRepository) Save(ctx context.Context, snap ledger.Snapshot) error {
	blob, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := r.put(ctx, snapshotKey, string(blob)); err != nil {
		return err
	}

	slog.DebugContext(ctx, "Snapshot saved",
		"transactions", len(snap.Transactions),
		"bytes", len(blob))
	return nil
}

// Erase removes the snapshot slot entirely, not just its contents.
func (r *SQLiteRepository) Erase(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, snapshotKey); err != nil {
		return fmt.Errorf("erase snapshot slot: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) LoadDarkMode(ctx context.Context) (bool, error) {
	blob, err := r.get(ctx, darkModeKey)
	if err != nil {
		return false, err
	}
	var enabled bool
	if err := json.Unmarshal([]byte(blob), &enabled); err != nil {
		return false, fmt.Errorf("%w: %v", ledger.ErrCorrupt, err)
	}
	return enabled, nil
}

func (r *SQLiteRepository) SaveDarkMode(ctx context.Context, enabled bool) error {
	blob, err := json.Marshal(enabled)
	if err != nil {
		return fmt.Errorf("marshal dark mode: %w", err)
	}
	return r.put(ctx, darkModeKey, string(blob))
}

func (r *SQLiteRepository) get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ledger.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read slot %s: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}
