// Package backend creates the snapshot repository from configuration.
// It isolates the backend choice so binaries do not switch on backend
// strings themselves.
package backend

import (
	"fmt"
	"log/slog"

	"spendera/internal/config"
	"spendera/internal/ledger"
	"spendera/internal/storage"
)

// Type represents the kind of snapshot backend.
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is supported.
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result holds the repository and its optional cleanup function.
type Result struct {
	Repo    ledger.SnapshotRepository
	Cleanup CleanupFunc
}

// Open creates the snapshot repository named by the config.
func Open(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch t {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite repository: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Repo: repo, Cleanup: repo.Close}, nil
	default:
		logger.Info("Initialized memory backend")
		return &Result{Repo: ledger.NewMemoryRepository()}, nil
	}
}
