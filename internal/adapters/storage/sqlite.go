// Package storage provides SQLite implementations of the storage ports.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/xvierd/doro/internal/ports"
	"modernc.org/sqlite"
)

// sqliteStorage implements the ports.Storage interface using SQLite.
type sqliteStorage struct {
	db          *sql.DB
	historyRepo ports.HistoryRepository
}

// Ensure sqliteStorage implements ports.Storage.
var _ ports.Storage = (*sqliteStorage)(nil)

// New creates a new SQLite storage instance.
func New(dbPath string) (ports.Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to ":memory:" is its own database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	storage := &sqliteStorage{
		db:          db,
		historyRepo: newHistoryRepository(db),
	}

	if err := storage.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage, nil
}

// NewMemory creates a new in-memory SQLite storage instance for testing.
func NewMemory() (ports.Storage, error) {
	return New(":memory:")
}

// History returns the cycle history repository.
func (s *sqliteStorage) History() ports.HistoryRepository {
	return s.historyRepo
}

// Close closes the database connection.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *sqliteStorage) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cycle_events (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		finished_mode TEXT NOT NULL,
		cycle INTEGER NOT NULL,
		target_cycles INTEGER NOT NULL,
		duration_sec INTEGER NOT NULL,
		git_branch TEXT,
		finished_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_cycle_events_finished ON cycle_events(finished_at);
	CREATE INDEX IF NOT EXISTS idx_cycle_events_mode ON cycle_events(finished_mode);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	sqliteErr, ok := err.(*sqlite.Error)
	return ok && (sqliteErr.Code() == 2067 || sqliteErr.Code() == 1555) // SQLITE_CONSTRAINT_UNIQUE, _PRIMARYKEY
}
