// Package ports defines the interfaces (driven and driving ports)
// for the Doro application following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/xvierd/doro/internal/domain"
)

// HistoryRepository defines the interface for cycle history persistence.
// This is a driven port (implemented by adapters).
type HistoryRepository interface {
	// Save persists a finished segment.
	Save(ctx context.Context, event *domain.CycleEvent) error

	// FindByID retrieves an event by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.CycleEvent, error)

	// FindRecent retrieves events finished at or after since, newest first.
	// A limit of zero or less returns every match.
	FindRecent(ctx context.Context, since time.Time, limit int) ([]*domain.CycleEvent, error)

	// GetDailyStats returns aggregated statistics for a specific date.
	GetDailyStats(ctx context.Context, date time.Time) (*domain.DailyStats, error)
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// History provides access to cycle history.
	History() HistoryRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
