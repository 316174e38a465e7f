package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xvierd/doro/internal/domain"
	"github.com/xvierd/doro/internal/ports"
)

// historyRepository implements ports.HistoryRepository using SQLite.
type historyRepository struct {
	db *sql.DB
}

// newHistoryRepository creates a new history repository.
func newHistoryRepository(db *sql.DB) ports.HistoryRepository {
	return &historyRepository{db: db}
}

const eventColumns = `id, kind, finished_mode, cycle, target_cycles, duration_sec, git_branch, finished_at`

// Save persists a finished segment.
func (r *historyRepository) Save(ctx context.Context, event *domain.CycleEvent) error {
	query := `
		INSERT INTO cycle_events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		string(event.Kind),
		string(event.FinishedMode),
		event.Cycle,
		event.TargetCycles,
		int64(event.Duration/time.Second),
		event.GitBranch,
		event.FinishedAt.UTC(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("cycle event %s already recorded: %w", event.ID, err)
		}
		return fmt.Errorf("failed to save cycle event: %w", err)
	}

	return nil
}

// FindByID retrieves an event by its unique identifier.
func (r *historyRepository) FindByID(ctx context.Context, id string) (*domain.CycleEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM cycle_events WHERE id = ?`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find cycle event: %w", err)
	}
	return event, nil
}

// FindRecent retrieves events finished at or after since, newest first.
func (r *historyRepository) FindRecent(ctx context.Context, since time.Time, limit int) ([]*domain.CycleEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM cycle_events
		WHERE finished_at >= ?
		ORDER BY finished_at DESC
	`
	args := []any{since.UTC()}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent cycle events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*domain.CycleEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cycle event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cycle events: %w", err)
	}

	return events, nil
}

// GetDailyStats returns aggregated statistics for a specific date.
func (r *historyRepository) GetDailyStats(ctx context.Context, date time.Time) (*domain.DailyStats, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	query := `
		SELECT
			COUNT(CASE WHEN finished_mode = ? THEN 1 END) as focus_segments,
			COUNT(CASE WHEN finished_mode = ? THEN 1 END) as breaks,
			COUNT(CASE WHEN kind = ? THEN 1 END) as plans,
			COALESCE(SUM(CASE WHEN finished_mode = ? THEN duration_sec END), 0) as focus_sec
		FROM cycle_events
		WHERE finished_at >= ? AND finished_at < ?
	`

	stats := &domain.DailyStats{
		Date: startOfDay,
	}

	var focusSec int64
	err := r.db.QueryRowContext(ctx, query,
		string(domain.ModeWork),
		string(domain.ModeBreak),
		string(domain.NotificationPlanComplete),
		string(domain.ModeWork),
		startOfDay.UTC(),
		endOfDay.UTC(),
	).Scan(
		&stats.FocusSegments,
		&stats.BreaksTaken,
		&stats.PlansCompleted,
		&focusSec,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}

	stats.FocusTime = time.Duration(focusSec) * time.Second

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.CycleEvent, error) {
	var (
		event       domain.CycleEvent
		kind, mode  string
		durationSec int64
		branch      sql.NullString
	)

	if err := row.Scan(
		&event.ID,
		&kind,
		&mode,
		&event.Cycle,
		&event.TargetCycles,
		&durationSec,
		&branch,
		&event.FinishedAt,
	); err != nil {
		return nil, err
	}

	event.Kind = domain.NotificationKind(kind)
	event.FinishedMode = domain.Mode(mode)
	event.Duration = time.Duration(durationSec) * time.Second
	event.GitBranch = branch.String
	return &event, nil
}
