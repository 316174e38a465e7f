package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/xvierd/doro/internal/domain"
)

func newEvent(kind domain.NotificationKind, mode domain.Mode, cycle int, seconds int, at time.Time) *domain.CycleEvent {
	return domain.NewCycleEvent(domain.Notification{
		Kind:         kind,
		FinishedMode: mode,
		Cycle:        cycle,
		TargetCycles: 4,
		SegmentSec:   seconds,
	}, at)
}

func TestNewMemory(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	if storage == nil {
		t.Error("NewMemory() returned nil storage")
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doro.db")
	storage, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	// Migrate is idempotent.
	if err := storage.Migrate(); err != nil {
		t.Errorf("Migrate() error = %v", err)
	}
}

func TestHistoryRepository_SaveAndFind(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.History()
	at := time.Date(2026, 3, 10, 9, 25, 0, 0, time.UTC)

	event := newEvent(domain.NotificationFocusDone, domain.ModeWork, 2, 1500, at)
	event.GitBranch = "main"

	t.Run("save", func(t *testing.T) {
		if err := repo.Save(ctx, event); err != nil {
			t.Errorf("Save() error = %v", err)
		}
	})

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, event.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.Kind != domain.NotificationFocusDone {
			t.Errorf("Kind = %v, want %v", found.Kind, domain.NotificationFocusDone)
		}
		if found.FinishedMode != domain.ModeWork {
			t.Errorf("FinishedMode = %v, want %v", found.FinishedMode, domain.ModeWork)
		}
		if found.Cycle != 2 || found.TargetCycles != 4 {
			t.Errorf("Cycle = %d/%d, want 2/4", found.Cycle, found.TargetCycles)
		}
		if found.Duration != 25*time.Minute {
			t.Errorf("Duration = %v, want 25m", found.Duration)
		}
		if found.GitBranch != "main" {
			t.Errorf("GitBranch = %q, want main", found.GitBranch)
		}
		if !found.FinishedAt.Equal(at) {
			t.Errorf("FinishedAt = %v, want %v", found.FinishedAt, at)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		if err := repo.Save(ctx, event); err == nil {
			t.Error("Save() duplicate should fail")
		}
	})

	t.Run("find non-existent", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "non-existent-id")
		if !errors.Is(err, domain.ErrEventNotFound) {
			t.Errorf("FindByID() error = %v, want ErrEventNotFound", err)
		}
	})
}

func TestHistoryRepository_FindRecent(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.History()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		ev := newEvent(domain.NotificationFocusDone, domain.ModeWork, i+1, 60, base.Add(time.Duration(i)*time.Hour))
		if err := repo.Save(ctx, ev); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	tests := []struct {
		name      string
		since     time.Time
		limit     int
		wantCount int
		wantFirst int
	}{
		{"all", base.Add(-time.Hour), 0, 5, 5},
		{"limited", base.Add(-time.Hour), 2, 2, 5},
		{"since", base.Add(3 * time.Hour), 0, 2, 5},
		{"none", base.Add(24 * time.Hour), 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := repo.FindRecent(ctx, tt.since, tt.limit)
			if err != nil {
				t.Fatalf("FindRecent() error = %v", err)
			}
			if len(events) != tt.wantCount {
				t.Fatalf("FindRecent() returned %d events, want %d", len(events), tt.wantCount)
			}
			if tt.wantCount > 0 && events[0].Cycle != tt.wantFirst {
				t.Errorf("first event cycle = %d, want %d", events[0].Cycle, tt.wantFirst)
			}
		})
	}
}

func TestHistoryRepository_GetDailyStats(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.History()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	events := []*domain.CycleEvent{
		newEvent(domain.NotificationFocusDone, domain.ModeWork, 1, 1500, day.Add(9*time.Hour)),
		newEvent(domain.NotificationBreakDone, domain.ModeBreak, 1, 300, day.Add(9*time.Hour+30*time.Minute)),
		newEvent(domain.NotificationFocusDone, domain.ModeWork, 2, 1500, day.Add(10*time.Hour)),
		newEvent(domain.NotificationPlanComplete, domain.ModeBreak, 2, 300, day.Add(10*time.Hour+30*time.Minute)),
		// Next day, not counted.
		newEvent(domain.NotificationFocusDone, domain.ModeWork, 1, 1500, day.Add(30*time.Hour)),
	}
	for _, ev := range events {
		if err := repo.Save(ctx, ev); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	stats, err := repo.GetDailyStats(ctx, day.Add(12*time.Hour))
	if err != nil {
		t.Fatalf("GetDailyStats() error = %v", err)
	}
	if stats.FocusSegments != 2 {
		t.Errorf("FocusSegments = %d, want 2", stats.FocusSegments)
	}
	if stats.BreaksTaken != 2 {
		t.Errorf("BreaksTaken = %d, want 2", stats.BreaksTaken)
	}
	if stats.PlansCompleted != 1 {
		t.Errorf("PlansCompleted = %d, want 1", stats.PlansCompleted)
	}
	if stats.FocusTime != 50*time.Minute {
		t.Errorf("FocusTime = %v, want 50m", stats.FocusTime)
	}
	if !stats.Date.Equal(day) {
		t.Errorf("Date = %v, want %v", stats.Date, day)
	}
}
