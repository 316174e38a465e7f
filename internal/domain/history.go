package domain

import (
	"time"

	"github.com/google/uuid"
)

// CycleEvent records one finished segment.
type CycleEvent struct {
	ID           string
	Kind         NotificationKind
	FinishedMode Mode
	Cycle        int
	TargetCycles int
	Duration     time.Duration
	GitBranch    string
	FinishedAt   time.Time
}

// NewCycleEvent builds a history entry from a notification.
func NewCycleEvent(n Notification, at time.Time) *CycleEvent {
	return &CycleEvent{
		ID:           uuid.New().String(),
		Kind:         n.Kind,
		FinishedMode: n.FinishedMode,
		Cycle:        n.Cycle,
		TargetCycles: n.TargetCycles,
		Duration:     time.Duration(n.SegmentSec) * time.Second,
		FinishedAt:   at,
	}
}

// IsFocus returns true if the event closed a focus segment.
func (e *CycleEvent) IsFocus() bool {
	return e.FinishedMode == ModeWork
}

// DailyStats aggregates finished segments for a day.
type DailyStats struct {
	Date           time.Time
	FocusSegments  int
	BreaksTaken    int
	PlansCompleted int
	FocusTime      time.Duration
}
