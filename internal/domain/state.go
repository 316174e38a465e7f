package domain

import "fmt"

// TimerState is a point-in-time view of the cycle timer.
type TimerState struct {
	Mode             Mode
	WorkDurationSec  int
	BreakDurationSec int
	TotalTimeSec     int
	CurrentTimeSec   int
	IsRunning        bool
	CurrentCycle     int
	TargetCycles     int
}

// IsUrgent returns true during the last seconds of a running segment.
func (s TimerState) IsUrgent() bool {
	return s.IsRunning && s.CurrentTimeSec <= UrgentThresholdSec
}

// Progress returns the remaining fraction of the segment (1.0 to 0.0).
func (s TimerState) Progress() float64 {
	if s.TotalTimeSec <= 0 {
		return 0
	}
	p := float64(s.CurrentTimeSec) / float64(s.TotalTimeSec)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Clock formats the remaining time as MM:SS.
func (s TimerState) Clock() string {
	return FormatClock(s.CurrentTimeSec)
}

// FormatClock formats a number of seconds as MM:SS.
func FormatClock(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

// NotificationKind identifies which transition produced a notification.
type NotificationKind string

const (
	NotificationFocusDone    NotificationKind = "focus_done"
	NotificationBreakDone    NotificationKind = "break_done"
	NotificationPlanComplete NotificationKind = "plan_complete"
)

// Notification is emitted once per finished segment.
type Notification struct {
	Kind         NotificationKind
	Title        string
	Message      string
	FinishedMode Mode
	SegmentSec   int
	Cycle        int
	TargetCycles int
	SoundAlarm   bool
}
