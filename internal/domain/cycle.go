package domain

import "fmt"

// Mode is the kind of segment the timer is counting down.
type Mode string

const (
	ModeWork  Mode = "WORK"
	ModeBreak Mode = "BREAK"
)

// Label returns a human-readable label.
func (m Mode) Label() string {
	switch m {
	case ModeWork:
		return "Focus"
	case ModeBreak:
		return "Break"
	default:
		return "Unknown"
	}
}

// Configuration bounds, in minutes for durations.
const (
	MinWorkMinutes  = 1
	MaxWorkMinutes  = 120
	MinBreakMinutes = 1
	MaxBreakMinutes = 60
	MinTargetCycles = 1
	MaxTargetCycles = 20

	// UrgentThresholdSec is the remaining time at which a running segment turns urgent.
	UrgentThresholdSec = 5
)

// CycleConfig holds the user-configurable durations and plan length.
type CycleConfig struct {
	WorkMinutes  int
	BreakMinutes int
	TargetCycles int
}

// DefaultCycleConfig returns the standard 25/5 x4 plan.
func DefaultCycleConfig() CycleConfig {
	return CycleConfig{
		WorkMinutes:  25,
		BreakMinutes: 5,
		TargetCycles: 4,
	}
}

// Validate checks every field against its bounds.
func (c CycleConfig) Validate() error {
	if err := ValidateWorkMinutes(c.WorkMinutes); err != nil {
		return err
	}
	if err := ValidateBreakMinutes(c.BreakMinutes); err != nil {
		return err
	}
	return ValidateTargetCycles(c.TargetCycles)
}

// ValidateWorkMinutes checks a focus duration.
func ValidateWorkMinutes(v int) error {
	return checkRange("work minutes", v, MinWorkMinutes, MaxWorkMinutes)
}

// ValidateBreakMinutes checks a break duration.
func ValidateBreakMinutes(v int) error {
	return checkRange("break minutes", v, MinBreakMinutes, MaxBreakMinutes)
}

// ValidateTargetCycles checks a plan length.
func ValidateTargetCycles(v int) error {
	return checkRange("target cycles", v, MinTargetCycles, MaxTargetCycles)
}

func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s %d not in [%d, %d]", ErrOutOfRange, field, v, lo, hi)
	}
	return nil
}

// ConfigureRequest carries optional changes. Nil fields are left alone.
type ConfigureRequest struct {
	WorkMinutes  *int
	BreakMinutes *int
	TargetCycles *int
}

// IsEmpty returns true when no field is set.
func (r ConfigureRequest) IsEmpty() bool {
	return r.WorkMinutes == nil && r.BreakMinutes == nil && r.TargetCycles == nil
}

// CycleTimer is the work/break state machine. It is driven from a single
// goroutine and does no I/O.
type CycleTimer struct {
	state TimerState
}

// NewCycleTimer creates a paused timer at the start of the first focus segment.
func NewCycleTimer(cfg CycleConfig) (*CycleTimer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &CycleTimer{
		state: TimerState{
			Mode:             ModeWork,
			WorkDurationSec:  cfg.WorkMinutes * 60,
			BreakDurationSec: cfg.BreakMinutes * 60,
			CurrentCycle:     1,
			TargetCycles:     cfg.TargetCycles,
		},
	}
	t.reseed()
	return t, nil
}

// Snapshot returns a copy of the current state.
func (t *CycleTimer) Snapshot() TimerState {
	return t.state
}

// Config returns the configured durations and plan length.
func (t *CycleTimer) Config() CycleConfig {
	return CycleConfig{
		WorkMinutes:  t.state.WorkDurationSec / 60,
		BreakMinutes: t.state.BreakDurationSec / 60,
		TargetCycles: t.state.TargetCycles,
	}
}

// Tick advances a running timer by one second. It returns the notification
// produced when the segment expires, nil otherwise.
func (t *CycleTimer) Tick() *Notification {
	if !t.state.IsRunning {
		return nil
	}
	if t.state.CurrentTimeSec > 0 {
		t.state.CurrentTimeSec--
	}
	if t.state.CurrentTimeSec > 0 {
		return nil
	}
	n := t.FinishCycle()
	return &n
}

// FinishCycle moves to the next segment and describes the transition.
func (t *CycleTimer) FinishCycle() Notification {
	s := &t.state
	n := Notification{
		FinishedMode: s.Mode,
		SegmentSec:   s.TotalTimeSec,
		Cycle:        s.CurrentCycle,
		TargetCycles: s.TargetCycles,
		SoundAlarm:   true,
	}

	switch {
	case s.Mode == ModeWork:
		n.Kind = NotificationFocusDone
		n.Title = "Focus complete"
		n.Message = fmt.Sprintf("That was focus round %d of %d!\nTime to relax and grab some water.", s.CurrentCycle, s.TargetCycles)
		s.Mode = ModeBreak
		s.IsRunning = true
	case s.CurrentCycle >= s.TargetCycles:
		n.Kind = NotificationPlanComplete
		n.Title = "Congratulations!"
		n.Message = "You're becoming a better you!\nToday's focus plan is complete."
		s.Mode = ModeWork
		s.CurrentCycle = 1
		s.IsRunning = false
	default:
		n.Kind = NotificationBreakDone
		n.Title = "Ready to go"
		n.Message = "Break's over, fully recharged!\nGet ready for the next focus round."
		s.Mode = ModeWork
		s.CurrentCycle++
		s.IsRunning = true
	}

	t.reseed()
	return n
}

// Toggle starts a paused timer or pauses a running one.
func (t *CycleTimer) Toggle() {
	t.state.IsRunning = !t.state.IsRunning
}

// Reset pauses the timer and refills the current segment.
func (t *CycleTimer) Reset() {
	t.state.IsRunning = false
	t.reseed()
}

// Configure applies the requested changes. All fields are validated before
// anything is applied. Changing the duration of the active mode resets the
// running segment; changing the plan length restarts it at cycle 1.
func (t *CycleTimer) Configure(req ConfigureRequest) error {
	if req.WorkMinutes != nil {
		if err := ValidateWorkMinutes(*req.WorkMinutes); err != nil {
			return err
		}
	}
	if req.BreakMinutes != nil {
		if err := ValidateBreakMinutes(*req.BreakMinutes); err != nil {
			return err
		}
	}
	if req.TargetCycles != nil {
		if err := ValidateTargetCycles(*req.TargetCycles); err != nil {
			return err
		}
	}

	resetActive := false
	if req.WorkMinutes != nil {
		t.state.WorkDurationSec = *req.WorkMinutes * 60
		resetActive = resetActive || t.state.Mode == ModeWork
	}
	if req.BreakMinutes != nil {
		t.state.BreakDurationSec = *req.BreakMinutes * 60
		resetActive = resetActive || t.state.Mode == ModeBreak
	}
	if req.TargetCycles != nil {
		t.state.TargetCycles = *req.TargetCycles
		t.state.CurrentCycle = 1
	}
	if resetActive {
		t.Reset()
	}
	return nil
}

// reseed sets the segment length from the current mode and fills it.
func (t *CycleTimer) reseed() {
	if t.state.Mode == ModeBreak {
		t.state.TotalTimeSec = t.state.BreakDurationSec
	} else {
		t.state.TotalTimeSec = t.state.WorkDurationSec
	}
	t.state.CurrentTimeSec = t.state.TotalTimeSec
}
