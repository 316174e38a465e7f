// Package services implements the application use cases of the orb.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/xvierd/doro/internal/domain"
	"github.com/xvierd/doro/internal/ports"
	"github.com/xvierd/doro/internal/theme"
)

// OrbService drives the cycle state machine and its side effects: the
// alarm, desktop notifications and the history log.
type OrbService struct {
	timer       *domain.CycleTimer
	settings    *SettingsService
	alarm       ports.Alarm
	notifier    ports.Notifier
	gitDetector ports.GitDetector
	logger      *log.Logger
	now         func() time.Time
}

// NewOrbService creates the orb from the persisted settings.
func NewOrbService(settings *SettingsService, alarm ports.Alarm, notifier ports.Notifier, gitDetector ports.GitDetector, logger *log.Logger) (*OrbService, error) {
	settings.mu.Lock()
	cc := settings.cfg.CycleConfig()
	settings.mu.Unlock()

	timer, err := domain.NewCycleTimer(cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create cycle timer: %w", err)
	}

	return &OrbService{
		timer:       timer,
		settings:    settings,
		alarm:       alarm,
		notifier:    notifier,
		gitDetector: gitDetector,
		logger:      logger,
		now:         time.Now,
	}, nil
}

// Tick advances the timer by one second. When a segment finishes the alarm
// starts, the desktop is notified, the segment is recorded and the
// notification is returned for display.
func (s *OrbService) Tick(ctx context.Context) *domain.Notification {
	n := s.timer.Tick()
	if n == nil {
		return nil
	}
	s.finished(ctx, *n)
	return n
}

func (s *OrbService) finished(ctx context.Context, n domain.Notification) {
	s.logger.Info("segment finished",
		"kind", n.Kind,
		"mode", n.FinishedMode,
		"cycle", n.Cycle,
		"target", n.TargetCycles)

	if n.SoundAlarm && s.alarm != nil {
		s.alarm.Play(s.settings.AlarmPath())
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyCycle(n); err != nil {
			s.logger.Warn("desktop notification failed", "err", err)
		}
	}

	event := domain.NewCycleEvent(n, s.now())
	if event.IsFocus() && s.gitDetector != nil {
		if info, err := s.gitDetector.Detect(ctx, ""); err == nil && info != nil {
			event.GitBranch = info.Branch
		}
	}
	if s.settings.storage != nil {
		if err := s.settings.storage.History().Save(ctx, event); err != nil {
			s.logger.Warn("failed to record segment", "id", event.ID, "err", err)
		}
	}
}

// Acknowledge dismisses a finish notification and silences the alarm.
func (s *OrbService) Acknowledge() {
	if s.alarm != nil {
		s.alarm.Stop()
	}
}

// Toggle starts or pauses the countdown.
func (s *OrbService) Toggle() {
	s.timer.Toggle()
	s.logger.Debug("toggled", "running", s.timer.Snapshot().IsRunning)
}

// Reset restarts the current segment, paused.
func (s *OrbService) Reset() {
	s.timer.Reset()
	s.logger.Debug("reset", "mode", s.timer.Snapshot().Mode)
}

// Configure persists new durations or cycle target, then applies them to
// the running timer. Nothing changes when saving fails.
func (s *OrbService) Configure(ctx context.Context, req domain.ConfigureRequest) error {
	next := *s.timer
	if err := next.Configure(req); err != nil {
		return err
	}
	if _, err := s.settings.Configure(ctx, req); err != nil {
		return err
	}
	*s.timer = next
	cc := next.Config()
	s.logger.Info("configured",
		"work", cc.WorkMinutes,
		"break", cc.BreakMinutes,
		"cycles", cc.TargetCycles)
	return nil
}

// SetTheme switches and persists the theme.
func (s *OrbService) SetTheme(ctx context.Context, name string) error {
	_, err := s.settings.SetTheme(ctx, name)
	return err
}

// SetFont switches and persists the digit font family.
func (s *OrbService) SetFont(ctx context.Context, name string) error {
	_, err := s.settings.SetFont(ctx, name)
	return err
}

// SetAlarmSource selects a custom alarm file, or the built-in tone for "".
func (s *OrbService) SetAlarmSource(ctx context.Context, path string) error {
	_, err := s.settings.SetAlarmSource(ctx, path)
	return err
}

// Snapshot returns the current timer state.
func (s *OrbService) Snapshot() domain.TimerState {
	return s.timer.Snapshot()
}

// Settings returns the persisted settings.
func (s *OrbService) Settings() ports.Settings {
	settings, _ := s.settings.GetSettings(context.Background())
	return *settings
}

// Theme returns the active theme.
func (s *OrbService) Theme() theme.Theme {
	return theme.Lookup(s.settings.ThemeName())
}

// TodayStats returns today's aggregated history.
func (s *OrbService) TodayStats(ctx context.Context) (*domain.DailyStats, error) {
	return s.settings.TodayStats(ctx)
}
