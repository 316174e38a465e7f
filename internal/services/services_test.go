package services

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/doro/internal/adapters/storage"
	"github.com/xvierd/doro/internal/config"
	"github.com/xvierd/doro/internal/domain"
	"github.com/xvierd/doro/internal/ports"
)

type fakeAlarm struct {
	played []string
	stops  int
}

func (a *fakeAlarm) Play(path string) { a.played = append(a.played, path) }
func (a *fakeAlarm) Stop()            { a.stops++ }

type fakeNotifier struct {
	notes []domain.Notification
	err   error
}

func (n *fakeNotifier) NotifyCycle(note domain.Notification) error {
	n.notes = append(n.notes, note)
	return n.err
}

type fakeGit struct {
	branch string
}

func (g *fakeGit) Detect(ctx context.Context, workingDir string) (*ports.GitInfo, error) {
	if g.branch == "" {
		return nil, errors.New("not a git repository")
	}
	return &ports.GitInfo{Branch: g.branch}, nil
}

type recordingSaver struct {
	saves int
	err   error
}

func (r *recordingSaver) Save(cfg *config.Config) error {
	if r.err != nil {
		return r.err
	}
	r.saves++
	return nil
}

func setupTestStorage(t *testing.T) ports.Storage {
	t.Helper()
	store, err := storage.NewMemory()
	require.NoError(t, err, "Failed to create test storage")
	t.Cleanup(func() { _ = store.Close() })
	return store
}

type orbFixture struct {
	orb      *OrbService
	settings *SettingsService
	cfg      *config.Config
	saver    *recordingSaver
	alarm    *fakeAlarm
	notifier *fakeNotifier
	store    ports.Storage
}

func newOrbFixture(t *testing.T, work, brk, cycles int) *orbFixture {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.WorkDuration = work
	cfg.BreakDuration = brk
	cfg.TargetCycles = cycles

	f := &orbFixture{
		cfg:      cfg,
		saver:    &recordingSaver{},
		alarm:    &fakeAlarm{},
		notifier: &fakeNotifier{},
		store:    setupTestStorage(t),
	}
	f.settings = NewSettingsService(cfg, f.saver, f.store)

	orb, err := NewOrbService(f.settings, f.alarm, f.notifier, &fakeGit{branch: "feature/orb"}, log.New(io.Discard))
	require.NoError(t, err)
	f.orb = orb
	return f
}

func intPtr(v int) *int { return &v }

func TestOrbService_TickWhilePaused(t *testing.T) {
	f := newOrbFixture(t, 1, 1, 2)

	assert.Nil(t, f.orb.Tick(context.Background()))
	assert.Equal(t, 60, f.orb.Snapshot().CurrentTimeSec)
	assert.Empty(t, f.alarm.played)
}

func TestOrbService_FinishTriggersSideEffects(t *testing.T) {
	f := newOrbFixture(t, 1, 1, 2)
	f.cfg.CustomMP3Path = "/music/bell.mp3"
	ctx := context.Background()

	f.orb.Toggle()
	var got *domain.Notification
	for i := 0; i < 60; i++ {
		if n := f.orb.Tick(ctx); n != nil {
			require.Nil(t, got, "only one notification per segment")
			got = n
		}
	}

	require.NotNil(t, got)
	assert.Equal(t, domain.NotificationFocusDone, got.Kind)
	assert.Equal(t, []string{"/music/bell.mp3"}, f.alarm.played)
	require.Len(t, f.notifier.notes, 1)
	assert.Equal(t, got.Title, f.notifier.notes[0].Title)

	snap := f.orb.Snapshot()
	assert.Equal(t, domain.ModeBreak, snap.Mode)
	assert.True(t, snap.IsRunning)

	events, err := f.store.History().FindRecent(ctx, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.ModeWork, events[0].FinishedMode)
	assert.Equal(t, "feature/orb", events[0].GitBranch)
	assert.Equal(t, time.Minute, events[0].Duration)

	f.orb.Acknowledge()
	assert.Equal(t, 1, f.alarm.stops)
}

func TestOrbService_PlanCompleteStats(t *testing.T) {
	f := newOrbFixture(t, 1, 1, 1)
	ctx := context.Background()

	f.orb.Toggle()
	var kinds []domain.NotificationKind
	for i := 0; i < 120; i++ {
		if n := f.orb.Tick(ctx); n != nil {
			kinds = append(kinds, n.Kind)
		}
	}
	assert.Equal(t, []domain.NotificationKind{domain.NotificationFocusDone, domain.NotificationPlanComplete}, kinds)
	assert.False(t, f.orb.Snapshot().IsRunning)

	stats, err := f.orb.TodayStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FocusSegments)
	assert.Equal(t, 1, stats.BreaksTaken)
	assert.Equal(t, 1, stats.PlansCompleted)
	assert.Equal(t, time.Minute, stats.FocusTime)
}

func TestOrbService_NotifierErrorIsNotFatal(t *testing.T) {
	f := newOrbFixture(t, 1, 1, 2)
	f.notifier.err = errors.New("no dbus")

	f.orb.Toggle()
	var got *domain.Notification
	for i := 0; i < 60; i++ {
		if n := f.orb.Tick(context.Background()); n != nil {
			got = n
		}
	}
	assert.NotNil(t, got)
	assert.Len(t, f.alarm.played, 1)
}

func TestOrbService_Configure(t *testing.T) {
	f := newOrbFixture(t, 25, 5, 4)
	ctx := context.Background()

	require.NoError(t, f.orb.Configure(ctx, domain.ConfigureRequest{WorkMinutes: intPtr(50)}))
	assert.Equal(t, 50, f.cfg.WorkDuration)
	assert.Equal(t, 1, f.saver.saves)
	assert.Equal(t, 3000, f.orb.Snapshot().CurrentTimeSec)

	err := f.orb.Configure(ctx, domain.ConfigureRequest{WorkMinutes: intPtr(121)})
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
	assert.Equal(t, 50, f.cfg.WorkDuration)
	assert.Equal(t, 1, f.saver.saves)

	// A failed save leaves both the timer and the config untouched.
	f.orb.Toggle()
	f.orb.Tick(ctx)
	before := f.orb.Snapshot()
	f.saver.err = errors.New("disk full")
	err = f.orb.Configure(ctx, domain.ConfigureRequest{WorkMinutes: intPtr(10), TargetCycles: intPtr(8)})
	assert.Error(t, err)
	assert.Equal(t, before, f.orb.Snapshot())
	assert.Equal(t, 50, f.cfg.WorkDuration)
	assert.Equal(t, 4, f.cfg.TargetCycles)
	assert.Equal(t, 50, f.orb.Settings().Cycle.WorkMinutes)
}

func TestOrbService_ThemeFontAlarm(t *testing.T) {
	f := newOrbFixture(t, 25, 5, 4)
	ctx := context.Background()

	require.NoError(t, f.orb.SetTheme(ctx, "Cyberpunk"))
	assert.Equal(t, "Cyberpunk", f.orb.Theme().Name)

	assert.ErrorIs(t, f.orb.SetTheme(ctx, "Nope"), domain.ErrUnknownTheme)
	assert.Equal(t, "Cyberpunk", f.orb.Theme().Name)

	require.NoError(t, f.orb.SetFont(ctx, "Slim"))
	assert.Equal(t, "Slim", f.orb.Settings().FontFamily)
	assert.ErrorIs(t, f.orb.SetFont(ctx, "Wingdings"), domain.ErrUnknownFont)

	bell := filepath.Join(t.TempDir(), "bell.wav")
	require.NoError(t, os.WriteFile(bell, []byte("RIFF"), 0o644))
	require.NoError(t, f.orb.SetAlarmSource(ctx, bell))
	assert.Equal(t, bell, f.orb.Settings().CustomMP3Path)

	assert.ErrorIs(t, f.orb.SetAlarmSource(ctx, "/missing.mp3"), domain.ErrAlarmSource)
	assert.Equal(t, bell, f.orb.Settings().CustomMP3Path)

	require.NoError(t, f.orb.SetAlarmSource(ctx, ""))
	assert.Empty(t, f.orb.Settings().CustomMP3Path)
}

func TestSettingsService_Configure(t *testing.T) {
	cfg := config.DefaultConfig()
	saver := &recordingSaver{}
	svc := NewSettingsService(cfg, saver, setupTestStorage(t))
	ctx := context.Background()

	tests := []struct {
		name    string
		req     domain.ConfigureRequest
		want    domain.CycleConfig
		wantErr bool
	}{
		{"work only", domain.ConfigureRequest{WorkMinutes: intPtr(30)}, domain.CycleConfig{WorkMinutes: 30, BreakMinutes: 5, TargetCycles: 4}, false},
		{"all fields", domain.ConfigureRequest{WorkMinutes: intPtr(45), BreakMinutes: intPtr(15), TargetCycles: intPtr(6)}, domain.CycleConfig{WorkMinutes: 45, BreakMinutes: 15, TargetCycles: 6}, false},
		{"break too long", domain.ConfigureRequest{BreakMinutes: intPtr(61)}, domain.CycleConfig{WorkMinutes: 45, BreakMinutes: 15, TargetCycles: 6}, true},
		{"one bad field rejects all", domain.ConfigureRequest{WorkMinutes: intPtr(20), TargetCycles: intPtr(0)}, domain.CycleConfig{WorkMinutes: 45, BreakMinutes: 15, TargetCycles: 6}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Configure(ctx, tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrOutOfRange)
			} else {
				assert.NoError(t, err)
			}
			got, _ := svc.GetSettings(ctx)
			assert.Equal(t, tt.want, got.Cycle)
		})
	}
	assert.Equal(t, 2, saver.saves)
}

func TestSettingsService_SaveFailureRollsBack(t *testing.T) {
	cfg := config.DefaultConfig()
	svc := NewSettingsService(cfg, &recordingSaver{err: errors.New("read-only")}, setupTestStorage(t))
	ctx := context.Background()

	_, err := svc.SetTheme(ctx, "Cyberpunk")
	assert.Error(t, err)
	assert.Equal(t, "Doro", cfg.Theme)

	_, err = svc.Configure(ctx, domain.ConfigureRequest{WorkMinutes: intPtr(30)})
	assert.Error(t, err)
	assert.Equal(t, 25, cfg.WorkDuration)
}

func TestSettingsService_KeepsExternalChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, config.SaveTo(config.DefaultConfig(), path))
	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)

	orb, err := NewOrbService(NewSettingsService(cfg, config.FileStore{}, setupTestStorage(t)),
		&fakeAlarm{}, &fakeNotifier{}, &fakeGit{}, log.New(io.Discard))
	require.NoError(t, err)
	ctx := context.Background()

	// Another doro process edits the file while the orb is open.
	other, err := config.LoadFrom(path)
	require.NoError(t, err)
	cli := NewSettingsService(other, config.FileStore{}, setupTestStorage(t))
	_, err = cli.Configure(ctx, domain.ConfigureRequest{BreakMinutes: intPtr(15)})
	require.NoError(t, err)
	_, err = cli.SetFont(ctx, "Slim")
	require.NoError(t, err)

	require.NoError(t, orb.SetTheme(ctx, "Cyberpunk"))
	require.NoError(t, orb.Configure(ctx, domain.ConfigureRequest{WorkMinutes: intPtr(40)}))

	stored, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "Cyberpunk", stored.Theme)
	assert.Equal(t, 40, stored.WorkDuration)
	assert.Equal(t, 15, stored.BreakDuration, "break change from the other process was overwritten")
	assert.Equal(t, "Slim", stored.FontFamily, "font change from the other process was overwritten")
	assert.Equal(t, "Slim", orb.Settings().FontFamily)
}

func TestSettingsService_RecentCycles(t *testing.T) {
	store := setupTestStorage(t)
	svc := NewSettingsService(config.DefaultConfig(), nil, store)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		ev := domain.NewCycleEvent(domain.Notification{
			Kind:         domain.NotificationFocusDone,
			FinishedMode: domain.ModeWork,
			Cycle:        1,
			TargetCycles: 4,
			SegmentSec:   60,
		}, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.History().Save(ctx, ev))
	}

	events, err := svc.RecentCycles(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, events, defaultRecentLimit)

	events, err = svc.RecentCycles(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestSettingsService_Cycle(t *testing.T) {
	store := setupTestStorage(t)
	svc := NewSettingsService(config.DefaultConfig(), nil, store)
	ctx := context.Background()

	ev := domain.NewCycleEvent(domain.Notification{
		Kind:         domain.NotificationFocusDone,
		FinishedMode: domain.ModeWork,
		Cycle:        2,
		TargetCycles: 4,
		SegmentSec:   1500,
	}, time.Now())
	ev.GitBranch = "main"
	require.NoError(t, store.History().Save(ctx, ev))

	got, err := svc.Cycle(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev.ID, got.ID)
	assert.Equal(t, 2, got.Cycle)
	assert.Equal(t, "main", got.GitBranch)
	assert.Equal(t, 25*time.Minute, got.Duration)

	_, err = svc.Cycle(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/alarm.mp3")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "alarm.mp3"), got)

	got, err = expandPath("/abs/alarm.mp3")
	require.NoError(t, err)
	assert.Equal(t, "/abs/alarm.mp3", got)
}
