package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/xvierd/doro/internal/config"
	"github.com/xvierd/doro/internal/domain"
	"github.com/xvierd/doro/internal/ports"
	"github.com/xvierd/doro/internal/theme"
)

// ConfigSaver persists the configuration.
type ConfigSaver interface {
	Save(cfg *config.Config) error
}

// ConfigReloader is implemented by savers whose backing store can change
// underneath the service, such as a file edited by another doro process.
type ConfigReloader interface {
	Reload(cfg *config.Config) (*config.Config, error)
}

// defaultRecentLimit caps history listings when no limit is given.
const defaultRecentLimit = 10

// SettingsService implements the ports.SettingsProvider interface over
// the config file and the history store.
type SettingsService struct {
	mu      sync.Mutex
	cfg     *config.Config
	saver   ConfigSaver
	storage ports.Storage
	now     func() time.Time
}

// Ensure SettingsService implements ports.SettingsProvider.
var _ ports.SettingsProvider = (*SettingsService)(nil)

// NewSettingsService creates a new settings service.
func NewSettingsService(cfg *config.Config, saver ConfigSaver, storage ports.Storage) *SettingsService {
	return &SettingsService{
		cfg:     cfg,
		saver:   saver,
		storage: storage,
		now:     time.Now,
	}
}

// GetSettings implements ports.SettingsProvider.
func (s *SettingsService) GetSettings(ctx context.Context) (*ports.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

// Configure implements ports.SettingsProvider. The request is merged over
// the stored values and rejected as a whole if any field is out of range.
func (s *SettingsService) Configure(ctx context.Context, req domain.ConfigureRequest) (*ports.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.update(func(cfg *config.Config) error {
		cc := cfg.CycleConfig()
		if req.WorkMinutes != nil {
			cc.WorkMinutes = *req.WorkMinutes
		}
		if req.BreakMinutes != nil {
			cc.BreakMinutes = *req.BreakMinutes
		}
		if req.TargetCycles != nil {
			cc.TargetCycles = *req.TargetCycles
		}
		if err := cc.Validate(); err != nil {
			return err
		}
		cfg.ApplyCycleConfig(cc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

// SetTheme implements ports.SettingsProvider.
func (s *SettingsService) SetTheme(ctx context.Context, name string) (*ports.Settings, error) {
	t, ok := theme.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTheme, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.update(func(cfg *config.Config) error {
		cfg.Theme = t.Name
		return nil
	}); err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

// SetFont implements ports.SettingsProvider.
func (s *SettingsService) SetFont(ctx context.Context, name string) (*ports.Settings, error) {
	if !theme.IsFont(name) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFont, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.update(func(cfg *config.Config) error {
		cfg.FontFamily = theme.LookupFont(name)
		return nil
	}); err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

// SetAlarmSource implements ports.SettingsProvider.
func (s *SettingsService) SetAlarmSource(ctx context.Context, path string) (*ports.Settings, error) {
	path, err := expandPath(strings.TrimSpace(path))
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateAlarmSource(path); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.update(func(cfg *config.Config) error {
		cfg.CustomMP3Path = path
		return nil
	}); err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

// TodayStats implements ports.SettingsProvider.
func (s *SettingsService) TodayStats(ctx context.Context) (*domain.DailyStats, error) {
	stats, err := s.storage.History().GetDailyStats(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to load today's stats: %w", err)
	}
	return stats, nil
}

// RecentCycles implements ports.SettingsProvider.
func (s *SettingsService) RecentCycles(ctx context.Context, limit int) ([]*domain.CycleEvent, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	events, err := s.storage.History().FindRecent(ctx, time.Time{}, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent cycles: %w", err)
	}
	return events, nil
}

// Cycle returns one recorded segment by id.
func (s *SettingsService) Cycle(ctx context.Context, id string) (*domain.CycleEvent, error) {
	event, err := s.storage.History().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load cycle %s: %w", id, err)
	}
	return event, nil
}

// AlarmPath returns the configured custom alarm file.
func (s *SettingsService) AlarmPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.CustomMP3Path
}

// ThemeName returns the configured theme name.
func (s *SettingsService) ThemeName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Theme
}

// update applies change to the latest stored config and saves it. The
// in-memory config is replaced only after a successful save, so keys
// changed by another process since the last load are kept. Callers hold mu.
func (s *SettingsService) update(change func(cfg *config.Config) error) error {
	next := *s.cfg
	if r, ok := s.saver.(ConfigReloader); ok {
		fresh, err := r.Reload(s.cfg)
		if err != nil {
			return fmt.Errorf("failed to reload config: %w", err)
		}
		next = *fresh
	}
	if err := change(&next); err != nil {
		return err
	}
	if s.saver != nil {
		if err := s.saver.Save(&next); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
	}
	*s.cfg = next
	return nil
}

func (s *SettingsService) snapshot() *ports.Settings {
	return &ports.Settings{
		Cycle:         s.cfg.CycleConfig(),
		Theme:         s.cfg.Theme,
		FontFamily:    s.cfg.FontFamily,
		CustomMP3Path: s.cfg.CustomMP3Path,
	}
}

// expandPath resolves a leading ~ to the home directory.
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
