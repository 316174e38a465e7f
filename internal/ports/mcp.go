package ports

import (
	"context"

	"github.com/xvierd/doro/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// Settings is the persisted orb configuration as seen from outside the
// running orb.
type Settings struct {
	Cycle         domain.CycleConfig
	Theme         string
	FontFamily    string
	CustomMP3Path string
}

// SettingsProvider provides settings and history to the MCP server and
// the CLI. This is a driven port (implemented by services layer).
type SettingsProvider interface {
	// GetSettings returns the persisted settings.
	GetSettings(ctx context.Context) (*Settings, error)

	// Configure validates and persists new cycle settings.
	Configure(ctx context.Context, req domain.ConfigureRequest) (*Settings, error)

	// SetTheme persists the theme by name.
	SetTheme(ctx context.Context, name string) (*Settings, error)

	// SetFont persists the digit font family.
	SetFont(ctx context.Context, name string) (*Settings, error)

	// SetAlarmSource persists the custom alarm file; empty selects the
	// built-in tone.
	SetAlarmSource(ctx context.Context, path string) (*Settings, error)

	// TodayStats returns today's aggregated history.
	TodayStats(ctx context.Context) (*domain.DailyStats, error)

	// RecentCycles returns the most recent finished segments.
	RecentCycles(ctx context.Context, limit int) ([]*domain.CycleEvent, error)
}
