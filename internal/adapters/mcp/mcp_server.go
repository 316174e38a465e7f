// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/doro/internal/domain"
	"github.com/xvierd/doro/internal/ports"
	"github.com/xvierd/doro/internal/theme"
)

const defaultRecentLimit = 10

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server   *server.MCPServer
	settings ports.SettingsProvider
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(settings ports.SettingsProvider, version string) *Server {
	s := &Server{
		settings: settings,
	}

	s.server = server.NewMCPServer(
		"doro",
		version,
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_settings",
			mcp.WithDescription("Get the persisted orb settings: durations, target cycles, theme, digit font and alarm sound"),
		),
		s.handleGetSettings,
	)

	configureTool := mcp.NewTool(
		"configure_timer",
		mcp.WithDescription("Change focus minutes, break minutes or target cycles. Values outside the allowed range are rejected, never clamped. A running orb picks the change up on its next start."),
		mcp.WithNumber(
			"work_minutes",
			mcp.Description(fmt.Sprintf("Focus minutes (%d-%d)", domain.MinWorkMinutes, domain.MaxWorkMinutes)),
		),
		mcp.WithNumber(
			"break_minutes",
			mcp.Description(fmt.Sprintf("Break minutes (%d-%d)", domain.MinBreakMinutes, domain.MaxBreakMinutes)),
		),
		mcp.WithNumber(
			"target_cycles",
			mcp.Description(fmt.Sprintf("Focus segments per plan (%d-%d)", domain.MinTargetCycles, domain.MaxTargetCycles)),
		),
	)
	s.server.AddTool(configureTool, s.handleConfigureTimer)

	s.server.AddTool(
		mcp.NewTool(
			"list_themes",
			mcp.WithDescription("List the available color themes and digit fonts"),
		),
		s.handleListThemes,
	)

	setThemeTool := mcp.NewTool(
		"set_theme",
		mcp.WithDescription("Select a color theme by name"),
		mcp.WithString(
			"name",
			mcp.Required(),
			mcp.Description("Theme name, see list_themes"),
			mcp.Enum(theme.Names()...),
		),
	)
	s.server.AddTool(setThemeTool, s.handleSetTheme)

	setFontTool := mcp.NewTool(
		"set_font",
		mcp.WithDescription("Select the digit font family"),
		mcp.WithString(
			"name",
			mcp.Required(),
			mcp.Description("Font family"),
			mcp.Enum(theme.Fonts()...),
		),
	)
	s.server.AddTool(setFontTool, s.handleSetFont)

	setAlarmTool := mcp.NewTool(
		"set_alarm_sound",
		mcp.WithDescription("Set the alarm to an audio file, or restore the built-in tone with an empty path"),
		mcp.WithString(
			"path",
			mcp.Description("Path to a "+strings.Join(domain.AlarmExtensions, ", ")+" file; empty for the built-in tone"),
		),
	)
	s.server.AddTool(setAlarmTool, s.handleSetAlarmSound)

	s.server.AddTool(
		mcp.NewTool(
			"get_today_stats",
			mcp.WithDescription("Get today's focus segments, breaks, completed plans and focus time"),
		),
		s.handleGetTodayStats,
	)

	recentTool := mcp.NewTool(
		"get_recent_cycles",
		mcp.WithDescription("Get the most recent finished segments"),
		mcp.WithNumber(
			"limit",
			mcp.Description("Maximum number of segments (default: 10)"),
		),
	)
	s.server.AddTool(recentTool, s.handleGetRecentCycles)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

func jsonResult(v any, what string) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", what, err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func settingsJSON(st *ports.Settings) map[string]interface{} {
	return map[string]interface{}{
		"work_minutes":    st.Cycle.WorkMinutes,
		"break_minutes":   st.Cycle.BreakMinutes,
		"target_cycles":   st.Cycle.TargetCycles,
		"theme":           st.Theme,
		"font_family":     st.FontFamily,
		"custom_mp3_path": st.CustomMP3Path,
		"alarm":           domain.AlarmName(st.CustomMP3Path),
	}
}

// optionalInt reads a whole-number argument. JSON numbers arrive as
// float64; numeric strings are accepted too.
func optionalInt(request mcp.CallToolRequest, name string) (*int, error) {
	raw, ok := request.GetArguments()[name]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("%s must be a whole number", name)
		}
		n := int(v)
		return &n, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%s must be a whole number", name)
		}
		return &n, nil
	default:
		return nil, fmt.Errorf("%s must be a number", name)
	}
}

// handleGetSettings handles the get_settings tool.
func (s *Server) handleGetSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return jsonResult(settingsJSON(st), "settings")
}

// handleConfigureTimer handles the configure_timer tool.
func (s *Server) handleConfigureTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var req domain.ConfigureRequest
	var err error
	if req.WorkMinutes, err = optionalInt(request, "work_minutes"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if req.BreakMinutes, err = optionalInt(request, "break_minutes"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if req.TargetCycles, err = optionalInt(request, "target_cycles"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if req.IsEmpty() {
		return mcp.NewToolResultError("at least one of work_minutes, break_minutes or target_cycles is required"), nil
	}

	st, err := s.settings.Configure(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to configure timer: %v", err)), nil
	}
	return jsonResult(settingsJSON(st), "settings")
}

// handleListThemes handles the list_themes tool.
func (s *Server) handleListThemes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	themes := make([]map[string]interface{}, 0, len(theme.All()))
	for _, t := range theme.All() {
		themes = append(themes, map[string]interface{}{
			"name":       t.Name,
			"accent":     t.Accent,
			"background": t.Background,
			"text":       t.Text,
			"dark":       t.IsDark(),
			"current":    t.Name == st.Theme,
		})
	}

	result := map[string]interface{}{
		"themes": themes,
		"fonts":  theme.Fonts(),
	}
	return jsonResult(result, "themes")
}

// handleSetTheme handles the set_theme tool.
func (s *Server) handleSetTheme(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required: " + err.Error()), nil
	}

	st, err := s.settings.SetTheme(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set theme: %v", err)), nil
	}
	return jsonResult(settingsJSON(st), "settings")
}

// handleSetFont handles the set_font tool.
func (s *Server) handleSetFont(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required: " + err.Error()), nil
	}

	st, err := s.settings.SetFont(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set font: %v", err)), nil
	}
	return jsonResult(settingsJSON(st), "settings")
}

// handleSetAlarmSound handles the set_alarm_sound tool.
func (s *Server) handleSetAlarmSound(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")

	st, err := s.settings.SetAlarmSource(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set alarm sound: %v", err)), nil
	}
	return jsonResult(settingsJSON(st), "settings")
}

// handleGetTodayStats handles the get_today_stats tool.
func (s *Server) handleGetTodayStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.settings.TodayStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's stats: %w", err)
	}

	result := map[string]interface{}{
		"date":            stats.Date.Format("2006-01-02"),
		"focus_segments":  stats.FocusSegments,
		"breaks_taken":    stats.BreaksTaken,
		"plans_completed": stats.PlansCompleted,
		"focus_time":      stats.FocusTime.String(),
	}
	return jsonResult(result, "stats")
}

// handleGetRecentCycles handles the get_recent_cycles tool.
func (s *Server) handleGetRecentCycles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(request.GetFloat("limit", defaultRecentLimit))
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	events, err := s.settings.RecentCycles(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent cycles: %w", err)
	}

	cycles := make([]map[string]interface{}, 0, len(events))
	for _, ev := range events {
		cycles = append(cycles, map[string]interface{}{
			"id":            ev.ID,
			"kind":          string(ev.Kind),
			"finished_mode": string(ev.FinishedMode),
			"cycle":         ev.Cycle,
			"target_cycles": ev.TargetCycles,
			"duration":      ev.Duration.String(),
			"git_branch":    ev.GitBranch,
			"finished_at":   ev.FinishedAt.Format("2006-01-02T15:04:05"),
		})
	}
	return jsonResult(map[string]interface{}{"cycles": cycles}, "cycles")
}
