package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xvierd/doro/internal/adapters/tui"
	"github.com/xvierd/doro/internal/domain"
	"github.com/xvierd/doro/internal/ports"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show settings and today's stats",
	Long:  `Display the persisted orb settings and the focus segments, breaks and plans finished today.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		settings, err := app.settings.GetSettings(ctx)
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		stats, err := app.settings.TodayStats(ctx)
		if err != nil {
			return fmt.Errorf("failed to get today's stats: %w", err)
		}

		if jsonOutput {
			return outputStatusJSON(cmd.OutOrStdout(), settings, stats)
		}

		tui.ShowStatus(cmd.OutOrStdout(), settings, stats)
		return nil
	},
}

// outputStatusJSON outputs the status in JSON format. Stats are omitted
// when nil.
func outputStatusJSON(w io.Writer, settings *ports.Settings, stats *domain.DailyStats) error {
	result := map[string]interface{}{
		"settings": map[string]interface{}{
			"work_minutes":    settings.Cycle.WorkMinutes,
			"break_minutes":   settings.Cycle.BreakMinutes,
			"target_cycles":   settings.Cycle.TargetCycles,
			"theme":           settings.Theme,
			"font_family":     settings.FontFamily,
			"custom_mp3_path": settings.CustomMP3Path,
		},
	}
	if stats != nil {
		result["today_stats"] = map[string]interface{}{
			"date":            stats.Date.Format("2006-01-02"),
			"focus_segments":  stats.FocusSegments,
			"breaks_taken":    stats.BreaksTaken,
			"plans_completed": stats.PlansCompleted,
			"focus_time":      stats.FocusTime.String(),
		}
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}
