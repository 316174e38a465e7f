package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xvierd/doro/internal/domain"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "Show recently finished segments",
	Long: `List the most recently finished focus and break segments, newest first.
Pass a segment id (shown by --json) to see that segment alone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if len(args) == 1 {
			event, err := app.settings.Cycle(ctx, args[0])
			if err != nil {
				if errors.Is(err, domain.ErrEventNotFound) {
					return fmt.Errorf("no segment with id %s", args[0])
				}
				return err
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), cycleJSON(event))
			}
			printCycle(cmd.OutOrStdout(), event)
			return nil
		}

		events, err := app.settings.RecentCycles(ctx, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to get history: %w", err)
		}

		if jsonOutput {
			return outputHistoryJSON(cmd.OutOrStdout(), events)
		}
		printHistory(cmd.OutOrStdout(), events)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of segments to show")
}

func printHistory(w io.Writer, events []*domain.CycleEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No finished segments yet.")
		return
	}
	for _, ev := range events {
		icon := "🍅"
		if !ev.IsFocus() {
			icon = "☕"
		}
		line := fmt.Sprintf("%s %s  %-5s %d/%d  %s",
			icon, ev.FinishedAt.Local().Format("2006-01-02 15:04"),
			ev.FinishedMode.Label(), ev.Cycle, ev.TargetCycles, formatMinutes(ev.Duration))
		if ev.Kind == domain.NotificationPlanComplete {
			line += "  plan complete"
		}
		if ev.GitBranch != "" {
			line += "  (" + ev.GitBranch + ")"
		}
		fmt.Fprintln(w, line)
	}
}

// printCycle shows every recorded field of one segment.
func printCycle(w io.Writer, ev *domain.CycleEvent) {
	icon := "🍅"
	if !ev.IsFocus() {
		icon = "☕"
	}
	fmt.Fprintf(w, "%s %s segment, round %d/%d\n", icon, ev.FinishedMode.Label(), ev.Cycle, ev.TargetCycles)
	fmt.Fprintf(w, "   ID: %s\n", ev.ID)
	fmt.Fprintf(w, "   Finished: %s\n", ev.FinishedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "   Length: %s\n", formatMinutes(ev.Duration))
	if ev.GitBranch != "" {
		fmt.Fprintf(w, "   Branch: %s\n", ev.GitBranch)
	}
	if ev.Kind == domain.NotificationPlanComplete {
		fmt.Fprintln(w, "   Plan complete")
	}
}

func cycleJSON(ev *domain.CycleEvent) map[string]interface{} {
	return map[string]interface{}{
		"id":            ev.ID,
		"kind":          string(ev.Kind),
		"finished_mode": string(ev.FinishedMode),
		"cycle":         ev.Cycle,
		"target_cycles": ev.TargetCycles,
		"duration":      ev.Duration.String(),
		"git_branch":    ev.GitBranch,
		"finished_at":   ev.FinishedAt.Format("2006-01-02T15:04:05"),
	}
}

func outputHistoryJSON(w io.Writer, events []*domain.CycleEvent) error {
	cycles := make([]map[string]interface{}, 0, len(events))
	for _, ev := range events {
		cycles = append(cycles, cycleJSON(ev))
	}
	return writeJSON(w, cycles)
}

func writeJSON(w io.Writer, v interface{}) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}
