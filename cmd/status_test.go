package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/xvierd/doro/internal/domain"
	"github.com/xvierd/doro/internal/ports"
)

func TestStatusCmd_Structure(t *testing.T) {
	if statusCmd.Use != "status" {
		t.Errorf("statusCmd.Use = %q, want %q", statusCmd.Use, "status")
	}

	if statusCmd.Short != "Show settings and today's stats" {
		t.Errorf("statusCmd.Short = %q", statusCmd.Short)
	}
}

// TestOutputStatusJSON tests the JSON output structure
func TestOutputStatusJSON(t *testing.T) {
	settings := &ports.Settings{
		Cycle:         domain.CycleConfig{WorkMinutes: 50, BreakMinutes: 10, TargetCycles: 3},
		Theme:         "Cyberpunk",
		FontFamily:    "Slim",
		CustomMP3Path: "/music/bell.mp3",
	}
	stats := &domain.DailyStats{
		Date:           time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local),
		FocusSegments:  5,
		BreaksTaken:    3,
		PlansCompleted: 1,
		FocusTime:      2*time.Hour + 5*time.Minute,
	}

	var buf bytes.Buffer
	if err := outputStatusJSON(&buf, settings, stats); err != nil {
		t.Fatalf("outputStatusJSON() error = %v", err)
	}

	output := buf.String()
	for _, field := range []string{
		"work_minutes",
		"Cyberpunk",
		"/music/bell.mp3",
		"2026-03-10",
		"plans_completed",
		"2h5m0s",
	} {
		if !strings.Contains(output, field) {
			t.Errorf("output should contain %q", field)
		}
	}

	buf.Reset()
	if err := outputStatusJSON(&buf, settings, nil); err != nil {
		t.Fatalf("outputStatusJSON() error = %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := out["today_stats"]; ok {
		t.Error("nil stats should be omitted")
	}
}

func TestPrintHistory(t *testing.T) {
	at := time.Date(2026, 3, 10, 9, 25, 0, 0, time.Local)
	focus := domain.NewCycleEvent(domain.Notification{
		Kind:         domain.NotificationFocusDone,
		FinishedMode: domain.ModeWork,
		Cycle:        1,
		TargetCycles: 4,
		SegmentSec:   1500,
	}, at)
	focus.GitBranch = "main"
	plan := domain.NewCycleEvent(domain.Notification{
		Kind:         domain.NotificationPlanComplete,
		FinishedMode: domain.ModeBreak,
		Cycle:        4,
		TargetCycles: 4,
		SegmentSec:   300,
	}, at.Add(time.Hour))

	var buf bytes.Buffer
	printHistory(&buf, []*domain.CycleEvent{plan, focus})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "plan complete") || !strings.Contains(lines[0], "5m") {
		t.Errorf("plan line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Focus") || !strings.Contains(lines[1], "(main)") || !strings.Contains(lines[1], "2026-03-10 09:25") {
		t.Errorf("focus line = %q", lines[1])
	}
}
