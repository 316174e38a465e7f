package tui

import (
	"context"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/xvierd/doro/internal/domain"
	"github.com/xvierd/doro/internal/ports"
	"github.com/xvierd/doro/internal/theme"
)

// Runner owns the bubbletea program that draws the orb.
type Runner struct {
	orb     Orb
	logger  *log.Logger
	options []tea.ProgramOption

	mu      sync.RWMutex
	program *tea.Program
	wg      sync.WaitGroup
}

// NewRunner creates a runner for the given orb. Extra program options are
// appended to the defaults (alt screen and all-motion mouse).
func NewRunner(orb Orb, logger *log.Logger, opts ...tea.ProgramOption) *Runner {
	return &Runner{
		orb:     orb,
		logger:  logger,
		options: opts,
	}
}

// Run starts the orb and blocks until the user quits or ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	options := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}, r.options...)

	r.mu.Lock()
	r.program = tea.NewProgram(NewModel(ctx, r.orb, r.logger), options...)
	r.mu.Unlock()

	// Handle context cancellation
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		<-ctx.Done()
		r.Stop()
	}()

	r.logger.Info("orb started")
	_, err := r.program.Run()

	// The alarm must not outlive the window.
	r.orb.Acknowledge()
	cancel()
	r.wg.Wait()

	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	r.logger.Info("orb stopped")
	return nil
}

// Stop asks the program to quit.
func (r *Runner) Stop() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.program != nil {
		r.program.Quit()
	}
}

// RunOrb is a convenience function to run the orb directly.
func RunOrb(ctx context.Context, orb Orb, logger *log.Logger) error {
	return NewRunner(orb, logger).Run(ctx)
}

// ShowStatus displays the persisted settings and today's stats without
// starting interactive mode.
func ShowStatus(w io.Writer, settings *ports.Settings, stats *domain.DailyStats) {
	cycle := settings.Cycle
	fmt.Fprintln(w, "🍅 Doro")
	fmt.Fprintf(w, "   Plan: %d x %d min focus / %d min break\n", cycle.TargetCycles, cycle.WorkMinutes, cycle.BreakMinutes)
	fmt.Fprintf(w, "   Theme: %s\n", theme.Lookup(settings.Theme).Name)
	fmt.Fprintf(w, "   Font: %s\n", theme.LookupFont(settings.FontFamily))
	fmt.Fprintf(w, "   Alarm: %s\n", domain.AlarmName(settings.CustomMP3Path))

	if stats == nil {
		return
	}
	fmt.Fprintf(w, "\n📊 Today's Stats:\n")
	fmt.Fprintf(w, "   Focus Segments: %d\n", stats.FocusSegments)
	fmt.Fprintf(w, "   Breaks Taken: %d\n", stats.BreaksTaken)
	fmt.Fprintf(w, "   Plans Completed: %d\n", stats.PlansCompleted)
	fmt.Fprintf(w, "   Total Focus Time: %s\n", stats.FocusTime)
}
