// Package tui provides the terminal orb using the Bubbletea framework.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/xvierd/doro/internal/dock"
	"github.com/xvierd/doro/internal/domain"
	"github.com/xvierd/doro/internal/ports"
	"github.com/xvierd/doro/internal/theme"
)

// Tick intervals.
const (
	logicInterval = time.Second
	frameInterval = 30 * time.Millisecond
	dockInterval  = 50 * time.Millisecond
)

// Orb is the application surface the terminal orb drives.
type Orb interface {
	Tick(ctx context.Context) *domain.Notification
	Acknowledge()
	Toggle()
	Reset()
	Configure(ctx context.Context, req domain.ConfigureRequest) error
	SetTheme(ctx context.Context, name string) error
	SetFont(ctx context.Context, name string) error
	SetAlarmSource(ctx context.Context, path string) error
	Snapshot() domain.TimerState
	Settings() ports.Settings
	Theme() theme.Theme
}

// logicTickMsg advances the countdown.
type logicTickMsg time.Time

// frameTickMsg steps the dock animation and repaints.
type frameTickMsg time.Time

// dockTickMsg checks the frame against the screen edges.
type dockTickMsg time.Time

var orbSize = dock.Size{W: orbWidth, H: orbHeight}

// Model represents the TUI state.
type Model struct {
	ctx    context.Context
	orb    Orb
	logger *log.Logger
	now    func() time.Time

	screen  dock.Size
	frame   dock.Point
	placed  bool
	dockPos dock.Position
	anim    *dock.Animator

	dragging bool
	dragOff  dock.Point
	hover    bool
	hidden   bool

	menu     *contextMenu
	dialog   dialog
	finished []domain.Notification

	art map[string][]string
}

// NewModel creates a new TUI model.
func NewModel(ctx context.Context, orb Orb, logger *log.Logger) Model {
	return Model{
		ctx:    ctx,
		orb:    orb,
		logger: logger,
		now:    time.Now,
		anim:   dock.NewAnimator(frameInterval),
		art:    make(map[string][]string),
	}
}

// Init starts the three ticks.
func (m Model) Init() tea.Cmd {
	return tea.Batch(logicTick(), frameTick(), dockTick())
}

func logicTick() tea.Cmd {
	return tea.Tick(logicInterval, func(t time.Time) tea.Msg {
		return logicTickMsg(t)
	})
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

func dockTick() tea.Cmd {
	return tea.Tick(dockInterval, func(t time.Time) tea.Msg {
		return dockTickMsg(t)
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.screen = dock.Size{W: msg.Width, H: msg.Height}
		if !m.placed {
			m.frame = dock.Point{X: (msg.Width - orbWidth) / 2, Y: (msg.Height - orbHeight) / 2}
			m.placed = true
		}
		m.frame = dock.Clamp(m.frame, orbSize, m.screen)
		return m, nil

	case logicTickMsg:
		if n := m.orb.Tick(m.ctx); n != nil {
			m.finished = append(m.finished, *n)
		}
		return m, logicTick()

	case frameTickMsg:
		if m.anim.Active() {
			m.frame = m.anim.Step()
		}
		return m, frameTick()

	case dockTickMsg:
		m.evaluateDock()
		return m, dockTick()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m *Model) evaluateDock() {
	if m.dragging || m.hidden || m.screen.W == 0 {
		return
	}
	d := dock.Evaluate(dock.Rect{Point: m.frame, Size: orbSize}, m.screen, m.dockPos)
	if d.Position != m.dockPos {
		m.logger.Debug("dock changed", "from", m.dockPos, "to", d.Position)
		m.dockPos = d.Position
	}
	if d.Position.IsDocked() && d.Animate {
		m.anim.Start(m.frame, d.Target)
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.orb.Acknowledge()
	return m, tea.Quit
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	// Finish notifications are modal and shown oldest first.
	if len(m.finished) > 0 {
		fd := &finishDialog{note: m.finished[0]}
		if closed, _ := fd.handleKey(msg); closed {
			m.acknowledge()
		}
		return m, nil
	}

	if m.dialog != nil {
		closed, cmd := m.dialog.handleKey(msg)
		if closed {
			m.dialog = nil
		}
		return m, cmd
	}

	if m.menu != nil {
		switch msg.String() {
		case "up", "k":
			m.menu.up()
		case "down", "j":
			m.menu.down()
		case "enter", " ":
			return m.runAction(m.menu.selected())
		case "esc", "m":
			m.menu = nil
		case "q":
			return m.quit()
		}
		return m, nil
	}

	switch msg.String() {
	case " ":
		m.orb.Toggle()
	case "r":
		m.orb.Reset()
	case "m":
		m.menu = newContextMenu(m.orb.Snapshot(), m.orb.Settings(), m.hidden, dock.Point{X: m.frame.X + 2, Y: m.frame.Y + 2})
	case "t":
		return m.runAction(actionTheme)
	case "f":
		return m.runAction(actionFont)
	case "a":
		return m.runAction(actionAlarm)
	case "w":
		return m.runAction(actionWork)
	case "b":
		return m.runAction(actionBreak)
	case "c":
		return m.runAction(actionCycles)
	case "h":
		return m.runAction(actionHide)
	case "q":
		return m.quit()
	}
	return m, nil
}

// acknowledge dismisses the oldest finish notification. The alarm keeps
// ringing while later notifications are still waiting.
func (m *Model) acknowledge() {
	m.finished = m.finished[1:]
	if len(m.finished) == 0 {
		m.finished = nil
		m.orb.Acknowledge()
	}
}

func (m Model) runAction(action menuAction) (tea.Model, tea.Cmd) {
	m.menu = nil
	settings := m.orb.Settings()

	switch action {
	case actionFont:
		m.dialog = newPickerDialog("Digit font", theme.Fonts(), settings.FontFamily, func(name string) error {
			return m.orb.SetFont(m.ctx, name)
		})
	case actionTheme:
		m.dialog = newPickerDialog("Theme", theme.Names(), settings.Theme, func(name string) error {
			return m.orb.SetTheme(m.ctx, name)
		})
	case actionAlarm:
		m.dialog = newPathDialog(settings.CustomMP3Path, func(path string) error {
			return m.orb.SetAlarmSource(m.ctx, path)
		})
	case actionCycles:
		m.dialog = newIntDialog(
			fmt.Sprintf("Target cycles (%d-%d)", domain.MinTargetCycles, domain.MaxTargetCycles),
			settings.Cycle.TargetCycles, domain.ValidateTargetCycles,
			func(v int) error {
				return m.orb.Configure(m.ctx, domain.ConfigureRequest{TargetCycles: &v})
			})
	case actionWork:
		m.dialog = newIntDialog(
			fmt.Sprintf("Focus minutes (%d-%d)", domain.MinWorkMinutes, domain.MaxWorkMinutes),
			settings.Cycle.WorkMinutes, domain.ValidateWorkMinutes,
			func(v int) error {
				return m.orb.Configure(m.ctx, domain.ConfigureRequest{WorkMinutes: &v})
			})
	case actionBreak:
		m.dialog = newIntDialog(
			fmt.Sprintf("Break minutes (%d-%d)", domain.MinBreakMinutes, domain.MaxBreakMinutes),
			settings.Cycle.BreakMinutes, domain.ValidateBreakMinutes,
			func(v int) error {
				return m.orb.Configure(m.ctx, domain.ConfigureRequest{BreakMinutes: &v})
			})
	case actionReset:
		m.orb.Reset()
	case actionHide:
		m.hidden = !m.hidden
		m.dragging = false
		m.hover = false
	case actionQuit:
		return m.quit()
	}

	return m, nil
}

// hit reports whether a point relative to the frame touches the visible orb.
func (m Model) hit(rel dock.Point) bool {
	if m.dockPos.IsDocked() {
		o := capsuleOrigin(m.dockPos)
		return rel.X >= o.X && rel.X < o.X+capsuleWidth && rel.Y >= o.Y && rel.Y < o.Y+capsuleHeight
	}
	if rel.X < 0 || rel.Y < 0 || rel.X >= orbWidth || rel.Y >= orbHeight {
		return false
	}
	_, inside, _ := ringCell(rel.X, rel.Y)
	return inside
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.dialog != nil || (m.hidden && m.menu == nil) {
		return m, nil
	}
	p := dock.Point{X: msg.X, Y: msg.Y}
	press := msg.Action == tea.MouseActionPress

	if len(m.finished) > 0 {
		if press && msg.Button == tea.MouseButtonLeft {
			m.acknowledge()
		}
		return m, nil
	}

	if m.menu != nil {
		i := m.menu.itemAt(p, m.screen)
		switch {
		case press && msg.Button == tea.MouseButtonLeft:
			if i >= 0 && !m.menu.items[i].disabled {
				m.menu.cursor = i
				return m.runAction(m.menu.selected())
			}
			m.menu = nil
		case press && msg.Button == tea.MouseButtonRight:
			m.menu = newContextMenu(m.orb.Snapshot(), m.orb.Settings(), m.hidden, p)
		case msg.Action == tea.MouseActionMotion:
			if i >= 0 && !m.menu.items[i].disabled {
				m.menu.cursor = i
			}
		}
		return m, nil
	}

	rel := dock.Point{X: p.X - m.frame.X, Y: p.Y - m.frame.Y}

	switch {
	case press && msg.Button == tea.MouseButtonLeft:
		if !m.hit(rel) {
			return m, nil
		}
		if !m.dockPos.IsDocked() && onButton(rel) {
			m.orb.Toggle()
			return m, nil
		}
		m.dragging = true
		m.dragOff = rel
		m.anim.Cancel()
		m.dockPos = dock.None

	case press && msg.Button == tea.MouseButtonRight:
		m.menu = newContextMenu(m.orb.Snapshot(), m.orb.Settings(), m.hidden, p)

	case msg.Action == tea.MouseActionMotion:
		if m.dragging {
			m.frame = dock.Clamp(dock.Point{X: p.X - m.dragOff.X, Y: p.Y - m.dragOff.Y}, orbSize, m.screen)
			rel = dock.Point{X: p.X - m.frame.X, Y: p.Y - m.frame.Y}
		}
		m.hover = !m.dockPos.IsDocked() && m.hit(rel) && onButton(rel)

	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
	}

	return m, nil
}

// characterArt caches the art per theme.
func (m Model) characterArt(t theme.Theme) []string {
	if art, ok := m.art[t.Name]; ok {
		return art
	}
	art := theme.CharacterArt(t)
	m.art[t.Name] = art
	return art
}

// View renders the TUI.
func (m Model) View() string {
	if m.screen.W == 0 {
		return "Loading..."
	}
	if m.hidden && m.menu == nil && m.dialog == nil {
		return m.viewHidden()
	}

	t := m.orb.Theme()
	pal := paletteFor(t)
	c := newCanvas(m.screen.W, m.screen.H)

	help := "space start/pause · m menu · h hide · q quit"
	if m.hidden {
		help = "space start/pause · m menu · h show · q quit"
	}
	if n := len(m.finished); n > 1 {
		help = fmt.Sprintf("%d notifications · ", n) + help
	}
	c.text(0, m.screen.H-1, truncate(help, m.screen.W), "", "", false)

	if m.hidden {
		// Overlays opened while hidden sit over the status line instead of the orb.
		c.text(0, 0, truncate(m.statusLine(), m.screen.W), pal.text, "", false)
	} else {
		v := orbView{
			state: m.orb.Snapshot(),
			theme: t,
			font:  m.orb.Settings().FontFamily,
			hover: m.hover,
			now:   m.now(),
			dock:  m.dockPos,
		}
		if m.dockPos.IsDocked() {
			v.art = m.characterArt(t)
			drawCapsule(c, m.frame, v)
		} else {
			drawOrb(c, m.frame, v)
		}
	}

	if m.menu != nil {
		m.menu.draw(c, m.screen, pal)
	}
	if m.dialog != nil {
		m.dialog.draw(c, m.screen, pal)
	}
	if len(m.finished) > 0 {
		(&finishDialog{note: m.finished[0]}).draw(c, m.screen, pal)
	}

	return c.render()
}

// viewHidden is the single status line shown while the orb is hidden.
func (m Model) viewHidden() string {
	state := m.orb.Snapshot()
	t := m.orb.Theme()

	bar := progress.New(
		progress.WithGradient(t.Accent[0], t.Accent[1]),
		progress.WithWidth(20),
		progress.WithoutPercentage(),
	)

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent[0]))
	dim := lipgloss.NewStyle().Faint(true)

	status := "paused"
	if state.IsRunning {
		status = "running"
	}
	parts := []string{
		title.Render("doro"),
		fmt.Sprintf("%s %s", state.Mode.Label(), state.Clock()),
		bar.ViewAs(state.Progress()),
		fmt.Sprintf("round %d/%d", state.CurrentCycle, state.TargetCycles),
		status,
	}
	line := strings.Join(parts, "  ")
	if len(m.finished) > 0 {
		line += "  " + title.Render(m.finished[0].Title)
	}
	return line + "\n" + dim.Render("h show · space start/pause · q quit")
}

// statusLine is the unstyled summary shown while the orb is hidden.
func (m Model) statusLine() string {
	state := m.orb.Snapshot()
	status := "paused"
	if state.IsRunning {
		status = "running"
	}
	return fmt.Sprintf("doro  %s %s  round %d/%d  %s",
		state.Mode.Label(), state.Clock(), state.CurrentCycle, state.TargetCycles, status)
}
