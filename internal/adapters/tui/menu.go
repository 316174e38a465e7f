package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/doro/internal/dock"
	"github.com/xvierd/doro/internal/domain"
	"github.com/xvierd/doro/internal/ports"
)

type menuAction int

const (
	actionNone menuAction = iota
	actionFont
	actionTheme
	actionAlarm
	actionCycles
	actionWork
	actionBreak
	actionReset
	actionHide
	actionQuit
)

type menuItem struct {
	label    string
	action   menuAction
	disabled bool
}

// contextMenu is the right-click menu.
type contextMenu struct {
	items  []menuItem
	cursor int
	at     dock.Point
}

const menuWidth = 34

func newContextMenu(state domain.TimerState, settings ports.Settings, hidden bool, at dock.Point) *contextMenu {
	hide := "Hide orb"
	if hidden {
		hide = "Show orb"
	}
	m := &contextMenu{
		at: at,
		items: []menuItem{
			{label: fmt.Sprintf("Progress: round %d/%d", state.CurrentCycle, state.TargetCycles), disabled: true},
			{label: fmt.Sprintf("Font... (%s)", settings.FontFamily), action: actionFont},
			{label: fmt.Sprintf("Theme... (%s)", settings.Theme), action: actionTheme},
			{label: fmt.Sprintf("Alarm... (%s)", domain.AlarmName(settings.CustomMP3Path)), action: actionAlarm},
			{label: fmt.Sprintf("Target cycles... (%d)", settings.Cycle.TargetCycles), action: actionCycles},
			{label: fmt.Sprintf("Focus minutes... (%d)", settings.Cycle.WorkMinutes), action: actionWork},
			{label: fmt.Sprintf("Break minutes... (%d)", settings.Cycle.BreakMinutes), action: actionBreak},
			{label: "Reset timer", action: actionReset},
			{label: hide, action: actionHide},
			{label: "Quit", action: actionQuit},
		},
	}
	m.cursor = m.next(0, 1)
	return m
}

// next returns the first enabled index from i moving by step, wrapping.
func (m *contextMenu) next(i, step int) int {
	n := len(m.items)
	for k := 0; k < n; k++ {
		idx := ((i+k*step)%n + n) % n
		if !m.items[idx].disabled {
			return idx
		}
	}
	return i
}

func (m *contextMenu) up() {
	m.cursor = m.next(m.cursor-1, -1)
}

func (m *contextMenu) down() {
	m.cursor = m.next(m.cursor+1, 1)
}

func (m *contextMenu) selected() menuAction {
	item := m.items[m.cursor]
	if item.disabled {
		return actionNone
	}
	return item.action
}

func (m *contextMenu) size() dock.Size {
	return dock.Size{W: menuWidth, H: len(m.items) + 2}
}

// origin keeps the menu on screen.
func (m *contextMenu) origin(screen dock.Size) dock.Point {
	return dock.Clamp(m.at, m.size(), screen)
}

// itemAt maps a screen point to an item index, or -1.
func (m *contextMenu) itemAt(p dock.Point, screen dock.Size) int {
	o := m.origin(screen)
	if p.X <= o.X || p.X >= o.X+menuWidth-1 {
		return -1
	}
	i := p.Y - o.Y - 1
	if i < 0 || i >= len(m.items) {
		return -1
	}
	return i
}

func (m *contextMenu) draw(c *canvas, screen dock.Size, pal palette) {
	o := m.origin(screen)
	size := m.size()
	c.box(o.X, o.Y, size.W, size.H, lipgloss.RoundedBorder(), pal.accent, pal.bg)
	for i, item := range m.items {
		fg, bg := pal.text, pal.bg
		switch {
		case item.disabled:
			fg = pal.dim
		case i == m.cursor:
			fg, bg = pal.bg, pal.accent
		}
		label := fmt.Sprintf(" %-*s", menuWidth-3, item.label)
		c.text(o.X+1, o.Y+1+i, label, fg, bg, i == m.cursor)
	}
}
