package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/doro/internal/dock"
	"github.com/xvierd/doro/internal/domain"
	"github.com/xvierd/doro/internal/theme"
)

const dialogWidth = 44

// palette is the subset of theme colors the overlays use.
type palette struct {
	accent string
	bg     string
	text   string
	dim    string
	err    string
}

func paletteFor(t theme.Theme) palette {
	return palette{
		accent: t.Accent[0],
		bg:     t.Background,
		text:   t.Text,
		dim:    t.Faded(t.Text, 0.5),
		err:    theme.UrgentText,
	}
}

// dialog is a modal overlay that owns the keyboard while open.
type dialog interface {
	// handleKey processes a key and reports whether the dialog closed.
	handleKey(msg tea.KeyMsg) (closed bool, cmd tea.Cmd)
	draw(c *canvas, screen dock.Size, pal palette)
}

// drawFrame paints a centered dialog box and returns its inner origin.
func drawFrame(c *canvas, screen dock.Size, title string, lines int, pal palette) dock.Point {
	h := lines + 4
	o := dock.Point{X: (screen.W - dialogWidth) / 2, Y: (screen.H - h) / 2}
	if o.X < 0 {
		o.X = 0
	}
	if o.Y < 0 {
		o.Y = 0
	}
	c.box(o.X, o.Y, dialogWidth, h, lipgloss.RoundedBorder(), pal.accent, pal.bg)
	c.textCentered(o.X+dialogWidth/2, o.Y+1, title, pal.accent, pal.bg, true)
	return dock.Point{X: o.X + 2, Y: o.Y + 3}
}

// inputLine renders a text input's value with a bar cursor, scrolled to fit.
func inputLine(in textinput.Model, width int) string {
	value := []rune(in.Value())
	pos := in.Position()
	if pos > len(value) {
		pos = len(value)
	}
	line := string(value[:pos]) + "▏" + string(value[pos:])
	if len(value) == 0 && in.Placeholder != "" {
		line = "▏" + in.Placeholder
	}
	rs := []rune(line)
	if len(rs) > width {
		start := pos + 1 - width
		if start < 0 {
			start = 0
		}
		if start+width > len(rs) {
			start = len(rs) - width
		}
		rs = rs[start : start+width]
	}
	return string(rs)
}

func newInput(value string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 512
	in.Width = dialogWidth - 4
	in.SetValue(value)
	in.CursorEnd()
	in.Focus()
	return in
}

// finishDialog announces a finished segment.
type finishDialog struct {
	note domain.Notification
}

func (d *finishDialog) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "enter", " ", "esc", "o":
		return true, nil
	}
	return false, nil
}

func (d *finishDialog) draw(c *canvas, screen dock.Size, pal palette) {
	lines := strings.Split(d.note.Message, "\n")
	in := drawFrame(c, screen, d.note.Title, len(lines)+2, pal)
	for i, l := range lines {
		c.textCentered(in.X+(dialogWidth-4)/2, in.Y+i, l, pal.text, pal.bg, false)
	}
	c.textCentered(in.X+(dialogWidth-4)/2, in.Y+len(lines)+1, "[ OK ]", pal.bg, pal.accent, true)
}

// intDialog asks for a whole number and rejects anything out of range.
type intDialog struct {
	title    string
	input    textinput.Model
	validate func(int) error
	submit   func(int) error
	err      string
}

func newIntDialog(title string, current int, validate, submit func(int) error) *intDialog {
	return &intDialog{
		title:    title,
		input:    newInput(strconv.Itoa(current)),
		validate: validate,
		submit:   submit,
	}
}

func (d *intDialog) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return true, nil
	case "enter":
		v, err := strconv.Atoi(strings.TrimSpace(d.input.Value()))
		if err != nil {
			d.err = "Enter a whole number."
			return false, nil
		}
		if err := d.validate(v); err != nil {
			d.err = rangeMessage(err)
			return false, nil
		}
		if err := d.submit(v); err != nil {
			d.err = err.Error()
			return false, nil
		}
		return true, nil
	}

	d.err = ""
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return false, cmd
}

func (d *intDialog) draw(c *canvas, screen dock.Size, pal palette) {
	in := drawFrame(c, screen, d.title, 3, pal)
	c.text(in.X, in.Y, inputLine(d.input, dialogWidth-4), pal.text, pal.bg, true)
	if d.err != "" {
		c.text(in.X, in.Y+1, truncate(d.err, dialogWidth-4), pal.err, pal.bg, false)
	}
	c.text(in.X, in.Y+2, "enter save · esc cancel", pal.dim, pal.bg, false)
}

// rangeMessage turns a validation error into the dialog hint.
func rangeMessage(err error) string {
	if errors.Is(err, domain.ErrOutOfRange) {
		msg := err.Error()
		if i := strings.LastIndex(msg, "not in "); i >= 0 {
			return "Allowed range is " + msg[i+len("not in "):] + "."
		}
	}
	return err.Error()
}

// pathDialog asks for an alarm file. Empty restores the built-in tone.
type pathDialog struct {
	input  textinput.Model
	submit func(string) error
	err    string
}

func newPathDialog(current string, submit func(string) error) *pathDialog {
	in := newInput(current)
	in.Placeholder = "built-in tone"
	return &pathDialog{input: in, submit: submit}
}

func (d *pathDialog) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return true, nil
	case "enter":
		if err := d.submit(strings.TrimSpace(d.input.Value())); err != nil {
			d.err = err.Error()
			return false, nil
		}
		return true, nil
	}

	d.err = ""
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return false, cmd
}

func (d *pathDialog) draw(c *canvas, screen dock.Size, pal palette) {
	in := drawFrame(c, screen, "Alarm sound", 4, pal)
	c.text(in.X, in.Y, inputLine(d.input, dialogWidth-4), pal.text, pal.bg, true)
	if d.err != "" {
		c.text(in.X, in.Y+1, truncate(d.err, dialogWidth-4), pal.err, pal.bg, false)
	}
	c.text(in.X, in.Y+2, truncate(strings.Join(domain.AlarmExtensions, " "), dialogWidth-4), pal.dim, pal.bg, false)
	c.text(in.X, in.Y+3, "enter save · empty = built-in", pal.dim, pal.bg, false)
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	if n <= 3 {
		return string(rs[:n])
	}
	return string(rs[:n-3]) + "..."
}
