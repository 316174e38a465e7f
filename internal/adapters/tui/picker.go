package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/doro/internal/dock"
	"github.com/xvierd/doro/internal/theme"
)

const pickerRows = 8

// pickerDialog is a fuzzy-filtered list of names.
type pickerDialog struct {
	title   string
	all     []string
	current string
	query   textinput.Model
	matches []string
	cursor  int
	submit  func(string) error
	err     string
}

func newPickerDialog(title string, names []string, current string, submit func(string) error) *pickerDialog {
	d := &pickerDialog{
		title:   title,
		all:     names,
		current: current,
		query:   newInput(""),
		submit:  submit,
	}
	d.query.Placeholder = "type to filter"
	d.refilter()
	for i, n := range d.matches {
		if n == current {
			d.cursor = i
		}
	}
	return d
}

func (d *pickerDialog) refilter() {
	d.matches = theme.Search(d.query.Value(), d.all)
	if d.cursor >= len(d.matches) {
		d.cursor = len(d.matches) - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

func (d *pickerDialog) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return true, nil
	case "up", "ctrl+p":
		if d.cursor > 0 {
			d.cursor--
		}
		return false, nil
	case "down", "ctrl+n":
		if d.cursor < len(d.matches)-1 {
			d.cursor++
		}
		return false, nil
	case "enter":
		if len(d.matches) == 0 {
			return false, nil
		}
		if err := d.submit(d.matches[d.cursor]); err != nil {
			d.err = err.Error()
			return false, nil
		}
		return true, nil
	}

	d.err = ""
	var cmd tea.Cmd
	d.query, cmd = d.query.Update(msg)
	d.refilter()
	return false, cmd
}

func (d *pickerDialog) draw(c *canvas, screen dock.Size, pal palette) {
	in := drawFrame(c, screen, d.title, pickerRows+3, pal)
	width := dialogWidth - 4
	c.text(in.X, in.Y, "/ "+inputLine(d.query, width-2), pal.text, pal.bg, false)

	start := 0
	if d.cursor >= pickerRows {
		start = d.cursor - pickerRows + 1
	}
	for row := 0; row < pickerRows && start+row < len(d.matches); row++ {
		i := start + row
		name := d.matches[i]
		marker := "  "
		if name == d.current {
			marker = "• "
		}
		fg, bg := pal.text, pal.bg
		if i == d.cursor {
			fg, bg = pal.bg, pal.accent
		}
		c.text(in.X, in.Y+1+row, padRight(marker+name, width), fg, bg, i == d.cursor)
	}
	if len(d.matches) == 0 {
		c.text(in.X, in.Y+1, "no match", pal.dim, pal.bg, false)
	}

	footer := "↑/↓ navigate · enter select · esc back"
	if d.err != "" {
		c.text(in.X, in.Y+pickerRows+2, truncate(d.err, width), pal.err, pal.bg, false)
		return
	}
	c.text(in.X, in.Y+pickerRows+2, footer, pal.dim, pal.bg, false)
}

func padRight(s string, n int) string {
	rs := []rune(s)
	if len(rs) >= n {
		return string(rs[:n])
	}
	for len(rs) < n {
		rs = append(rs, ' ')
	}
	return string(rs)
}
