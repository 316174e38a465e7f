package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cell is one terminal cell. Empty colors mean the terminal default.
type cell struct {
	ch   rune
	fg   string
	bg   string
	bold bool
}

// canvas is a fixed grid of cells drawn back to front and rendered once.
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &canvas{w: w, h: h, cells: make([][]cell, h)}
	for y := range c.cells {
		row := make([]cell, w)
		for x := range row {
			row[x] = cell{ch: ' '}
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.w && y < c.h
}

// set writes a rune, keeping the existing background when bg is empty.
func (c *canvas) set(x, y int, ch rune, fg, bg string, bold bool) {
	if !c.inside(x, y) {
		return
	}
	old := c.cells[y][x]
	if bg == "" {
		bg = old.bg
	}
	c.cells[y][x] = cell{ch: ch, fg: fg, bg: bg, bold: bold}
}

// fill paints the background of a cell and clears its content.
func (c *canvas) fill(x, y int, bg string) {
	if !c.inside(x, y) {
		return
	}
	c.cells[y][x] = cell{ch: ' ', bg: bg}
}

// text writes s starting at (x, y). Runes are assumed single width.
func (c *canvas) text(x, y int, s string, fg, bg string, bold bool) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, fg, bg, bold)
	}
}

// textCentered writes s centered on column cx.
func (c *canvas) textCentered(cx, y int, s string, fg, bg string, bold bool) {
	c.text(cx-len([]rune(s))/2, y, s, fg, bg, bold)
}

// box draws a filled rectangle with a border.
func (c *canvas) box(x, y, w, h int, b lipgloss.Border, fg, bg string) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			c.fill(xx, yy, bg)
		}
	}
	if w < 2 || h < 2 {
		return
	}
	top, bottom := []rune(b.Top)[0], []rune(b.Bottom)[0]
	left, right := []rune(b.Left)[0], []rune(b.Right)[0]
	for xx := x + 1; xx < x+w-1; xx++ {
		c.set(xx, y, top, fg, bg, false)
		c.set(xx, y+h-1, bottom, fg, bg, false)
	}
	for yy := y + 1; yy < y+h-1; yy++ {
		c.set(x, yy, left, fg, bg, false)
		c.set(x+w-1, yy, right, fg, bg, false)
	}
	c.set(x, y, []rune(b.TopLeft)[0], fg, bg, false)
	c.set(x+w-1, y, []rune(b.TopRight)[0], fg, bg, false)
	c.set(x, y+h-1, []rune(b.BottomLeft)[0], fg, bg, false)
	c.set(x+w-1, y+h-1, []rune(b.BottomRight)[0], fg, bg, false)
}

// render turns the grid into styled lines, one style per run of equal cells.
func (c *canvas) render() string {
	lines := make([]string, c.h)
	for y, row := range c.cells {
		var b strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && sameStyle(row[x], row[start]) {
				continue
			}
			b.WriteString(styleFor(row[start]).Render(runString(row[start:x])))
			start = x
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// plain returns the grid without styling.
func (c *canvas) plain() string {
	lines := make([]string, c.h)
	for y, row := range c.cells {
		lines[y] = runString(row)
	}
	return strings.Join(lines, "\n")
}

func sameStyle(a, b cell) bool {
	return a.fg == b.fg && a.bg == b.bg && a.bold == b.bold
}

func styleFor(c cell) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(c.bold)
	if c.fg != "" {
		s = s.Foreground(lipgloss.Color(c.fg))
	}
	if c.bg != "" {
		s = s.Background(lipgloss.Color(c.bg))
	}
	return s
}

func runString(cells []cell) string {
	rs := make([]rune, len(cells))
	for i, c := range cells {
		rs[i] = c.ch
	}
	return string(rs)
}
