package tui

import (
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/doro/internal/dock"
	"github.com/xvierd/doro/internal/domain"
	"github.com/xvierd/doro/internal/theme"
)

// Orb geometry in cells.
const (
	orbWidth      = 30
	orbHeight     = 15
	capsuleWidth  = 16
	capsuleHeight = 3

	// Ring band as a fraction of the ellipse radius.
	ringInner = 0.80
	ringOuter = 1.0

	clockRow  = 3
	digitsMid = 7
	buttonRow = 11
	breakRow  = 12

	// Widest digit block that fits inside the ring.
	digitsMaxWidth = 22
)

const (
	wallClockFade = 1 - 200.0/255.0
	buttonFade    = 1 - 150.0/255.0
)

// orbView is everything needed to paint one frame of the orb.
type orbView struct {
	state domain.TimerState
	theme theme.Theme
	font  string
	hover bool
	now   time.Time
	dock  dock.Position
	art   []string
}

// ringCell reports whether the cell at (x, y) of the orb lies on the ring,
// inside it, and its clockwise position from 12 o'clock in [0,1).
func ringCell(x, y int) (onRing, inside bool, frac float64) {
	cx, cy := orbWidth/2.0, orbHeight/2.0
	nx := (float64(x) + 0.5 - cx) / cx
	ny := (float64(y) + 0.5 - cy) / cy
	r := math.Hypot(nx, ny)

	theta := math.Atan2(nx, -ny)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	frac = theta / (2 * math.Pi)
	return r >= ringInner && r < ringOuter, r < ringOuter, frac
}

// drawOrb paints the free-floating orb with its top-left corner at at.
func drawOrb(c *canvas, at dock.Point, v orbView) {
	urgent := v.state.IsUrgent()
	progress := v.state.Progress()
	bg := v.theme.Background
	track := v.theme.Track()

	for y := 0; y < orbHeight; y++ {
		for x := 0; x < orbWidth; x++ {
			onRing, inside, frac := ringCell(x, y)
			if !inside {
				continue
			}
			c.fill(at.X+x, at.Y+y, bg)
			if !onRing {
				continue
			}
			color := track
			if v.state.TotalTimeSec > 0 && frac < progress {
				// Linear gradient along the orb's diagonal.
				pos := (float64(x)/orbWidth + float64(y)/orbHeight) / 2
				color = v.theme.Gradient(pos, urgent)
			}
			c.set(at.X+x, at.Y+y, '█', color, bg, false)
		}
	}

	text := v.theme.TextColor(urgent)
	mid := at.X + orbWidth/2

	c.textCentered(mid, at.Y+clockRow, v.now.Format("15:04"), v.theme.Faded(text, wallClockFade), bg, false)

	digits := renderBigTime(v.state.Clock(), v.font, digitsMaxWidth)
	top := at.Y + digitsMid - len(digits)/2
	for i, line := range digits {
		c.textCentered(mid, top+i, line, text, bg, true)
	}

	button := "▶"
	if v.state.IsRunning {
		button = "❚❚"
	}
	buttonColor := text
	if !v.hover {
		buttonColor = v.theme.Faded(text, buttonFade)
	}
	c.textCentered(mid, at.Y+buttonRow, button, buttonColor, bg, v.hover)

	if v.state.Mode == domain.ModeBreak {
		c.textCentered(mid, at.Y+breakRow, "on a break~", v.theme.Accent[1], bg, true)
	}
}

// capsuleOrigin returns the capsule's top-left corner inside the frame.
func capsuleOrigin(pos dock.Position) dock.Point {
	switch pos {
	case dock.Right:
		return dock.Point{X: orbWidth - capsuleWidth, Y: orbHeight - 1 - capsuleHeight}
	case dock.Top:
		return dock.Point{X: (orbWidth - capsuleWidth) / 2, Y: 0}
	default:
		return dock.Point{X: 0, Y: orbHeight - 1 - capsuleHeight}
	}
}

// drawCapsule paints the docked capsule and its character art.
func drawCapsule(c *canvas, at dock.Point, v orbView) {
	urgent := v.state.IsUrgent()
	o := capsuleOrigin(v.dock)
	x, y := at.X+o.X, at.Y+o.Y
	mid := x + capsuleWidth/2

	if len(v.art) > 0 {
		artTop := y - len(v.art)
		if v.dock == dock.Top {
			artTop = y + capsuleHeight
		}
		for i, line := range v.art {
			rs := []rune(line)
			left := mid - len(rs)/2
			for j, r := range rs {
				if r != ' ' {
					c.set(left+j, artTop+i, r, v.theme.Accent[1], "", false)
				}
			}
		}
	}

	border := lipgloss.RoundedBorder()
	borderColor := v.theme.Accent[0]
	if urgent {
		border = lipgloss.ThickBorder()
		borderColor = theme.UrgentText
	}
	c.box(x, y, capsuleWidth, capsuleHeight, border, borderColor, v.theme.Background)
	c.textCentered(mid, y+1, v.state.Clock(), v.theme.TextColor(urgent), v.theme.Background, true)
}

// onButton reports whether the point, relative to the orb frame, hits the
// play/pause band.
func onButton(p dock.Point) bool {
	return p.Y >= buttonRow-1 && p.Y <= breakRow && p.X >= 0 && p.X < orbWidth
}
