// Package dock decides when the orb snaps to an edge of the screen and
// where it should sit once docked.
package dock

// Position is the edge the orb is docked to.
type Position string

const (
	None  Position = "none"
	Top   Position = "top"
	Left  Position = "left"
	Right Position = "right"
)

// IsDocked returns true for any edge position.
func (p Position) IsDocked() bool {
	return p == Top || p == Left || p == Right
}

const (
	// SnapMargin is the distance to an edge, in cells, that triggers docking.
	SnapMargin = 2
	// PullDistance is how far a docked frame must be from its edge to undock.
	PullDistance = 5
)

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// Size is a width and height in cells.
type Size struct {
	W, H int
}

// Rect is the orb frame on screen.
type Rect struct {
	Point
	Size
}

// Right returns the x coordinate just past the frame.
func (r Rect) Right() int {
	return r.X + r.W
}

// Decision is the result of one docking evaluation.
type Decision struct {
	Position Position
	Target   Point
	Animate  bool
}

// Evaluate checks the frame against the screen edges. A free frame snaps to
// the first edge it is within SnapMargin of (top, then left, then right). A
// docked frame gets a target on its edge, and is released when it sits more
// than PullDistance away. The release thresholds differ per edge and are
// measured on the frame as it is now, before any animation.
func Evaluate(frame Rect, screen Size, current Position) Decision {
	pos := current
	if !pos.IsDocked() {
		pos = None
		switch {
		case frame.Y < SnapMargin:
			pos = Top
		case frame.X < SnapMargin:
			pos = Left
		case frame.Right() > screen.W-SnapMargin:
			pos = Right
		}
	}

	if pos == None {
		return Decision{Position: None, Target: frame.Point}
	}

	d := Decision{Position: pos, Target: frame.Point}
	switch pos {
	case Top:
		d.Target = Point{X: frame.X, Y: 0}
	case Left:
		d.Target = Point{X: 0, Y: frame.Y}
	case Right:
		d.Target = Point{X: screen.W - frame.W, Y: frame.Y}
	}
	d.Animate = d.Target != frame.Point

	switch {
	case pos == Top && frame.Y > PullDistance:
		d.Position = None
	case pos == Left && frame.X > PullDistance:
		d.Position = None
	case pos == Right && frame.X < screen.W-frame.W-PullDistance:
		d.Position = None
	}
	return d
}

// Clamp keeps the frame fully inside the screen where possible.
func Clamp(p Point, frame Size, screen Size) Point {
	maxX := screen.W - frame.W
	maxY := screen.H - frame.H
	if p.X > maxX {
		p.X = maxX
	}
	if p.Y > maxY {
		p.Y = maxY
	}
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	return p
}
