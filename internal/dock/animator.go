package dock

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Animator eases the orb frame towards a target point. It is stepped from
// the repaint tick; an inactive animator leaves the frame alone.
type Animator struct {
	spring harmonica.Spring
	x, y   float64
	vx, vy float64
	target Point
	active bool
}

// NewAnimator creates an animator stepped every frame interval.
func NewAnimator(frame time.Duration) *Animator {
	fps := int(time.Second / frame)
	if fps <= 0 {
		fps = 30
	}
	return &Animator{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0),
	}
}

// Start begins moving from the given point to target. Restarting towards the
// same target keeps the current velocity.
func (a *Animator) Start(from, target Point) {
	if a.active && a.target == target {
		return
	}
	a.x, a.y = float64(from.X), float64(from.Y)
	a.vx, a.vy = 0, 0
	a.target = target
	a.active = true
}

// Cancel stops the animation where it is.
func (a *Animator) Cancel() {
	a.active = false
}

// Active reports whether an animation is in progress.
func (a *Animator) Active() bool {
	return a.active
}

// Step advances one frame and returns the new position.
func (a *Animator) Step() Point {
	if !a.active {
		return Point{X: int(math.Round(a.x)), Y: int(math.Round(a.y))}
	}
	a.x, a.vx = a.spring.Update(a.x, a.vx, float64(a.target.X))
	a.y, a.vy = a.spring.Update(a.y, a.vy, float64(a.target.Y))

	p := Point{X: int(math.Round(a.x)), Y: int(math.Round(a.y))}
	if p == a.target && math.Abs(a.vx) < 0.5 && math.Abs(a.vy) < 0.5 {
		a.active = false
		a.x, a.y = float64(a.target.X), float64(a.target.Y)
		return a.target
	}
	return p
}
