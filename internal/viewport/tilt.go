package viewport

import (
	"time"

	"github.com/Kaushik9989/portfolio/internal/motion"
)

// Bounds is an element's client rectangle.
type Bounds struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Tilt turns pointer position over a card into a 3D rotation that springs
// towards the pointer and back to neutral when it leaves.
type Tilt struct {
	degrees float64
	rotX    *motion.SpringState
	rotY    *motion.SpringState
}

func NewTilt(s motion.Spring, degrees float64) *Tilt {
	return &Tilt{
		degrees: degrees,
		rotX:    motion.NewSpringState(s, 0),
		rotY:    motion.NewSpringState(s, 0),
	}
}

// Move aims the card at a pointer position given in client coordinates.
// Degenerate bounds are ignored.
func (t *Tilt) Move(x, y float64, b Bounds) {
	if b.Width <= 0 || b.Height <= 0 {
		return
	}
	px := (x-b.Left)/b.Width - 0.5
	py := (y-b.Top)/b.Height - 0.5
	t.rotX.SetTarget(py * -t.degrees)
	t.rotY.SetTarget(px * t.degrees)
}

// Leave returns the target rotation to neutral.
func (t *Tilt) Leave() {
	t.rotX.SetTarget(0)
	t.rotY.SetTarget(0)
}

// Target is the rotation the card is heading to, in degrees.
func (t *Tilt) Target() (rotateX, rotateY float64) {
	return t.rotX.Target(), t.rotY.Target()
}

// Rotation is the current, spring-smoothed rotation in degrees.
func (t *Tilt) Rotation() (rotateX, rotateY float64) {
	return t.rotX.Value(), t.rotY.Value()
}

func (t *Tilt) Step(dt time.Duration) (rotateX, rotateY float64) {
	return t.rotX.Step(dt), t.rotY.Step(dt)
}
