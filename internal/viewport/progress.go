package viewport

import (
	"time"

	"github.com/Kaushik9989/portfolio/internal/motion"
)

// Metrics is one reading of the document's scroll geometry.
type Metrics struct {
	ScrollTop      float64 `json:"scrollTop"`
	DocumentHeight float64 `json:"documentHeight"`
	ViewportHeight float64 `json:"viewportHeight"`
}

// Fraction is scrollTop over the scrollable distance, clamped to [0,1].
// A document that does not scroll is always at 0.
func (m Metrics) Fraction() float64 {
	scrollable := m.DocumentHeight - m.ViewportHeight
	if scrollable <= 0 {
		return 0
	}
	return motion.Clamp(m.ScrollTop/scrollable, 0, 1)
}

// ScrollProgress follows the document scroll fraction through a spring so
// the progress bar eases instead of jumping.
type ScrollProgress struct {
	spring *motion.SpringState
}

func NewScrollProgress(s motion.Spring) *ScrollProgress {
	return &ScrollProgress{spring: motion.NewSpringState(s, 0)}
}

func (p *ScrollProgress) Observe(m Metrics) {
	p.spring.SetTarget(m.Fraction())
}

// Tick advances the smoothing by one frame.
func (p *ScrollProgress) Tick(dt time.Duration) float64 {
	return p.spring.Step(dt)
}

// Target is the raw, unsmoothed fraction from the last observation.
func (p *ScrollProgress) Target() float64 { return p.spring.Target() }

// Value is the smoothed fraction exposed to the progress bar.
func (p *ScrollProgress) Value() float64 { return p.spring.Value() }
