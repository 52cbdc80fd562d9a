package viewport

import "github.com/Kaushik9989/portfolio/internal/motion"

// Rect is an element's vertical bounds relative to the viewport top.
type Rect struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// HeroProgress measures progress through one element's own scroll range:
// 0 while its top edge is at or below the viewport top, 1 once its bottom
// edge has reached the viewport top.
type HeroProgress struct {
	progress float64
	offset   *motion.Interpolator
	scale    *motion.Interpolator
}

func NewHeroProgress(p Parallax) *HeroProgress {
	unit := []float64{0, 1}
	return &HeroProgress{
		offset: motion.MustInterpolator(unit, p.Offset[:]),
		scale:  motion.MustInterpolator(unit, p.Scale[:]),
	}
}

// Observe records the element's current bounds. An element without height
// has no scroll range and counts as passed once its top crosses the viewport.
func (h *HeroProgress) Observe(r Rect) {
	if r.Height <= 0 {
		if r.Top < 0 {
			h.progress = 1
		} else {
			h.progress = 0
		}
		return
	}
	h.progress = motion.Clamp(-r.Top/r.Height, 0, 1)
}

func (h *HeroProgress) Progress() float64 { return h.progress }

// Offset is the orb's vertical parallax shift.
func (h *HeroProgress) Offset() float64 { return h.offset.Map(h.progress) }

// Scale is the orb's parallax scale factor.
func (h *HeroProgress) Scale() float64 { return h.scale.Map(h.progress) }
