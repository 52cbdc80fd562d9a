// Package viewport tracks how the reader moves through the page: overall
// scroll progress, progress through the hero element, and which section is
// currently in view. The trackers are plain state machines fed by
// subscription sources, so the same logic can be driven by a browser bridge
// or by tests.
package viewport

import (
	"fmt"

	"github.com/Kaushik9989/portfolio/internal/motion"
)

var defaultSections = []string{"home", "experience", "projects", "skills", "education", "certs", "contact"}

// DefaultSections returns the page's section ids in document order.
func DefaultSections() []string {
	return append([]string(nil), defaultSections...)
}

// Band is the horizontal strip of the viewport a section has to cross to
// become active. Margins are fractions of the viewport height trimmed from
// each edge.
type Band struct {
	TopMargin    float64 `json:"topMargin"`
	BottomMargin float64 `json:"bottomMargin"`
	Threshold    float64 `json:"threshold"`
}

// Bounds returns the band's top and bottom edges in viewport pixels.
func (b Band) Bounds(viewportHeight float64) (top, bottom float64) {
	return viewportHeight * b.TopMargin, viewportHeight * (1 - b.BottomMargin)
}

func (b Band) Center(viewportHeight float64) float64 {
	top, bottom := b.Bounds(viewportHeight)
	return (top + bottom) / 2
}

// RootMargin renders the band in IntersectionObserver rootMargin syntax.
func (b Band) RootMargin() string {
	return fmt.Sprintf("-%g%% 0px -%g%% 0px", b.TopMargin*100, b.BottomMargin*100)
}

// Parallax describes how hero progress maps onto the background orb.
type Parallax struct {
	Offset [2]float64 `json:"offset"`
	Scale  [2]float64 `json:"scale"`
}

type Config struct {
	Sections       []string      `json:"sections"`
	Band           Band          `json:"band"`
	RootMargin     string        `json:"rootMargin"`
	ProgressSpring motion.Spring `json:"progressSpring"`
	TiltSpring     motion.Spring `json:"tiltSpring"`
	TiltDegrees    float64       `json:"tiltDegrees"`
	Parallax       Parallax      `json:"parallax"`
}

func DefaultConfig() Config {
	band := Band{TopMargin: 0.5, BottomMargin: 0.4, Threshold: 0.01}
	return Config{
		Sections:       DefaultSections(),
		Band:           band,
		RootMargin:     band.RootMargin(),
		ProgressSpring: motion.Spring{Stiffness: 120, Damping: 20, Mass: 0.2},
		TiltSpring:     motion.Spring{Stiffness: 200, Damping: 20, Mass: 0.5},
		TiltDegrees:    6,
		Parallax: Parallax{
			Offset: [2]float64{0, -120},
			Scale:  [2]float64{1, 1.2},
		},
	}
}

// State is the snapshot renderers consume.
type State struct {
	ScrollProgress float64 `json:"scrollProgress"`
	HeroProgress   float64 `json:"heroProgress"`
	HeroOffset     float64 `json:"heroOffset"`
	HeroScale      float64 `json:"heroScale"`
	ActiveSection  string  `json:"activeSection"`
}

// Initial is the state of a freshly loaded page scrolled to the top.
func Initial(cfg Config) State {
	hero := NewHeroProgress(cfg.Parallax)
	st := State{HeroOffset: hero.Offset(), HeroScale: hero.Scale()}
	if len(cfg.Sections) > 0 {
		st.ActiveSection = cfg.Sections[0]
	}
	return st
}
