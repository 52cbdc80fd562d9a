// Package motion holds the numeric building blocks of the page's scroll and
// pointer effects: a damped spring follower and clamped linear mapping.
package motion

import (
	"math"
	"time"
)

// Spring is a mass on a damped spring pulled towards a moving target.
type Spring struct {
	Stiffness float64 `json:"stiffness"`
	Damping   float64 `json:"damping"`
	Mass      float64 `json:"mass"`
}

const (
	// maxSubstep keeps the integration stable for the stiff, light springs
	// the page uses.
	maxSubstep = 1.0 / 240

	restDelta = 0.0005
	restSpeed = 0.005
)

// DampingRatio reports zeta; 1 is critical damping, above 1 never overshoots.
func (s Spring) DampingRatio() float64 {
	if s.Stiffness <= 0 || s.Mass <= 0 {
		return 0
	}
	return s.Damping / (2 * math.Sqrt(s.Stiffness*s.Mass))
}

// SpringState is one value following its target through a Spring.
// The zero value is not usable; build one with NewSpringState.
type SpringState struct {
	spring   Spring
	value    float64
	velocity float64
	target   float64
}

func NewSpringState(s Spring, initial float64) *SpringState {
	if s.Mass <= 0 {
		s.Mass = 1
	}
	return &SpringState{spring: s, value: initial, target: initial}
}

func (s *SpringState) Value() float64  { return s.value }
func (s *SpringState) Target() float64 { return s.target }

// SetTarget moves the rest point; the value catches up on later Steps.
func (s *SpringState) SetTarget(target float64) {
	s.target = target
}

// Settled reports whether the value rests on its target.
func (s *SpringState) Settled() bool {
	return s.value == s.target && s.velocity == 0
}

// Step advances the simulation by dt and returns the new value.
func (s *SpringState) Step(dt time.Duration) float64 {
	if dt <= 0 || s.Settled() {
		return s.value
	}

	secs := dt.Seconds()
	n := int(math.Ceil(secs / maxSubstep))
	h := secs / float64(n)
	k, c, m := s.spring.Stiffness, s.spring.Damping, s.spring.Mass

	for i := 0; i < n; i++ {
		accel := (-k*(s.value-s.target) - c*s.velocity) / m
		s.velocity += accel * h
		s.value += s.velocity * h
	}

	if math.Abs(s.value-s.target) < restDelta && math.Abs(s.velocity) < restSpeed {
		s.value = s.target
		s.velocity = 0
	}
	return s.value
}
