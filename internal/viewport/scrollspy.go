package viewport

import "math"

// Entry is one intersection notification for an observed section.
type Entry struct {
	ID           string  `json:"id"`
	Top          float64 `json:"top"`
	Intersecting bool    `json:"intersecting"`
}

// Batch is everything an observer reported in one callback.
type Batch struct {
	Entries        []Entry `json:"entries"`
	ViewportHeight float64 `json:"viewportHeight"`
}

// ScrollSpy tracks which section is active. A section becomes active when it
// intersects the band; nothing ever deactivates a section except another
// section taking over.
//
// When several sections intersect in the same batch the one whose top edge
// is closest to the band's centre wins, with document order breaking exact
// ties. Notification order does not matter.
type ScrollSpy struct {
	band   Band
	order  map[string]int
	active string
}

func NewScrollSpy(sections []string, band Band) *ScrollSpy {
	s := &ScrollSpy{band: band, order: make(map[string]int, len(sections))}
	for i, id := range sections {
		if _, dup := s.order[id]; !dup {
			s.order[id] = i
		}
	}
	if len(sections) > 0 {
		s.active = sections[0]
	}
	return s
}

func (s *ScrollSpy) Active() string { return s.active }

// Known reports whether id is one of the tracked sections.
func (s *ScrollSpy) Known(id string) bool {
	_, ok := s.order[id]
	return ok
}

// Process applies one observation batch and reports whether the active
// section changed.
func (s *ScrollSpy) Process(b Batch) bool {
	center := s.band.Center(b.ViewportHeight)

	best := ""
	bestDist := math.Inf(1)
	for _, e := range b.Entries {
		if !e.Intersecting {
			continue
		}
		idx, ok := s.order[e.ID]
		if !ok {
			continue
		}
		dist := math.Abs(e.Top - center)
		if dist < bestDist || (dist == bestDist && idx < s.order[best]) {
			best, bestDist = e.ID, dist
		}
	}

	if best == "" || best == s.active {
		return false
	}
	s.active = best
	return true
}
