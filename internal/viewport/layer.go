package viewport

import (
	"errors"
	"time"
)

var (
	ErrClosed   = errors.New("viewport: layer closed")
	ErrAttached = errors.New("viewport: layer already attached")
)

// Unsubscribe releases a subscription. Calling it more than once is allowed.
type Unsubscribe func()

// ScrollEvent is delivered on every document scroll.
type ScrollEvent struct {
	Metrics Metrics `json:"metrics"`
	Hero    Rect    `json:"hero"`
}

// ScrollSource delivers scroll events to subscribers.
type ScrollSource interface {
	Subscribe(fn func(ScrollEvent)) Unsubscribe
}

// IntersectionSource delivers intersection batches for observed elements.
type IntersectionSource interface {
	// Observe starts watching the element with id and returns false when the
	// document has no such element.
	Observe(id string) bool
	Subscribe(fn func(Batch)) Unsubscribe
}

// Layer wires the three trackers to their sources and owns the
// subscriptions for the lifetime of the page.
type Layer struct {
	cfg      Config
	progress *ScrollProgress
	hero     *HeroProgress
	spy      *ScrollSpy

	observed []string
	subs     []Unsubscribe
	attached bool
	closed   bool
}

func NewLayer(cfg Config) *Layer {
	return &Layer{
		cfg:      cfg,
		progress: NewScrollProgress(cfg.ProgressSpring),
		hero:     NewHeroProgress(cfg.Parallax),
		spy:      NewScrollSpy(cfg.Sections, cfg.Band),
	}
}

// Attach subscribes the trackers. Sections with no matching element are
// skipped and can never become active. Either source may be nil. A layer
// attaches once; later calls return ErrAttached and subscribe nothing.
func (l *Layer) Attach(scroll ScrollSource, sections IntersectionSource) error {
	if l.closed {
		return ErrClosed
	}
	if l.attached {
		return ErrAttached
	}
	l.attached = true

	if scroll != nil {
		l.subs = append(l.subs, scroll.Subscribe(func(ev ScrollEvent) {
			l.progress.Observe(ev.Metrics)
			l.hero.Observe(ev.Hero)
		}))
	}

	if sections != nil {
		for _, id := range l.cfg.Sections {
			if sections.Observe(id) {
				l.observed = append(l.observed, id)
			}
		}
		l.subs = append(l.subs, sections.Subscribe(func(b Batch) {
			l.spy.Process(b)
		}))
	}
	return nil
}

// Observed lists the sections an element was found for.
func (l *Layer) Observed() []string {
	return append([]string(nil), l.observed...)
}

// Tick advances time-based smoothing by one frame.
func (l *Layer) Tick(dt time.Duration) {
	l.progress.Tick(dt)
}

func (l *Layer) State() State {
	return State{
		ScrollProgress: l.progress.Value(),
		HeroProgress:   l.hero.Progress(),
		HeroOffset:     l.hero.Offset(),
		HeroScale:      l.hero.Scale(),
		ActiveSection:  l.spy.Active(),
	}
}

// Close releases every subscription in reverse order. It is safe to call
// repeatedly and before Attach.
func (l *Layer) Close() {
	if l.closed {
		return
	}
	l.closed = true
	for i := len(l.subs) - 1; i >= 0; i-- {
		if l.subs[i] != nil {
			l.subs[i]()
		}
	}
	l.subs = nil
}
