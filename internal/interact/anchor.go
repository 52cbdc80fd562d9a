package interact

import "strings"

type Behavior string

const (
	Instant Behavior = "instant"
	Smooth  Behavior = "smooth"
)

// Element is a node found in the document.
type Element interface {
	ID() string
}

// Document looks elements up by id.
type Document interface {
	ElementByID(id string) (Element, bool)
}

// Scroller moves the viewport.
type Scroller interface {
	// ScrollIntoView aligns el's top edge with the viewport top.
	ScrollIntoView(el Element, behavior Behavior)
	ScrollTo(top float64, behavior Behavior)
}

// Fragment extracts the target id from an in-page link such as "#projects".
// Anything that is not a local fragment reports false.
func Fragment(href string) (string, bool) {
	if !strings.HasPrefix(href, "#") {
		return "", false
	}
	return href[1:], true
}

// AnchorScroller turns in-page link activations into smooth scrolls.
type AnchorScroller struct {
	Doc    Document
	Scroll Scroller
}

// HandleClick reports whether the default navigation should be suppressed.
// Every local fragment link is intercepted; a target that does not exist is
// a silent no-op.
func (a AnchorScroller) HandleClick(href string) bool {
	id, ok := Fragment(href)
	if !ok {
		return false
	}
	if el, found := a.Doc.ElementByID(id); found {
		a.Scroll.ScrollIntoView(el, Smooth)
	}
	return true
}

// BackToTop smooth-scrolls the document to its top.
func BackToTop(s Scroller) {
	s.ScrollTo(0, Smooth)
}
