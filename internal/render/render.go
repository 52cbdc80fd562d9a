// Package render turns the portfolio records into HTML. Rendering is a pure
// function of the portfolio and the viewport state handed in; the template
// set also carries the contact, privacy and admin pages served next to it.
package render

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/Kaushik9989/portfolio/internal/content"
	"github.com/Kaushik9989/portfolio/internal/interact"
	"github.com/Kaushik9989/portfolio/internal/viewport"
)

//go:embed templates/*.html
var templateFS embed.FS

var ErrUnknownSection = errors.New("render: unknown section")

var sectionTitles = map[string]string{
	"home":       "Home",
	"experience": "Experience",
	"projects":   "Projects",
	"skills":     "Skills",
	"education":  "Education",
	"certs":      "Certifications",
	"contact":    "Get in Touch",
}

// NavItem is one entry of the top navigation.
type NavItem struct {
	ID     string
	Label  string
	Href   string
	Active bool
}

// ClientConfig is embedded in the page for the browser script.
type ClientConfig struct {
	viewport.Config
	CopyResetMs int64  `json:"copyResetMs"`
	CopyBeacon  string `json:"copyBeacon,omitempty"`
}

// PageView is everything the page templates read.
type PageView struct {
	Content        content.Data
	Nav            []NavItem
	FooterNav      []content.Link
	Chips          []interact.ChipSpec
	State          viewport.State
	Client         ClientConfig
	Year           int
	Print          bool
	BaseURL        string
	ContactEnabled bool
	ResumeEnabled  bool
}

type Renderer struct {
	portfolio content.Portfolio
	cfg       viewport.Config
	tmpl      *template.Template
	now       func() time.Time
	beacon    string
	contact   bool
	resume    bool
}

type Option func(*Renderer)

func WithClock(now func() time.Time) Option { return func(r *Renderer) { r.now = now } }

// WithCopyBeacon makes the browser report successful copies to path.
func WithCopyBeacon(path string) Option { return func(r *Renderer) { r.beacon = path } }

// WithContactForm renders the contact form in the contact section.
func WithContactForm(enabled bool) Option { return func(r *Renderer) { r.contact = enabled } }

// WithResumeLink links the PDF export from the footer.
func WithResumeLink(enabled bool) Option { return func(r *Renderer) { r.resume = enabled } }

func New(p content.Portfolio, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		portfolio: p,
		cfg:       viewport.DefaultConfig(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	tmpl, err := template.New("portfolio").Funcs(template.FuncMap{
		"icon":  icon,
		"title": sectionTitle,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Template exposes the parsed set so an HTTP engine can execute it.
func (r *Renderer) Template() *template.Template { return r.tmpl }

func (r *Renderer) Config() viewport.Config { return r.cfg }

// View builds the data for one page render.
func (r *Renderer) View(state viewport.State) PageView {
	if state.ActiveSection == "" {
		state.ActiveSection = viewport.Initial(r.cfg).ActiveSection
	}
	id := r.portfolio.Identity()

	nav := make([]NavItem, 0, len(r.cfg.Sections))
	for _, s := range r.cfg.Sections {
		nav = append(nav, NavItem{ID: s, Label: navLabel(s), Href: "#" + s, Active: s == state.ActiveSection})
	}

	return PageView{
		Content: r.portfolio.Data(),
		Nav:     nav,
		FooterNav: []content.Link{
			{Label: "Home", Href: "#home"},
			{Label: "Projects", Href: "#projects"},
			{Label: "Contact", Href: "#contact"},
		},
		Chips: interact.ContactChips(id.Email, id.Phone),
		State: state,
		Client: ClientConfig{
			Config:      r.cfg,
			CopyResetMs: interact.CopiedResetDelay.Milliseconds(),
			CopyBeacon:  r.beacon,
		},
		Year:           r.now().Year(),
		ContactEnabled: r.contact,
		ResumeEnabled:  r.resume,
	}
}

// PrintView is the static, script-free variant used for PDF export. baseURL
// lets a headless browser resolve the stylesheet.
func (r *Renderer) PrintView(baseURL string) PageView {
	v := r.View(viewport.Initial(r.cfg))
	v.Print = true
	v.BaseURL = baseURL
	v.ContactEnabled = false
	return v
}

// Page writes the whole document.
func (r *Renderer) Page(w io.Writer, v PageView) error {
	return r.tmpl.ExecuteTemplate(w, "page", v)
}

// HasSection reports whether id names a renderable section.
func (r *Renderer) HasSection(id string) bool {
	for _, s := range r.cfg.Sections {
		if s == id {
			return true
		}
	}
	return false
}

// SectionTemplate is the template name that renders section id.
func SectionTemplate(id string) string { return "section-" + id }

// Section writes a single section fragment.
func (r *Renderer) Section(w io.Writer, id string, v PageView) error {
	if !r.HasSection(id) {
		return fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	return r.tmpl.ExecuteTemplate(w, SectionTemplate(id), v)
}

func navLabel(id string) string {
	if id == "" {
		return ""
	}
	return strings.ToUpper(id[:1]) + id[1:]
}

func sectionTitle(id string) string {
	if t, ok := sectionTitles[id]; ok {
		return t
	}
	return navLabel(id)
}
