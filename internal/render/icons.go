package render

import (
	"fmt"
	"html/template"
)

var icons = map[string]bool{
	"github":        true,
	"linkedin":      true,
	"mail":          true,
	"phone":         true,
	"map-pin":       true,
	"briefcase":     true,
	"link":          true,
	"external-link": true,
	"school":        true,
	"award":         true,
	"chevron-up":    true,
	"copy":          true,
	"check":         true,
}

// icon references a symbol from the static sprite. Unknown names render
// nothing.
func icon(name string) template.HTML {
	if !icons[name] {
		return ""
	}
	return template.HTML(fmt.Sprintf(
		`<svg class="icon icon-%s" aria-hidden="true"><use href="/static/icons.svg#%s"></use></svg>`,
		name, name,
	))
}
