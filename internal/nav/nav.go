package nav

import (
	"path"
	"strings"
)

// Item represents an in-page navigation entry.
type Item struct {
	Fragment string // element id, e.g. "flowchart"
	Label    string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	Fragment string
	Label    string
	Active   bool
}

// Main is the primary navigation definition, shared by the desktop bar and the mobile menu.
var Main = []Item{
	{Fragment: "overview", Label: "Overview"},
	{Fragment: "flowchart", Label: "Flowchart"},
	{Fragment: "detailed", Label: "Details"},
	{Fragment: "conclusion", Label: "Conclusion"},
}

// Build renders navigation items, marking the entry whose fragment matches active.
func Build(active string) []RenderedItem {
	active = strings.TrimPrefix(active, "#")
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     "#" + it.Fragment,
			Fragment: it.Fragment,
			Label:    it.Label,
			Active:   active != "" && active == it.Fragment,
		})
	}
	return items
}

// Fragments lists the in-page targets the navigation expects to exist.
func Fragments() []string {
	out := make([]string, 0, len(Main))
	for _, it := range Main {
		out = append(out, it.Fragment)
	}
	return out
}

// NormalizeBase turns a configured base path into "/" or "/prefix" without a trailing slash.
func NormalizeBase(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return "/"
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	base = path.Clean(base)
	if base == "." {
		return "/"
	}
	return base
}

// Join prefixes p with the normalized base path. Directory-style paths keep
// their trailing slash so static hosts resolve index.html.
func Join(base, p string) string {
	base = NormalizeBase(base)
	if p == "" || p == "/" {
		if base == "/" {
			return "/"
		}
		return base + "/"
	}
	trailing := strings.HasSuffix(p, "/")
	out := path.Join(base, p)
	if trailing && !strings.HasSuffix(out, "/") {
		out += "/"
	}
	return out
}

// StripBase removes the base path prefix from a request path. The boolean is
// false when p is outside the base.
func StripBase(base, p string) (string, bool) {
	base = NormalizeBase(base)
	if base == "/" {
		return p, true
	}
	if p == base {
		return "/", true
	}
	if strings.HasPrefix(p, base+"/") {
		return strings.TrimPrefix(p, base), true
	}
	return p, false
}
