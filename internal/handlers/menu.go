package handlers

import "github.com/mkdugri-blog/Linux-boot/internal/nav"

// MenuData is the view model of the mobile menu and its toggle button.
type MenuData struct {
	Open  bool
	Items []nav.RenderedItem
	// ToggleURL is the htmx endpoint flipping the menu; empty on static pages.
	ToggleURL string
}

// BuildMenu returns the menu in the given state.
func BuildMenu(open bool, base string, static bool) MenuData {
	m := MenuData{Open: open, Items: nav.Build("")}
	if !static {
		m.ToggleURL = nav.Join(base, "menu")
	}
	return m
}

// offPage points navigation items at the home page for pages that lack the sections.
func offPage(items []nav.RenderedItem, base string) []nav.RenderedItem {
	home := nav.Join(base, "")
	out := make([]nav.RenderedItem, len(items))
	for i, it := range items {
		it.Href = home + "#" + it.Fragment
		out[i] = it
	}
	return out
}
