package handlers

import (
	"github.com/mkdugri-blog/Linux-boot/internal/nav"
	"github.com/mkdugri-blog/Linux-boot/internal/seo"
)

// PageData is a generic view model for simple pages using the shared layout.
type PageData struct {
	Title     string
	Lang      string
	SEO       seo.Meta
	Analytics Analytics
	Links     Links

	Path     string
	BasePath string
	Nav      []nav.RenderedItem
	Menu     MenuData
	Static   bool
	Progress string
	Message  string
}

// BuildNotFoundData returns the view model for unknown paths.
func BuildNotFoundData(opts HomeOptions) PageData {
	base := nav.NormalizeBase(opts.BasePath)
	meta := seo.NewMeta("Page not found | "+siteTitle, "The page you were looking for does not exist.", "")
	meta.Robots = "noindex"
	menu := BuildMenu(false, base, opts.Static)
	menu.Items = offPage(menu.Items, base)
	return PageData{
		Title:     meta.Title,
		Lang:      "en",
		SEO:       meta,
		Analytics: opts.Analytics,
		Links:     opts.Links,
		Path:      opts.Path,
		BasePath:  base,
		Nav:       offPage(nav.Build(""), base),
		Menu:      menu,
		Static:    opts.Static,
		Progress:  "0%",
		Message:   "This page took a wrong turn somewhere between GRUB and the kernel.",
	}
}
