// Package site renders the guide: the home page in a given view state, the
// detail and menu fragments, and the not-found page.
package site

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"

	"github.com/mkdugri-blog/Linux-boot/internal/anchors"
	"github.com/mkdugri-blog/Linux-boot/internal/config"
	"github.com/mkdugri-blog/Linux-boot/internal/content"
	"github.com/mkdugri-blog/Linux-boot/internal/handlers"
	"github.com/mkdugri-blog/Linux-boot/internal/viewstate"
)

const (
	PageHome     = "home"
	PageNotFound = "404"
)

// Site binds the renderer to the loaded article and site settings.
type Site struct {
	Renderer *Renderer
	Article  *content.Article

	basePath   string
	siteURL    string
	analytics  handlers.Analytics
	links      handlers.Links
	shareTitle string
	shareText  string
}

// Sources locates templates and article markdown.
type Sources struct {
	Templates fs.FS // rooted at the templates directory
	Content   fs.FS
	// ContentDir is the sections directory inside Content.
	ContentDir string
	Dev        bool
}

// New parses templates and loads the article.
func New(cfg *config.Config, src Sources) (*Site, error) {
	r, err := NewRenderer(src.Templates, src.Dev)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	article, err := content.Load(src.Content, src.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return &Site{
		Renderer:   r,
		Article:    article,
		basePath:   cfg.BasePath,
		siteURL:    cfg.SiteURL,
		analytics:  handlers.AnalyticsFromConfig(cfg.Analytics),
		links:      handlers.Links{GitHub: cfg.Links.GitHub, LinkedIn: cfg.Links.LinkedIn},
		shareTitle: cfg.Share.Title,
		shareText:  cfg.Share.Text,
	}, nil
}

// BasePath is the normalized prefix every URL is served under.
func (s *Site) BasePath() string { return s.basePath }

// Options returns the view model inputs for a page at path.
func (s *Site) Options(path string, static bool) handlers.HomeOptions {
	return handlers.HomeOptions{
		BasePath:   s.basePath,
		SiteURL:    s.siteURL,
		Path:       path,
		Article:    s.Article,
		Analytics:  s.analytics,
		Links:      s.links,
		ShareTitle: s.shareTitle,
		ShareText:  s.shareText,
		Static:     static,
	}
}

// Home builds the home view model for st.
func (s *Site) Home(st viewstate.State, path string, static bool) handlers.HomeData {
	return handlers.BuildHomeData(st, s.Options(path, static))
}

// RenderHome writes the full home page in state st.
func (s *Site) RenderHome(w io.Writer, st viewstate.State, static bool) error {
	return s.Renderer.Page(w, PageHome, s.Home(st, "", static))
}

// RenderNotFound writes the not-found page.
func (s *Site) RenderNotFound(w io.Writer, static bool) error {
	return s.Renderer.Page(w, PageNotFound, handlers.BuildNotFoundData(s.Options("", static)))
}

// Document renders the home page in its initial state and parses it, so
// anchor navigation can be checked against the elements that actually exist.
func (s *Site) Document() (*anchors.Document, error) {
	var buf bytes.Buffer
	if err := s.RenderHome(&buf, viewstate.State{}, false); err != nil {
		return nil, err
	}
	return anchors.Parse(&buf)
}
