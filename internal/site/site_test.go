package site

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mkdugri-blog/Linux-boot/internal/boot"
	"github.com/mkdugri-blog/Linux-boot/internal/config"
	"github.com/mkdugri-blog/Linux-boot/internal/handlers"
	"github.com/mkdugri-blog/Linux-boot/internal/nav"
	"github.com/mkdugri-blog/Linux-boot/internal/viewstate"
	"github.com/mkdugri-blog/Linux-boot/web"
)

func newTestSite(t *testing.T, mutate func(*config.Config)) *Site {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	tmpl, err := fs.Sub(web.FS, "templates")
	require.NoError(t, err)
	s, err := New(cfg, Sources{Templates: tmpl, Content: web.FS, ContentDir: "content/sections"})
	require.NoError(t, err)
	return s
}

func renderHome(t *testing.T, s *Site, st viewstate.State, static bool) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, s.RenderHome(&buf, st, static))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestRenderHomeInitialState(t *testing.T) {
	doc := renderHome(t, newTestSite(t, nil), viewstate.State{}, false)

	require.Equal(t, viewstate.PlaceholderTitle, strings.TrimSpace(doc.Find("#stepDetails h3").Text()))
	require.Equal(t, viewstate.PlaceholderContent, strings.TrimSpace(doc.Find("#stepDetails p").Text()))
	require.Equal(t, 0, doc.Find(".flowchart-step.active").Length())
	require.Equal(t, boot.Count(), doc.Find(".flowchart-step").Length())

	_, hidden := doc.Find("#mobileMenu").Attr("hidden")
	require.True(t, hidden)

	style, _ := doc.Find("#progressBar").Attr("style")
	require.Contains(t, style, "width: 0%")
	require.Equal(t, 1, doc.Find("#live").Length())
}

func TestRenderHomeSelectedStep(t *testing.T) {
	doc := renderHome(t, newTestSite(t, nil), viewstate.State{ActiveStep: "6"}, false)

	require.Equal(t, "systemd Init System", strings.TrimSpace(doc.Find("#stepDetails h3").Text()))
	require.True(t, strings.HasPrefix(strings.TrimSpace(doc.Find("#stepDetails p").Text()), "systemd is the first userspace process"))

	active := doc.Find(".flowchart-step.active")
	require.Equal(t, 1, active.Length())
	id, _ := active.Attr("data-testid")
	require.Equal(t, "step-systemd", id)
	require.Contains(t, doc.Find("title").Text(), "systemd Init System")
}

func TestRenderHomeUnknownStepShowsPlaceholder(t *testing.T) {
	doc := renderHome(t, newTestSite(t, nil), viewstate.State{ActiveStep: "9"}, false)

	require.Equal(t, viewstate.PlaceholderTitle, strings.TrimSpace(doc.Find("#stepDetails h3").Text()))
	require.Equal(t, 0, doc.Find(".flowchart-step.active").Length())
}

func TestRenderHomeMenuOpen(t *testing.T) {
	doc := renderHome(t, newTestSite(t, nil), viewstate.State{MenuOpen: true}, false)

	menu := doc.Find("#mobileMenu")
	_, hidden := menu.Attr("hidden")
	require.False(t, hidden)
	require.Equal(t, len(nav.Main), menu.Find("a.mobile-link").Length())
	v, _ := doc.Find("#mobileMenuState").Attr("value")
	require.Equal(t, "1", v)
}

func TestRenderHomeSections(t *testing.T) {
	doc := renderHome(t, newTestSite(t, nil), viewstate.State{}, false)

	for _, id := range []string{"overview", "flowchart", "detailed", "conclusion", "stepDetails"} {
		require.Equal(t, 1, doc.Find("#"+id).Length(), id)
	}
	require.Equal(t, 7, doc.Find("#detailed .article-section").Length())
	require.Contains(t, doc.Find("#overview h1").Text(), "From Power Button to Penguin")
	require.Contains(t, doc.Find("footer").Text(), "© 2024 Linux Boot Process Blog. Built for GitHub Pages.")

	href, _ := doc.Find("[data-testid=link-github]").Attr("href")
	require.Equal(t, "https://github.com/Mk-dugri", href)
	require.Equal(t, 1, doc.Find("[data-testid=button-share]").Length())
	require.Equal(t, 1, doc.Find("[data-testid=button-mobile-menu]").Length())
}

func TestRenderHomeBasePath(t *testing.T) {
	s := newTestSite(t, func(c *config.Config) { c.BasePath = "/Linux-boot" })
	doc := renderHome(t, s, viewstate.State{}, true)

	var css []string
	doc.Find("link[rel=stylesheet]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok && !strings.HasPrefix(href, "https://") {
			css = append(css, href)
		}
	})
	require.Equal(t, []string{"/Linux-boot/assets/css/site.css", "/Linux-boot/assets/css/highlight.css"}, css)

	href, _ := doc.Find("[data-testid=step-kernel]").Attr("href")
	require.Equal(t, "/Linux-boot/steps/5/", href)
	_, hasHX := doc.Find("[data-testid=step-kernel]").Attr("hx-get")
	require.False(t, hasHX, "static pages have no fragment endpoints")
	require.Equal(t, 0, doc.Find("#live").Length())
	static, _ := doc.Find("body").Attr("data-static")
	require.Equal(t, "true", static)
}

func TestDocumentResolvesAnchors(t *testing.T) {
	d, err := newTestSite(t, nil).Document()
	require.NoError(t, err)
	require.NoError(t, d.Verify())
	for _, f := range nav.Fragments() {
		require.True(t, d.HasElement(f), f)
	}
	require.True(t, d.HasElement(viewstate.DetailsElementID))
}

func TestRenderNotFound(t *testing.T) {
	s := newTestSite(t, func(c *config.Config) { c.BasePath = "/docs" })
	var buf bytes.Buffer
	require.NoError(t, s.RenderNotFound(&buf, false))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	require.Contains(t, doc.Find("h1").Text(), "404")
	robots, _ := doc.Find("meta[name=robots]").Attr("content")
	require.Equal(t, "noindex", robots)
	href, _ := doc.Find(".topnav-links a").First().Attr("href")
	require.Equal(t, "/docs/#overview", href)
}

func TestStepFragment(t *testing.T) {
	s := newTestSite(t, nil)
	var buf bytes.Buffer
	require.NoError(t, s.Renderer.Fragment(&buf, "frag_step_detail", handlers.BuildStepFragment(viewstate.State{ActiveStep: "2"}, "/")))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	require.Equal(t, "BIOS/UEFI Firmware", strings.TrimSpace(doc.Find(".detail-step h3").Text()))
	oob, _ := doc.Find("#flowchartSteps").Attr("hx-swap-oob")
	require.Equal(t, "true", oob)
	require.Equal(t, 1, doc.Find(".flowchart-step.active").Length())
}

func TestRendererDevModeReparses(t *testing.T) {
	fsys := fstest.MapFS{
		"layouts/base.tmpl":  {Data: []byte(`{{define "base"}}<p>{{template "content" .}}</p>{{end}}`)},
		"partials/frag.tmpl": {Data: []byte(`{{define "frag"}}v1{{end}}`)},
		"pages/home.tmpl":    {Data: []byte(`{{define "content"}}{{.}}{{end}}`)},
	}
	r, err := NewRenderer(fsys, true)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, "home", "hello"))
	require.Equal(t, "<p>hello</p>", buf.String())

	fsys["partials/frag.tmpl"] = &fstest.MapFile{Data: []byte(`{{define "frag"}}v2{{end}}`)}
	buf.Reset()
	require.NoError(t, r.Fragment(&buf, "frag", nil))
	require.Equal(t, "v2", buf.String())

	require.Error(t, r.Page(&buf, "missing", nil))
}

func TestRendererRequiresPages(t *testing.T) {
	_, err := NewRenderer(fstest.MapFS{
		"layouts/base.tmpl": {Data: []byte(`{{define "base"}}{{end}}`)},
	}, false)
	require.Error(t, err)
}
