package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/mkdugri-blog/Linux-boot/internal/format"
	"github.com/mkdugri-blog/Linux-boot/internal/handlers"
	"github.com/mkdugri-blog/Linux-boot/internal/logging"
	"github.com/mkdugri-blog/Linux-boot/internal/middleware"
	"github.com/mkdugri-blog/Linux-boot/internal/nav"

	"go.uber.org/zap"
)

// Renderer executes the page and fragment templates. Pages share the layouts
// and partials but each page gets its own set so they can all define "content".
type Renderer struct {
	fsys  fs.FS
	dev   bool
	cache *templateSet
}

type templateSet struct {
	shared *template.Template
	pages  map[string]*template.Template
}

// CardsData is the argument of the flowchart_cards template.
type CardsData struct {
	Rows [][]handlers.StepCard
	OOB  bool
}

// NewRenderer parses the templates under fsys (layouts/, partials/, pages/).
// In dev mode templates are reparsed on every render so edits show up
// without a restart; parsing still happens once here to fail fast.
func NewRenderer(fsys fs.FS, dev bool) (*Renderer, error) {
	set, err := parseTemplates(fsys)
	if err != nil {
		return nil, err
	}
	r := &Renderer{fsys: fsys, dev: dev}
	if !dev {
		r.cache = set
	}
	return r, nil
}

// Funcs is the template function map.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"now": time.Now,
		"asset": func(base, p string) string {
			return nav.Join(base, "assets/"+strings.TrimPrefix(p, "/"))
		},
		"joinBase": nav.Join,
		"pct":      format.Percent,
		// JSON-LD payloads are produced by encoding/json, never from user input.
		"jsonld": func(s string) template.JS { return template.JS(s) },
		"cards": func(rows [][]handlers.StepCard, oob bool) CardsData {
			return CardsData{Rows: rows, OOB: oob}
		},
	}
}

func parseTemplates(fsys fs.FS) (*templateSet, error) {
	var sharedFiles []string
	for _, dir := range []string{"layouts", "partials"} {
		matches, err := fs.Glob(fsys, dir+"/*.tmpl")
		if err != nil {
			return nil, err
		}
		sharedFiles = append(sharedFiles, matches...)
	}
	if len(sharedFiles) == 0 {
		return nil, fmt.Errorf("no layout or partial templates found")
	}
	shared, err := template.New("_root").Funcs(Funcs()).ParseFS(fsys, sharedFiles...)
	if err != nil {
		return nil, fmt.Errorf("parse shared templates: %w", err)
	}

	pageFiles, err := fs.Glob(fsys, "pages/*.tmpl")
	if err != nil {
		return nil, err
	}
	if len(pageFiles) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}
	set := &templateSet{shared: shared, pages: make(map[string]*template.Template, len(pageFiles))}
	for _, f := range pageFiles {
		clone, err := shared.Clone()
		if err != nil {
			return nil, err
		}
		t, err := clone.ParseFS(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", f, err)
		}
		set.pages[strings.TrimSuffix(path.Base(f), ".tmpl")] = t
	}
	return set, nil
}

func (r *Renderer) templates() (*templateSet, error) {
	if r.dev || r.cache == nil {
		return parseTemplates(r.fsys)
	}
	return r.cache, nil
}

// Pages lists the available page names.
func (r *Renderer) Pages() ([]string, error) {
	set, err := r.templates()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(set.pages))
	for name := range set.pages {
		out = append(out, name)
	}
	return out, nil
}

// Page executes the base layout with the named page.
func (r *Renderer) Page(w io.Writer, page string, data any) error {
	set, err := r.templates()
	if err != nil {
		return err
	}
	t, ok := set.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return t.ExecuteTemplate(w, "base", data)
}

// Fragment executes a single partial template, e.g. "frag_step_detail".
func (r *Renderer) Fragment(w io.Writer, name string, data any) error {
	set, err := r.templates()
	if err != nil {
		return err
	}
	return set.shared.ExecuteTemplate(w, name, data)
}

// HTML renders a page into a buffer and writes it with status. Template
// failures become a 500 instead of a half-written page.
func (r *Renderer) HTML(w http.ResponseWriter, req *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := r.Page(&buf, page, data); err != nil {
		r.fail(w, req, "template exec error", err)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

// HTMLFragment renders a partial for htmx swaps.
func (r *Renderer) HTMLFragment(w http.ResponseWriter, req *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := r.Fragment(&buf, name, data); err != nil {
		r.fail(w, req, "fragment exec error", err)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func (r *Renderer) fail(w http.ResponseWriter, req *http.Request, msg string, err error) {
	logging.FromContext(req.Context()).Error(msg, zap.Error(err))
	middleware.WriteError(w, req, http.StatusInternalServerError, fmt.Sprintf("%s: %v", msg, err))
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
