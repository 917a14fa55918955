package main

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/mkdugri-blog/Linux-boot/internal/config"
	"github.com/mkdugri-blog/Linux-boot/internal/content"
	"github.com/mkdugri-blog/Linux-boot/internal/live"
	mw "github.com/mkdugri-blog/Linux-boot/internal/middleware"
	"github.com/mkdugri-blog/Linux-boot/internal/site"
	"github.com/mkdugri-blog/Linux-boot/web"
)

const contentDir = "content/sections"

// app holds everything the HTTP handlers share.
type app struct {
	cfg    *config.Config
	site   *site.Site
	hub    *live.Hub
	logger *zap.Logger
	public fs.FS

	highlightCSS  []byte
	highlightETag string
}

// templatesFS returns the on-disk templates in dev mode, the embedded ones otherwise.
func templatesFS(c *config.Config) (fs.FS, error) {
	if c.Dev && c.TemplatesDir != "" {
		return os.DirFS(c.TemplatesDir), nil
	}
	return fs.Sub(web.FS, "templates")
}

func publicFS(c *config.Config) (fs.FS, error) {
	if c.PublicDir != "" {
		return os.DirFS(c.PublicDir), nil
	}
	return fs.Sub(web.FS, "public")
}

func newSite(c *config.Config) (*site.Site, error) {
	tmpl, err := templatesFS(c)
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	return site.New(c, site.Sources{Templates: tmpl, Content: web.FS, ContentDir: contentDir, Dev: c.Dev})
}

func newApp(c *config.Config, l *zap.Logger) (*app, error) {
	if l == nil {
		l = zap.NewNop()
	}
	s, err := newSite(c)
	if err != nil {
		return nil, err
	}
	doc, err := s.Document()
	if err != nil {
		return nil, fmt.Errorf("render home for anchors: %w", err)
	}
	pub, err := publicFS(c)
	if err != nil {
		return nil, fmt.Errorf("public assets: %w", err)
	}
	css, err := content.HighlightCSS()
	if err != nil {
		return nil, fmt.Errorf("highlight css: %w", err)
	}
	return &app{
		cfg:           c,
		site:          s,
		hub:           live.NewHub(doc, live.WithLogger(l.Named("live"))),
		logger:        l,
		public:        pub,
		highlightCSS:  []byte(css),
		highlightETag: mw.ETag([]byte(css)),
	}, nil
}

// routes builds the router. Everything except /healthz lives under the base path.
func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(a.logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.HTMX)
	r.Use(mw.BasePath(a.site.BasePath()))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	base := a.site.BasePath()
	if base == "/" {
		a.mount(r)
	} else {
		r.Route(base, a.mount)
	}
	r.NotFound(a.notFound)
	return r
}

func (a *app) mount(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5))
		r.Use(middleware.Timeout(30 * time.Second))

		r.Get("/", a.home)
		r.Get("/steps/{id}", a.step)
		r.Post("/menu", a.menu)
		r.Get("/share", a.share)

		r.Route("/api", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: a.cfg.CORS.AllowedOrigins,
				AllowedMethods: []string{http.MethodGet, http.MethodOptions},
				AllowedHeaders: []string{"Accept", "Content-Type"},
				MaxAge:         300,
			}))
			r.Get("/steps", a.apiSteps)
			r.Get("/steps/{id}", a.apiStep)
		})

		r.Get("/assets/css/highlight.css", a.highlight)
		r.Handle("/assets/*", http.StripPrefix(strings.TrimRight(a.site.BasePath(), "/"), mw.AssetsWithCache(a.public)))
	})
	// The websocket outlives the request timeout and must not be compressed.
	r.Get("/live", a.hub.ServeHTTP)
}
