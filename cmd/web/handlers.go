package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mkdugri-blog/Linux-boot/internal/boot"
	"github.com/mkdugri-blog/Linux-boot/internal/handlers"
	"github.com/mkdugri-blog/Linux-boot/internal/logging"
	mw "github.com/mkdugri-blog/Linux-boot/internal/middleware"
	"github.com/mkdugri-blog/Linux-boot/internal/nav"
	"github.com/mkdugri-blog/Linux-boot/internal/seo"
	"github.com/mkdugri-blog/Linux-boot/internal/share"
	"github.com/mkdugri-blog/Linux-boot/internal/site"
	"github.com/mkdugri-blog/Linux-boot/internal/viewstate"
)

// home renders the full page. ?step=N&menu=1 pre-select the view state.
func (a *app) home(w http.ResponseWriter, r *http.Request) {
	ctrl := viewstate.New(viewstate.WithState(viewstate.FromQuery(r.URL.Query())))
	a.site.Renderer.HTML(w, r, http.StatusOK, site.PageHome, a.site.Home(ctrl.State(), r.URL.Path, false))
}

// step selects a stage. htmx gets the detail fragment plus an out-of-band
// flowchart refresh; browsers without JS get the full page.
func (a *app) step(w http.ResponseWriter, r *http.Request) {
	id := boot.Normalize(chi.URLParam(r, "id"))
	ctrl := viewstate.New(viewstate.WithState(viewstate.FromQuery(r.URL.Query())))
	found := ctrl.SelectStep(id)
	if !found {
		logging.FromContext(r.Context()).Debug("step not found", zap.String("step", string(id)))
	}

	base := mw.BasePathFromContext(r.Context())
	if !mw.IsHTMX(r.Context()) {
		a.site.Renderer.HTML(w, r, http.StatusOK, site.PageHome, a.site.Home(ctrl.State(), r.URL.Path, false))
		return
	}
	if found {
		mw.PushURL(w, handlers.StepPath(base, id, false))
	}
	a.site.Renderer.HTMLFragment(w, r, http.StatusOK, "frag_step_detail", handlers.BuildStepFragment(ctrl.State(), base))
}

// menu toggles the mobile menu. The form carries the current flag.
func (a *app) menu(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	st := viewstate.FromQuery(r.Form)
	ctrl := viewstate.New(viewstate.WithState(viewstate.State{MenuOpen: st.MenuOpen}))
	ctrl.ToggleMenu()

	base := mw.BasePathFromContext(r.Context())
	if !mw.IsHTMX(r.Context()) {
		target := nav.Join(base, "")
		if q := ctrl.State().Query().Encode(); q != "" {
			target += "?" + q
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	a.site.Renderer.HTMLFragment(w, r, http.StatusOK, "frag_menu", handlers.BuildMenu(ctrl.State().MenuOpen, base, false))
}

// share plans the share action from the browser's capabilities. The browser
// performs the platform call when it receives the share:plan event.
func (a *app) share(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	caps := share.Capabilities{
		NativeShare: share.ParseFlag(q.Get("native")),
		Clipboard:   share.ParseFlag(q.Get("clipboard")),
	}
	base := mw.BasePathFromContext(r.Context())
	target := nav.Join(base, "")
	if id := boot.Normalize(q.Get("step")); boot.Valid(id) {
		target = handlers.StepPath(base, id, false)
	}
	origin := a.cfg.SiteURL
	if origin == "" {
		origin = requestOrigin(r)
	}
	outcome := share.Plan(share.NewPayload(a.cfg.Share.Title, a.cfg.Share.Text, seo.AbsoluteURL(origin, target)), caps)

	if !mw.IsHTMX(r.Context()) {
		mw.WriteJSON(w, http.StatusOK, outcome)
		return
	}
	if err := mw.Trigger(w, "share:plan", outcome); err != nil {
		mw.WriteError(w, r, http.StatusInternalServerError, "encode share plan")
		return
	}
	a.site.Renderer.HTMLFragment(w, r, http.StatusOK, "frag_share", outcome)
}

func (a *app) apiSteps(w http.ResponseWriter, r *http.Request) {
	mw.WriteJSON(w, http.StatusOK, handlers.StepRecords())
}

func (a *app) apiStep(w http.ResponseWriter, r *http.Request) {
	s, err := boot.Get(boot.Normalize(chi.URLParam(r, "id")))
	if err != nil {
		mw.WriteJSONError(w, http.StatusNotFound, "step not found")
		return
	}
	mw.WriteJSON(w, http.StatusOK, handlers.StepRecord(s))
}

func (a *app) highlight(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=604800, stale-while-revalidate=86400")
	w.Header().Set("ETag", a.highlightETag)
	if r.Header.Get("If-None-Match") == a.highlightETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(a.highlightCSS)
}

func (a *app) notFound(w http.ResponseWriter, r *http.Request) {
	if mw.IsHTMX(r.Context()) {
		mw.WriteError(w, r, http.StatusNotFound, "not found")
		return
	}
	a.site.Renderer.HTML(w, r, http.StatusNotFound, site.PageNotFound, handlers.BuildNotFoundData(a.site.Options(r.URL.Path, false)))
}

func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
