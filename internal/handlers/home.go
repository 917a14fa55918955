package handlers

import (
	"net/url"
	"time"

	"github.com/mkdugri-blog/Linux-boot/internal/boot"
	"github.com/mkdugri-blog/Linux-boot/internal/content"
	"github.com/mkdugri-blog/Linux-boot/internal/format"
	"github.com/mkdugri-blog/Linux-boot/internal/nav"
	"github.com/mkdugri-blog/Linux-boot/internal/seo"
	"github.com/mkdugri-blog/Linux-boot/internal/share"
	"github.com/mkdugri-blog/Linux-boot/internal/viewstate"
)

const (
	siteTitle       = "Linux Boot Process Explained"
	siteDescription = "From Power Button to Penguin: the Linux boot journey explained, from firmware and GRUB to the kernel, systemd and your desktop."
	authorName      = "Linux Boot Process Blog"
)

// Links are the outbound profile links shown in the conclusion and footer.
type Links struct {
	GitHub   string
	LinkedIn string
}

// StepCard is one flowchart node.
type StepCard struct {
	boot.Step
	Active bool
	// Href deep-links to the page with the step selected.
	Href string
	// FragmentURL is the htmx endpoint returning the detail panel.
	FragmentURL string
}

// HomeOptions carries request and site level inputs for BuildHomeData.
type HomeOptions struct {
	BasePath   string
	SiteURL    string
	Path       string
	Article    *content.Article
	Analytics  Analytics
	Links      Links
	ShareTitle string
	ShareText  string
	// Static marks pages written by the exporter, which has no server
	// endpoints behind it.
	Static bool
}

// HomeData is the view model for the home page.
type HomeData struct {
	Title string
	Lang  string
	SEO   seo.Meta

	Analytics Analytics
	Links     Links

	// Common layout fields
	Path     string
	BasePath string
	Nav      []nav.RenderedItem
	Menu     MenuData
	Static   bool

	State    viewstate.State
	Detail   viewstate.Detail
	Rows     [][]StepCard
	Article  *content.Article
	Reading  string
	Updated  string
	Share    share.Payload
	Progress string
	// LiveURL is the websocket endpoint; empty on static pages.
	LiveURL  string
	StepData []StepJSON
}

// StepFragmentData feeds the detail panel fragment and the out-of-band
// refresh of the flowchart cards.
type StepFragmentData struct {
	Detail viewstate.Detail
	Rows   [][]StepCard
}

// BuildHomeData constructs the view model for the landing page in state st.
func BuildHomeData(st viewstate.State, opts HomeOptions) HomeData {
	base := nav.NormalizeBase(opts.BasePath)
	canonical := seo.AbsoluteURL(opts.SiteURL, nav.Join(base, ""))

	d := HomeData{
		Title:     siteTitle,
		Lang:      "en",
		Analytics: opts.Analytics,
		Links:     opts.Links,
		Path:      opts.Path,
		BasePath:  base,
		Nav:       nav.Build(""),
		Menu:      BuildMenu(st.MenuOpen, base, opts.Static),
		Static:    opts.Static,
		State:     st,
		Detail:    viewstate.DetailFor(st),
		Rows:      buildRows(st, base, opts.Static),
		Article:   opts.Article,
		Share:     share.NewPayload(opts.ShareTitle, opts.ShareText, canonical),
		Progress:  format.Percent(st.ScrollProgress),
		StepData:  StepRecords(),
	}
	if !opts.Static {
		d.LiveURL = nav.Join(base, "live")
	}
	if d.Path == "" {
		d.Path = nav.Join(base, "")
	}

	var updated time.Time
	if opts.Article != nil {
		updated = opts.Article.UpdatedAt
		d.Reading = format.ReadingTime(opts.Article.Words())
		d.Updated = format.FmtDate(updated)
	}

	title := siteTitle
	if d.Detail.Placeholder {
		d.SEO = seo.NewMeta(title, siteDescription, canonical)
	} else {
		title = d.Detail.Title + " | " + siteTitle
		d.SEO = seo.NewMeta(title, d.Detail.Content, seo.AbsoluteURL(opts.SiteURL, StepPath(base, st.ActiveStep, opts.Static)))
	}
	d.Title = title
	d.SEO.JSONLD = []string{
		seo.JSON(seo.WebSite("Linux Boot Process", canonical)),
		seo.JSON(seo.Article(siteTitle, siteDescription, canonical, authorName, format.ISODate(updated))),
		seo.JSON(seo.HowTo("How Linux boots", siteDescription, howToSteps(opts.SiteURL, base, opts.Static))),
	}
	return d
}

// BuildStepFragment returns the detail fragment for st.
func BuildStepFragment(st viewstate.State, base string) StepFragmentData {
	base = nav.NormalizeBase(base)
	return StepFragmentData{
		Detail: viewstate.DetailFor(st),
		Rows:   buildRows(st, base, false),
	}
}

// StepPath is the deep link for a step: a query on the live server, or the
// exported per-step page.
func StepPath(base string, id boot.StepID, static bool) string {
	if static {
		return nav.Join(base, "steps/"+url.PathEscape(string(id))+"/")
	}
	q := url.Values{}
	q.Set("step", string(id))
	return nav.Join(base, "") + "?" + q.Encode()
}

func buildRows(st viewstate.State, base string, static bool) [][]StepCard {
	rows := make([][]StepCard, 2)
	for _, s := range boot.All() {
		card := StepCard{
			Step:   s,
			Active: st.IsActive(s.ID),
			Href:   StepPath(base, s.ID, static),
		}
		if !static {
			card.FragmentURL = nav.Join(base, "steps/"+url.PathEscape(string(s.ID)))
		}
		rows[s.Row()-1] = append(rows[s.Row()-1], card)
	}
	return rows
}

func howToSteps(siteURL, base string, static bool) []seo.HowToStep {
	all := boot.All()
	out := make([]seo.HowToStep, 0, len(all))
	for _, s := range all {
		out = append(out, seo.HowToStep{
			Name: s.Title,
			Text: s.Content,
			URL:  seo.AbsoluteURL(siteURL, StepPath(base, s.ID, static)),
		})
	}
	return out
}
