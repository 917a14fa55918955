package seo

import "strings"

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	JSONLD      []string
}

// NewMeta fills OpenGraph and Twitter defaults from the page title and description.
func NewMeta(title, description, canonical string) Meta {
	return Meta{
		Title:       title,
		Description: description,
		Canonical:   canonical,
		Robots:      "index,follow",
		OG: OpenGraph{
			Title:       title,
			Description: description,
			Type:        "article",
			URL:         canonical,
			SiteName:    "Linux Boot Process",
		},
		Twitter: Twitter{Card: "summary"},
	}
}

// AbsoluteURL joins a site origin and a path. Empty siteURL yields the path unchanged.
func AbsoluteURL(siteURL, p string) string {
	siteURL = strings.TrimRight(strings.TrimSpace(siteURL), "/")
	if siteURL == "" {
		return p
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return siteURL + p
}
