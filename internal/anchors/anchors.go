// Package anchors inspects rendered pages for element ids and in-page links
// so that "#fragment" navigation can be resolved and verified.
package anchors

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Link is an in-page link found in a document.
type Link struct {
	Href     string // "#detailed"
	Fragment string // "detailed"
	Text     string
}

// Document indexes the ids and in-page links of an HTML page.
type Document struct {
	ids   map[string]int
	links []Link
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("anchors: parse html: %w", err)
	}
	d := &Document{ids: map[string]int{}}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id := attr(n, "id"); id != "" {
				d.ids[id]++
			}
			if n.Data == "a" {
				if href := attr(n, "href"); strings.HasPrefix(href, "#") {
					d.links = append(d.links, Link{
						Href:     href,
						Fragment: strings.TrimPrefix(href, "#"),
						Text:     strings.Join(strings.Fields(textContent(n)), " "),
					})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return d, nil
}

// ParseString is Parse for an in-memory page.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// HasElement reports whether an element with the given id exists.
func (d *Document) HasElement(id string) bool {
	if d == nil || id == "" {
		return false
	}
	return d.ids[id] > 0
}

// IDs returns all element ids, sorted.
func (d *Document) IDs() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.ids))
	for id := range d.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Links returns the in-page links in document order.
func (d *Document) Links() []Link {
	if d == nil {
		return nil
	}
	out := make([]Link, len(d.links))
	copy(out, d.links)
	return out
}

// Unresolved returns the in-page links whose target id does not exist.
// A bare "#" is treated as a link to the top of the page and never reported.
func (d *Document) Unresolved() []Link {
	var out []Link
	for _, l := range d.Links() {
		if l.Fragment == "" {
			continue
		}
		if !d.HasElement(l.Fragment) {
			out = append(out, l)
		}
	}
	return out
}

// Duplicates returns ids that appear on more than one element, sorted.
func (d *Document) Duplicates() []string {
	if d == nil {
		return nil
	}
	var out []string
	for id, n := range d.ids {
		if n > 1 {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Verify returns an error describing unresolved links and duplicate ids.
func (d *Document) Verify() error {
	var problems []string
	for _, l := range d.Unresolved() {
		problems = append(problems, fmt.Sprintf("link %s (%q) has no target", l.Href, l.Text))
	}
	for _, id := range d.Duplicates() {
		problems = append(problems, fmt.Sprintf("id %q is not unique", id))
	}
	if len(problems) > 0 {
		return fmt.Errorf("anchors: %s", strings.Join(problems, "; "))
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
