// Package content loads the long-form article that follows the flowchart.
// Sections are markdown files with a yaml front matter block.
package content

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a section cannot be located.
var ErrNotFound = errors.New("content: not found")

// Section is one numbered chapter of the article.
type Section struct {
	Slug      string
	Anchor    string // element id of the section on the page
	Number    int
	Title     string
	Summary   string
	Body      template.HTML // sanitized
	Text      string        // plain text rendering for terminals
	Words     int
	UpdatedAt time.Time
}

// Article is the ordered set of sections.
type Article struct {
	Sections  []Section
	UpdatedAt time.Time
}

type frontMatter struct {
	Title     string `yaml:"title"`
	Number    int    `yaml:"number"`
	Anchor    string `yaml:"anchor"`
	Summary   string `yaml:"summary"`
	UpdatedAt string `yaml:"updated_at"`
}

// Load reads every *.md file under dir in fsys, renders it, and returns the
// sections ordered by number. Any parse failure aborts the load.
func Load(fsys fs.FS, dir string) (*Article, error) {
	return LoadWith(fsys, dir, NewRenderer())
}

// LoadWith is Load with an explicit renderer.
func LoadWith(fsys fs.FS, dir string, r *Renderer) (*Article, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", dir, err)
	}
	a := &Article{}
	seen := map[string]string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		file := path.Join(dir, e.Name())
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", file, err)
		}
		sec, err := parseSection(e.Name(), raw, r)
		if err != nil {
			return nil, fmt.Errorf("content: %s: %w", file, err)
		}
		if prev, dup := seen[sec.Anchor]; dup {
			return nil, fmt.Errorf("content: anchor %q used by %s and %s", sec.Anchor, prev, file)
		}
		seen[sec.Anchor] = file
		if sec.UpdatedAt.After(a.UpdatedAt) {
			a.UpdatedAt = sec.UpdatedAt
		}
		a.Sections = append(a.Sections, sec)
	}
	if len(a.Sections) == 0 {
		return nil, fmt.Errorf("content: no sections under %s", dir)
	}
	sort.SliceStable(a.Sections, func(i, j int) bool {
		return a.Sections[i].Number < a.Sections[j].Number
	})
	return a, nil
}

func parseSection(name string, raw []byte, r *Renderer) (Section, error) {
	number, slug := splitFileName(name)
	fm, body := splitFrontMatter(string(raw))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Section{}, fmt.Errorf("parse front matter: %w", err)
		}
	}
	sec := Section{
		Slug:      sanitizeSlug(slug),
		Number:    number,
		Title:     strings.TrimSpace(front.Title),
		Summary:   strings.TrimSpace(front.Summary),
		Anchor:    sanitizeSlug(front.Anchor),
		UpdatedAt: parseContentDate(front.UpdatedAt),
	}
	if sec.Slug == "" {
		return Section{}, ErrNotFound
	}
	if front.Number > 0 {
		sec.Number = front.Number
	}
	if sec.Anchor == "" {
		sec.Anchor = sec.Slug
	}
	if sec.Title == "" {
		sec.Title = prettifySlug(sec.Slug)
	}
	html, text, err := r.Render([]byte(body))
	if err != nil {
		return Section{}, err
	}
	sec.Body = html
	sec.Text = text
	sec.Words = len(strings.Fields(text))
	return sec, nil
}

// Section returns the section with the given slug.
func (a *Article) Section(slug string) (Section, error) {
	slug = sanitizeSlug(slug)
	if a == nil || slug == "" {
		return Section{}, ErrNotFound
	}
	for _, s := range a.Sections {
		if s.Slug == slug {
			return s, nil
		}
	}
	return Section{}, ErrNotFound
}

// Anchors returns the element ids of all sections in order.
func (a *Article) Anchors() []string {
	if a == nil {
		return nil
	}
	out := make([]string, 0, len(a.Sections))
	for _, s := range a.Sections {
		out = append(out, s.Anchor)
	}
	return out
}

// Words is the total word count of the article body.
func (a *Article) Words() int {
	if a == nil {
		return 0
	}
	n := 0
	for _, s := range a.Sections {
		n += s.Words
	}
	return n
}

// splitFileName turns "06-systemd.md" into (6, "systemd").
func splitFileName(name string) (int, string) {
	base := strings.TrimSuffix(name, path.Ext(name))
	if i := strings.IndexByte(base, '-'); i > 0 {
		if n, err := strconv.Atoi(base[:i]); err == nil {
			return n, base[i+1:]
		}
	}
	return 0, base
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
		"2006-1-2",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return slug
	}
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" {
		return ""
	}
	if strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\ #`) {
		return ""
	}
	return slug
}
