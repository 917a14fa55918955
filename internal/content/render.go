package content

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

const highlightStyle = "monokai"

// Renderer converts section markdown into sanitized HTML and plain text.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer builds the markdown pipeline used for article sections.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &Renderer{md: md, policy: newSectionPolicy()}
}

func newSectionPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("pre", "code", "span", "div")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Render returns the sanitized HTML and the plain text form of src.
func (r *Renderer) Render(src []byte) (template.HTML, string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", "", fmt.Errorf("convert markdown: %w", err)
	}
	safe := r.policy.SanitizeBytes(buf.Bytes())
	doc := r.md.Parser().Parse(text.NewReader(src))
	return template.HTML(safe), plainText(doc, src), nil
}

// HighlightCSS returns the stylesheet matching the classes emitted for code blocks.
func HighlightCSS() (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(highlightStyle)); err != nil {
		return "", fmt.Errorf("content: highlight css: %w", err)
	}
	return buf.String(), nil
}

func plainText(doc ast.Node, src []byte) string {
	var blocks []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if t := blockText(n, src, ""); t != "" {
			blocks = append(blocks, t)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func blockText(n ast.Node, src []byte, indent string) string {
	switch node := n.(type) {
	case *ast.List:
		idx := node.Start
		if idx == 0 {
			idx = 1
		}
		var items []string
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			bullet := "• "
			if node.IsOrdered() {
				bullet = strconv.Itoa(idx) + ". "
				idx++
			}
			var parts []string
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				if _, nested := c.(*ast.List); nested {
					parts = append(parts, blockText(c, src, indent+"  "))
					continue
				}
				parts = append(parts, inlineText(c, src))
			}
			items = append(items, indent+bullet+strings.Join(parts, "\n"))
		}
		return strings.Join(items, "\n")
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var b strings.Builder
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.WriteString(indent + "    ")
			b.Write(seg.Value(src))
		}
		return strings.TrimRight(b.String(), "\n")
	default:
		return inlineText(n, src)
	}
}

func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				b.Write(t.Segment.Value(src))
				if t.HardLineBreak() {
					b.WriteByte('\n')
				} else if t.SoftLineBreak() {
					b.WriteByte(' ')
				}
			case *ast.String:
				b.Write(t.Value)
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
