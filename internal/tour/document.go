package tour

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkdugri-blog/Linux-boot/internal/boot"
	"github.com/mkdugri-blog/Linux-boot/internal/content"
	"github.com/mkdugri-blog/Linux-boot/internal/viewstate"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#58a6ff"))
	heroStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3fb950"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	activeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3fb950"))
	detailBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#a371f7")).Padding(0, 1)
)

// document is the rendered page plus the line each element id starts on.
type document struct {
	lines   []string
	anchors map[string]int
}

func (d *document) mark(id string) { d.anchors[id] = len(d.lines) }

func (d *document) add(block string) {
	d.lines = append(d.lines, strings.Split(block, "\n")...)
}

func (d *document) blank() { d.lines = append(d.lines, "") }

// String joins the lines for the viewport.
func (d *document) String() string { return strings.Join(d.lines, "\n") }

func wrap(width int, s string) string {
	if width < 20 {
		width = 20
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

// buildDocument renders the whole page for the current state at width columns.
func buildDocument(st viewstate.State, article *content.Article, width int) *document {
	d := &document{anchors: make(map[string]int)}

	d.mark("overview")
	d.add(heroStyle.Render("From Power Button to Penguin 🐧"))
	d.add(titleStyle.Render("The Linux Boot Journey Explained"))
	d.blank()
	d.add(wrap(width, "Most of us hit the power button, grab a coffee, and by the time we sit down, Linux is ready for work. "+
		"But in those few seconds, your machine goes through a complex, beautifully orchestrated sequence that "+
		"transforms bare metal into a running operating system."))
	d.blank()

	d.mark("flowchart")
	d.add(titleStyle.Render("Linux Boot Process Flowchart"))
	d.add(mutedStyle.Render("Press 1-7 to learn more about that stage"))
	d.blank()
	for _, s := range boot.All() {
		line := fmt.Sprintf("  %s. %-10s %s", s.ID, s.Label, mutedStyle.Render(s.Caption))
		if st.IsActive(s.ID) {
			line = activeStyle.Render(fmt.Sprintf("▶ %s. %-10s %s", s.ID, s.Label, s.Caption))
		}
		d.add(line)
	}
	d.blank()

	d.mark(viewstate.DetailsElementID)
	detail := viewstate.DetailFor(st)
	inner := width - 4
	body := titleStyle.Render(detail.Title) + "\n" + wrap(inner, detail.Content)
	d.add(detailBorder.Width(inner).Render(body))
	d.blank()

	d.mark("detailed")
	if article != nil {
		for _, sec := range article.Sections {
			d.mark(sec.Anchor)
			d.add(titleStyle.Render(fmt.Sprintf("%d. %s", sec.Number, sec.Title)))
			d.blank()
			for _, para := range strings.Split(sec.Text, "\n\n") {
				d.add(wrap(width, para))
				d.blank()
			}
		}
	}

	d.mark("conclusion")
	d.add(titleStyle.Render("🎯 Conclusion"))
	d.blank()
	d.add(wrap(width, "Next time you hit that power button, remember: you're not just starting a machine, you're watching an elegant "+
		"chain of software handovers, from BIOS/UEFI to GRUB, kernel, systemd, and finally your desktop."))
	d.blank()
	d.add(mutedStyle.Render("© 2024 Linux Boot Process Blog. Built for GitHub Pages."))
	return d
}
