// Package tour renders the guide in a terminal. The page's view-state
// controller drives it: digits select a stage, the section menu navigates
// in-page anchors, and viewport scrolling feeds the progress bar.
package tour

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkdugri-blog/Linux-boot/internal/boot"
	"github.com/mkdugri-blog/Linux-boot/internal/content"
	"github.com/mkdugri-blog/Linux-boot/internal/format"
	"github.com/mkdugri-blog/Linux-boot/internal/nav"
	"github.com/mkdugri-blog/Linux-boot/internal/viewstate"
)

const headerHeight = 2

var (
	barFilled = lipgloss.NewStyle().Foreground(lipgloss.Color("#3fb950"))
	barEmpty  = lipgloss.NewStyle().Foreground(lipgloss.Color("#30363d"))
	menuStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#58a6ff")).Padding(0, 1)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
)

// session is shared by every copy of Model; bubbletea runs Update on one
// goroutine, which is the controller's single owner.
type session struct {
	ctrl        *viewstate.Controller
	unsubscribe func()
	dirty       bool
	doc         *document
}

// Model is the bubbletea model of the tour.
type Model struct {
	s        *session
	article  *content.Article
	keys     KeyMap
	viewport viewport.Model
	width    int
	height   int
	ready    bool
	cursor   int
}

// New returns a tour over article in the initial page state.
func New(article *content.Article) Model {
	s := &session{doc: &document{anchors: map[string]int{}}}
	s.ctrl = viewstate.New(viewstate.WithResolver(viewstate.ResolverFunc(func(id string) bool {
		_, ok := s.doc.anchors[id]
		return ok
	})))
	s.unsubscribe = s.ctrl.Subscribe(func(viewstate.State) { s.dirty = true })
	m := Model{s: s, article: article, keys: DefaultKeyMap, width: 80, height: 24}
	m.rebuild()
	return m
}

// State exposes the controller state.
func (m Model) State() viewstate.State { return m.s.ctrl.State() }

// Offset is the first visible document line.
func (m Model) Offset() int { return m.viewport.YOffset }

// AnchorLine returns the document line of element id.
func (m Model) AnchorLine(id string) (int, bool) {
	l, ok := m.s.doc.anchors[id]
	return l, ok
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.rebuild()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.s.unsubscribe()
			return m, tea.Quit
		}
		if m.State().MenuOpen {
			m.handleMenuKeys(msg)
		} else {
			m.handleKeys(msg)
		}
	}

	if m.s.dirty {
		m.s.dirty = false
		m.rebuild()
	}
	m.applyEffects()
	m.syncProgress()
	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Step):
		m.s.ctrl.SelectStep(boot.Normalize(msg.String()))
	case key.Matches(msg, m.keys.Menu):
		m.cursor = 0
		m.s.ctrl.ToggleMenu()
	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
	case key.Matches(msg, m.keys.Home):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.End):
		m.viewport.GotoBottom()
	}
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Menu):
		m.s.ctrl.ToggleMenu()
	case key.Matches(msg, m.keys.Close):
		m.s.ctrl.CloseMenu()
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(nav.Main)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Enter):
		m.s.ctrl.Navigate("#" + nav.Main[m.cursor].Fragment)
	case key.Matches(msg, m.keys.Step):
		m.s.ctrl.SelectStep(boot.Normalize(msg.String()))
	}
}

func (m *Model) rebuild() {
	st := m.s.ctrl.State()
	doc := buildDocument(st, m.article, m.width)
	// Replace in place: the controller's resolver reads this map.
	clear(m.s.doc.anchors)
	for id, line := range doc.anchors {
		m.s.doc.anchors[id] = line
	}
	m.s.doc.lines = doc.lines

	offset := m.viewport.YOffset
	m.viewport.Width = m.width
	m.viewport.Height = m.bodyHeight()
	m.viewport.SetContent(m.s.doc.String())
	m.viewport.SetYOffset(offset)
}

func (m Model) bodyHeight() int {
	h := m.height - headerHeight - 1
	if m.State().MenuOpen {
		h -= len(nav.Main) + 2
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) applyEffects() {
	for _, fx := range m.s.ctrl.Effects() {
		line, ok := m.s.doc.anchors[fx.Target]
		if !ok {
			continue
		}
		if fx.Block == viewstate.BlockCenter {
			line -= m.viewport.Height / 2
		}
		if line < 0 {
			line = 0
		}
		m.viewport.SetYOffset(line)
	}
}

func (m *Model) syncProgress() {
	scrollable := m.viewport.TotalLineCount() - m.viewport.Height
	m.s.ctrl.OnScroll(float64(m.viewport.YOffset), float64(scrollable))
	if m.s.dirty {
		// Progress only changes the header, not the document.
		m.s.dirty = false
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading…"
	}
	st := m.State()
	var b strings.Builder
	b.WriteString(m.progressBar(st.ScrollProgress))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Linux Boot Process  ·  " + format.Percent(st.ScrollProgress)))
	b.WriteString("\n")
	if st.MenuOpen {
		b.WriteString(m.menuView())
		b.WriteString("\n")
	}
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("1-7 stage · m menu · j/k scroll · q quit"))
	return b.String()
}

func (m Model) progressBar(p float64) string {
	width := m.width
	if width <= 0 {
		return ""
	}
	filled := int(p / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return barFilled.Render(strings.Repeat("━", filled)) + barEmpty.Render(strings.Repeat("━", width-filled))
}

func (m Model) menuView() string {
	lines := make([]string, 0, len(nav.Main))
	for i, it := range nav.Main {
		prefix := "  "
		if i == m.cursor {
			prefix = "▸ "
		}
		lines = append(lines, fmt.Sprintf("%s%s", prefix, it.Label))
	}
	return menuStyle.Render(strings.Join(lines, "\n"))
}

// Run starts the interactive tour and blocks until the user quits.
func Run(article *content.Article, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(New(article), opts...).Run()
	return err
}
