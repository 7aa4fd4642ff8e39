// Package picker implements the interactive font picker: a scrollable
// list of the fonts kitty can render, with fuzzy filtering, that
// applies the selection to kitty.conf.
package picker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ihatemodels/kittyfont/internal/kitty"
	"github.com/ihatemodels/kittyfont/internal/ui/styles"
)

// Fonts is the slice of the font service the picker needs.
type Fonts interface {
	Check(ctx context.Context) (kitty.Settings, error)
	List(ctx context.Context) []string
	SetFontRaw(ctx context.Context, name string) error
	Refresh()
}

// Run shows the picker and blocks until the user applies a font or
// quits. Returns the applied font name, or "" when nothing was applied.
func Run(ctx context.Context, svc Fonts, border string) (string, error) {
	p := tea.NewProgram(New(ctx, svc, border), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(Model)
	if !ok {
		return "", nil
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Applied, nil
}

// Model is the picker's Bubble Tea model.
type Model struct {
	// Applied is the font written to kitty.conf, set on success.
	Applied string
	// Err is a fatal error that ended the picker.
	Err error

	ctx    context.Context
	svc    Fonts
	border lipgloss.Style

	fonts   []string // full compatible list
	visible []string // after filtering
	current string   // family currently in kitty.conf

	cursor  int
	scroll  int
	width   int
	height  int
	loading bool

	filtering bool
	query     string

	status string
}

type fontsLoadedMsg struct {
	fonts   []string
	current string
}

type appliedMsg struct {
	name string
	err  error
}

// New builds a picker over the given service. The border style name
// comes from the ui.border config option.
func New(ctx context.Context, svc Fonts, border string) Model {
	return Model{
		ctx:     ctx,
		svc:     svc,
		border:  borderStyle(border),
		loading: true,
	}
}

// Init starts font enumeration.
func (m Model) Init() tea.Cmd {
	return m.loadFonts(false)
}

func (m Model) loadFonts(refresh bool) tea.Cmd {
	return func() tea.Msg {
		if refresh {
			m.svc.Refresh()
		}
		var current string
		if set, err := m.svc.Check(m.ctx); err == nil || errors.Is(err, kitty.ErrNotConfigured) {
			current = set.Family
		}
		return fontsLoadedMsg{fonts: m.svc.List(m.ctx), current: current}
	}
}

func (m Model) applyFont(name string) tea.Cmd {
	return func() tea.Msg {
		return appliedMsg{name: name, err: m.svc.SetFontRaw(m.ctx, name)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case fontsLoadedMsg:
		m.fonts = msg.fonts
		m.current = msg.current
		m.loading = false
		m.applyFilter()
		return m, nil

	case appliedMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, tea.Quit
		}
		m.Applied = msg.name
		return m, tea.Quit

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFiltering(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m Model) updateFiltering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.query = ""
		m.applyFilter()
	case "enter":
		m.filtering = false
	case "backspace":
		if len(m.query) > 0 {
			m.query = m.query[:len(m.query)-1]
			m.applyFilter()
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.query += string(msg.Runes)
			m.applyFilter()
		}
	}
	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.scroll {
				m.scroll = m.cursor
			}
		}

	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
			if m.cursor >= m.scroll+m.pageSize() {
				m.scroll = m.cursor - m.pageSize() + 1
			}
		}

	case "g":
		m.cursor = 0
		m.scroll = 0

	case "G":
		if len(m.visible) > 0 {
			m.cursor = len(m.visible) - 1
			if m.cursor >= m.pageSize() {
				m.scroll = m.cursor - m.pageSize() + 1
			}
		}

	case "/":
		m.filtering = true
		m.query = ""
		m.applyFilter()

	case "r":
		m.loading = true
		m.status = "refreshing font list..."
		return m, m.loadFonts(true)

	case "enter":
		if m.cursor < len(m.visible) {
			return m, m.applyFont(m.visible[m.cursor])
		}
	}
	return m, nil
}

// applyFilter recomputes the visible slice from the query and clamps
// the cursor into it.
func (m *Model) applyFilter() {
	if m.query == "" {
		m.visible = m.fonts
	} else {
		matches := fuzzy.Find(strings.ToLower(m.query), lowered(m.fonts))
		m.visible = make([]string, len(matches))
		for i, match := range matches {
			m.visible[i] = m.fonts[match.Index]
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scroll = 0
}

func lowered(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}
	return out
}

func (m Model) pageSize() int {
	n := m.height - 8
	if n < 1 {
		n = 1
	}
	return n
}

// View renders the picker.
func (m Model) View() string {
	var b strings.Builder

	header := " Set font "
	if len(m.fonts) > 0 {
		header += styles.Help.Render(fmt.Sprintf("(%d compatible)", len(m.fonts)))
	}
	b.WriteString(styles.Title.Render(header))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(styles.Status.Render("  listing fonts..."))
	case len(m.fonts) == 0:
		b.WriteString(styles.Help.Render("  No compatible fonts found."))
		b.WriteString("\n")
		b.WriteString(styles.Help.Render("  Check that fc-list and kitty are on your PATH, then press r."))
	case len(m.visible) == 0:
		b.WriteString(styles.Help.Render("  Nothing matches " + m.query))
	default:
		b.WriteString(m.viewFonts())
	}

	b.WriteString("\n\n")
	if m.filtering || m.query != "" {
		b.WriteString(styles.Input.Render("/" + m.query))
		b.WriteString("\n")
	}
	if m.status != "" && !m.loading {
		b.WriteString(styles.Status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(styles.Help.Render("↑/k ↓/j navigate • g/G top/bottom • / filter • r refresh • enter apply • q quit"))

	return m.border.Render(b.String())
}

func (m Model) viewFonts() string {
	var b strings.Builder

	page := m.pageSize()
	if page > len(m.visible) {
		page = len(m.visible)
	}
	end := m.scroll + page
	if end > len(m.visible) {
		end = len(m.visible)
	}

	if m.scroll > 0 {
		b.WriteString(styles.Help.Render("  ↑ more above"))
		b.WriteString("\n")
	}

	for i := m.scroll; i < end; i++ {
		font := m.visible[i]
		switch {
		case i == m.cursor:
			b.WriteString(styles.Cursor.Render("▸ "))
			b.WriteString(styles.Selected.Render(font))
		case font == m.current:
			b.WriteString("  ")
			b.WriteString(styles.Current.Render(font))
		default:
			b.WriteString("  ")
			b.WriteString(styles.Item.Render(font))
		}
		if font == m.current {
			b.WriteString(styles.Help.Render("  (current)"))
		}
		b.WriteString("\n")
	}

	if end < len(m.visible) {
		b.WriteString(styles.Help.Render("  ↓ more below"))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func borderStyle(name string) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 1)
	switch name {
	case "none":
		return s
	case "normal":
		return s.Border(lipgloss.NormalBorder()).BorderForeground(styles.Subtle)
	case "double":
		return s.Border(lipgloss.DoubleBorder()).BorderForeground(styles.Subtle)
	default:
		return s.Border(lipgloss.RoundedBorder()).BorderForeground(styles.Subtle)
	}
}
