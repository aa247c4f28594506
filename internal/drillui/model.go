// Package drillui provides the Bubble Tea flash drill interface for the
// number and letter-pair modes.
package drillui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kioku-app/kioku/internal/generator"
	"github.com/kioku-app/kioku/internal/mapping"
)

// recentShown is how many previous items stay on screen.
const recentShown = 5

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	itemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true).Padding(1, 4)
	wordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")).Bold(true)
	recentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the flash drill UI.
type Model struct {
	kind     mapping.Kind
	gen      *generator.Generator
	mappings map[string]string

	current string
	recent  []string

	width  int
	height int
}

// NewModel constructs a drill model with the user's mappings preloaded.
func NewModel(kind mapping.Kind, gen *generator.Generator, mappings map[string]string) *Model {
	m := &Model{
		kind:     kind,
		gen:      gen,
		mappings: mappings,
	}
	m.current = m.draw()
	return m
}

func (m *Model) draw() string {
	if m.kind == mapping.KindLetter {
		return m.gen.LetterPair()
	}
	return m.gen.Number()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "enter", " ":
			m.next()
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) next() {
	m.recent = append([]string{m.current}, m.recent...)
	if len(m.recent) > recentShown {
		m.recent = m.recent[:recentShown]
	}
	m.current = m.draw()
}

// View implements tea.Model.
func (m *Model) View() string {
	var subtitle string
	if m.kind == mapping.KindLetter {
		subtitle = "ひらがな二文字のランダム表示"
	} else {
		subtitle = "00 〜 99 のランダム表示"
	}
	lines := []string{
		titleStyle.Render(m.kind.Title() + "記憶"),
		subtleStyle.Render(subtitle),
		"",
		itemStyle.Render(m.current),
	}
	if word := m.mappings[m.current]; word != "" {
		lines = append(lines, wordStyle.Render(word))
	}
	if len(m.recent) > 0 {
		lines = append(lines, "", recentStyle.Render(strings.Join(m.recent, "  ")))
	}
	lines = append(lines, "", subtleStyle.Render("Enter/Space 次へ · q 終了"))
	content := strings.Join(lines, "\n")
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
