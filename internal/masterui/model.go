// Package masterui provides the Bubble Tea mapping editor interface.
package masterui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kioku-app/kioku/internal/mapping"
	"github.com/kioku-app/kioku/internal/store"
)

// maxVisible caps the rendered rows; the search box narrows the rest.
const maxVisible = 50

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	rowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the mapping editor UI.
type Model struct {
	kind     mapping.Kind
	kv       store.KV
	keys     []string
	mappings map[string]string

	search   textinput.Model
	value    textinput.Model
	view     viewport.Model
	filtered []string
	selected int
	editing  bool
	errMsg   string

	width  int
	height int
}

// NewModel constructs a mapping editor for the given kind.
func NewModel(kind mapping.Kind, kv store.KV, mappings map[string]string) *Model {
	search := textinput.New()
	search.Placeholder = "組み合わせを検索..."
	search.Prompt = "検索: "
	search.Focus()

	value := textinput.New()
	value.Placeholder = "関連ワードを入力"
	value.Prompt = ""

	m := &Model{
		kind:     kind,
		kv:       kv,
		keys:     mapping.Keys(kind),
		mappings: mappings,
		search:   search,
		value:    value,
		view:     viewport.New(0, 0),
	}
	m.refilter()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = msg.Width
		m.view.Height = maxInt(msg.Height-6, 1)
		m.refreshRows()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m *Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "up":
		if m.selected > 0 {
			m.selected--
		}
		m.refreshRows()
		return m, nil
	case "down":
		if m.selected < m.visibleCount()-1 {
			m.selected++
		}
		m.refreshRows()
		return m, nil
	case "enter":
		if m.visibleCount() > 0 {
			m.editing = true
			m.value.SetValue(m.mappings[m.filtered[m.selected]])
			m.value.Focus()
			m.search.Blur()
			m.refreshRows()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refilter()
	return m, cmd
}

func (m *Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopEditing()
		return m, nil
	case "enter":
		m.commitValue()
		m.stopEditing()
		return m, nil
	}
	var cmd tea.Cmd
	m.value, cmd = m.value.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.value.Blur()
	m.search.Focus()
	m.refreshRows()
}

// commitValue persists the edited word immediately.
func (m *Model) commitValue() {
	key := m.filtered[m.selected]
	word := strings.TrimSpace(m.value.Value())
	if word == "" {
		delete(m.mappings, key)
	} else {
		m.mappings[key] = word
	}
	if err := mapping.Save(context.Background(), m.kv, m.kind, m.mappings); err != nil {
		logErrf("failed to save mappings: %v\n", err)
		m.errMsg = "保存できませんでした"
		return
	}
	m.errMsg = ""
}

func (m *Model) refilter() {
	m.filtered = mapping.Filter(m.keys, m.mappings, strings.TrimSpace(m.search.Value()))
	if m.selected >= m.visibleCount() {
		m.selected = maxInt(m.visibleCount()-1, 0)
	}
	m.refreshRows()
}

func (m *Model) visibleCount() int {
	if len(m.filtered) > maxVisible {
		return maxVisible
	}
	return len(m.filtered)
}

func (m *Model) refreshRows() {
	rows := make([]string, 0, m.visibleCount()+1)
	for i := 0; i < m.visibleCount(); i++ {
		key := m.filtered[i]
		word := m.mappings[key]
		if word == "" {
			word = subtleStyle.Render("—")
		}
		if i == m.selected && m.editing {
			word = m.value.View()
		}
		line := fmt.Sprintf("%s  %s", keyStyle.Render(key), word)
		if i == m.selected {
			line = selectedStyle.Render("> ") + line
		} else {
			line = rowStyle.Render("  ") + line
		}
		rows = append(rows, line)
	}
	if len(m.filtered) > maxVisible {
		rows = append(rows, subtleStyle.Render(
			fmt.Sprintf("上位%d件のみ表示。検索でさらに絞り込んでください。", maxVisible)))
	}
	m.view.SetContent(strings.Join(rows, "\n"))
	m.scrollToSelected()
}

func (m *Model) scrollToSelected() {
	if m.view.Height <= 0 {
		return
	}
	if m.selected < m.view.YOffset {
		m.view.SetYOffset(m.selected)
	} else if m.selected >= m.view.YOffset+m.view.Height {
		m.view.SetYOffset(m.selected - m.view.Height + 1)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	header := fmt.Sprintf("%s %s",
		titleStyle.Render(m.kind.Title()+" マスター登録"),
		subtleStyle.Render(fmt.Sprintf("%d件表示中", len(m.filtered))))
	help := "↑/↓ 選択 · Enter 編集 · esc 終了"
	if m.editing {
		help = "Enter 保存 · esc キャンセル"
	}
	parts := []string{header, m.search.View(), "", m.view.View(), subtleStyle.Render(help)}
	if m.errMsg != "" {
		parts = append(parts, errorStyle.Render(m.errMsg))
	}
	return strings.Join(parts, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
