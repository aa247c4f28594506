// Package historyui provides the Bubble Tea history browser.
package historyui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kioku-app/kioku/internal/history"
	"github.com/kioku-app/kioku/internal/model"
	"github.com/kioku-app/kioku/internal/stats"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	bestStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	missStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the history browser UI.
type Model struct {
	records []model.CalendarSessionRecord

	view   viewport.Model
	width  int
	height int
}

// NewModel constructs a history browser over the given records
// (most-recent-first).
func NewModel(records []model.CalendarSessionRecord) *Model {
	m := &Model{
		records: records,
		view:    viewport.New(0, 0),
	}
	m.refreshContent()
	return m
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
		m.view.Width = msg.Width
		m.view.Height = maxInt(msg.Height-7, 1)
		m.refreshContent()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *Model) refreshContent() {
	if len(m.records) == 0 {
		m.view.SetContent(subtleStyle.Render("履歴がありません。まずは練習を開始しましょう！"))
		return
	}
	headers := []string{"日時", "範囲", "スコア", "ペナルティ", "正解"}
	rows := make([][]string, 0, len(m.records))
	for _, rec := range m.records {
		penalty := "-"
		if rec.PenaltySeconds > 0 {
			penalty = fmt.Sprintf("+%ds", rec.PenaltySeconds)
		}
		rows = append(rows, []string{
			time.UnixMilli(rec.Timestamp).Format("2006-01-02 15:04"),
			rec.Range.Label(),
			model.FormatMillis(rec.FinalScoreMs),
			penalty,
			m.correctBadge(rec),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true}
	m.view.SetContent(strings.Join(stats.FormatTable(headers, rows, rightAlign), "\n"))
}

func (m *Model) correctBadge(rec model.CalendarSessionRecord) string {
	if rec.IsCorrectAll {
		return correctStyle.Render("✓")
	}
	return missStyle.Render(fmt.Sprintf("%d/%d", rec.CorrectCount(), model.QuestionsPerSession))
}

func (m *Model) renderBests() string {
	parts := make([]string, 0, 3)
	for _, r := range model.Ranges() {
		score := "--.--s"
		if best := history.BestOf(m.records, r); best != nil {
			score = model.FormatMillis(best.FinalScoreMs)
		}
		parts = append(parts, fmt.Sprintf("%s %s", subtleStyle.Render(r.Label()), bestStyle.Render(score)))
	}
	return strings.Join(parts, "   ")
}

// View implements tea.Model.
func (m *Model) View() string {
	parts := []string{
		titleStyle.Render("過去のデータ"),
		"",
		subtleStyle.Render("PERSONAL BESTS"),
		m.renderBests(),
		"",
		m.view.View(),
		subtleStyle.Render("↑/↓ スクロール · q 終了"),
	}
	return strings.Join(parts, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
