// Package tui provides the Bubble Tea calendar trainer interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kioku-app/kioku/internal/era"
	"github.com/kioku-app/kioku/internal/history"
	"github.com/kioku-app/kioku/internal/model"
	"github.com/kioku-app/kioku/internal/session"
)

// frameInterval drives the live timer readout. Display only; authoritative
// timestamps are sampled inside the engine on each event.
const frameInterval = 50 * time.Millisecond

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	subtleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	accentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	countdownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true).Padding(1, 4)
	activeQStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	doneQStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	pendingQStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Tick messages carry the generation they were scheduled in. Bumping the
// generation on state exit cancels everything still in flight.
type countdownTickMsg struct{ gen int }

type feedbackDoneMsg struct{ gen int }

type frameMsg struct{ gen int }

// Model implements the Bubble Tea calendar trainer UI.
type Model struct {
	engine *session.Engine
	hist   *history.Store

	width  int
	height int

	gen    int
	notice string

	bests     map[model.CalendarRange]int64
	lastScore int64
	hasLast   bool

	autoRange *model.CalendarRange
}

// NewModel constructs the calendar trainer model.
func NewModel(engine *session.Engine, hist *history.Store) *Model {
	m := &Model{
		engine: engine,
		hist:   hist,
		bests:  map[model.CalendarRange]int64{},
	}
	m.loadFooterStats()
	return m
}

// AutoStart makes the trainer skip straight into the countdown for the
// given range on startup. A nil range starts at the idle screen.
func (m *Model) AutoStart(r *model.CalendarRange) {
	m.autoRange = r
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.autoRange != nil {
		m.engine.RequestStart()
		m.engine.SelectRange(*m.autoRange)
		return m.enterCountdown()
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case countdownTickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.engine.CountdownTick()
		if m.engine.State() == session.StatePlaying {
			return m, frameCmd(m.gen)
		}
		return m, countdownCmd(m.gen)
	case frameMsg:
		if msg.gen != m.gen || m.engine.State() != session.StatePlaying {
			return m, nil
		}
		return m, frameCmd(m.gen)
	case feedbackDoneMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.engine.ResolveFeedback()
		if m.engine.State() == session.StateFinished {
			m.gen++
			m.onFinished()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	key := msg.String()

	switch m.engine.State() {
	case session.StateIdle:
		switch key {
		case "enter":
			m.engine.RequestStart()
		case "q", "esc":
			return m, tea.Quit
		}
	case session.StateRangeSelect:
		switch key {
		case "1", "2", "3":
			ranges := model.Ranges()
			m.engine.SelectRange(ranges[int(key[0]-'1')])
			return m, m.enterCountdown()
		case "esc":
			m.leaveState()
			m.engine.Abort()
		case "q":
			return m, tea.Quit
		}
	case session.StateCountdown:
		if key == "esc" {
			m.leaveState()
			m.engine.Abort()
		}
	case session.StatePlaying:
		if key == "esc" {
			m.leaveState()
			m.engine.Abort()
			return m, nil
		}
		if len(key) == 1 && key[0] >= '1' && key[0] <= '7' {
			list := m.engine.DayList()
			choice := list[int(key[0]-'1')]
			if m.engine.SubmitAnswer(choice.Index) {
				return m, feedbackCmd(m.gen)
			}
		}
	case session.StateFinished:
		switch key {
		case "enter":
			m.engine.Restart()
			return m, m.enterCountdown()
		case "r":
			m.engine.ChangeRange()
		case "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

// enterCountdown starts a fresh tick generation for the new countdown.
func (m *Model) enterCountdown() tea.Cmd {
	m.gen++
	m.notice = ""
	return countdownCmd(m.gen)
}

// leaveState cancels ticks scheduled for the state being exited.
func (m *Model) leaveState() {
	m.gen++
}

func (m *Model) onFinished() {
	if err := m.engine.PersistErr(); err != nil {
		logErrf("failed to save session: %v\n", err)
		m.notice = "結果を保存できませんでした"
	}
	if rec := m.engine.LastRecord(); rec != nil {
		m.lastScore = rec.FinalScoreMs
		m.hasLast = true
		if best, ok := m.bests[rec.Range]; !ok || rec.FinalScoreMs < best {
			m.bests[rec.Range] = rec.FinalScoreMs
		}
	}
}

func (m *Model) loadFooterStats() {
	ctx := context.Background()
	records, err := m.hist.All(ctx)
	if err != nil {
		logErrf("failed to load history: %v\n", err)
		return
	}
	for _, r := range model.Ranges() {
		if best := history.BestOf(records, r); best != nil {
			m.bests[r] = best.FinalScoreMs
		}
	}
	if len(records) > 0 {
		m.lastScore = records[0].FinalScoreMs
		m.hasLast = true
	}
}

func countdownCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownTickMsg{gen: gen}
	})
}

func feedbackCmd(gen int) tea.Cmd {
	return tea.Tick(session.FeedbackDelay, func(time.Time) tea.Msg {
		return feedbackDoneMsg{gen: gen}
	})
}

func frameCmd(gen int) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{gen: gen}
	})
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.engine.State() {
	case session.StateIdle:
		content = m.viewIdle()
	case session.StateRangeSelect:
		content = m.viewRangeSelect()
	case session.StateCountdown:
		content = countdownStyle.Render(m.engine.CountdownLabel())
	case session.StatePlaying:
		content = m.viewPlaying()
	case session.StateFinished:
		content = m.viewFinished()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) viewIdle() string {
	lines := []string{
		titleStyle.Render("カレンダー計算"),
		"",
		subtleStyle.Render("5問連続でタイムを計測。"),
		subtleStyle.Render("不正解は +10秒 のペナルティ。"),
		"",
		accentStyle.Render("Enter") + subtleStyle.Render(" ではじめる · ") + accentStyle.Render("q") + subtleStyle.Render(" で終了"),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewRangeSelect() string {
	descs := map[model.CalendarRange]string{
		model.RangeRecent:      "去年 〜 来年",
		model.RangeBirthday:    "過去80年",
		model.RangeCompetition: "1500年 〜 2500年",
	}
	lines := []string{titleStyle.Render("出題範囲を選択"), ""}
	for i, r := range model.Ranges() {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			accentStyle.Render(fmt.Sprintf("[%d]", i+1)),
			r.Label(),
			subtleStyle.Render(descs[r])))
	}
	lines = append(lines, "", subtleStyle.Render("esc で戻る"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewPlaying() string {
	elapsed := model.FormatMillis(m.engine.Elapsed().Milliseconds())
	laps := m.engine.Laps()
	active := m.engine.ActiveIndex()

	header := fmt.Sprintf("%s %s    %s %d / %d",
		subtleStyle.Render("TIMER"),
		accentStyle.Render(elapsed),
		subtleStyle.Render("PROGRESS"),
		active+1, model.QuestionsPerSession)

	lines := []string{header, ""}
	for i, q := range m.engine.Questions() {
		mark := "  "
		style := pendingQStyle
		switch {
		case i < len(laps):
			style = doneQStyle
			if laps[i].Correct {
				mark = correctStyle.Render("✓ ")
			} else {
				mark = incorrectStyle.Render("✗ ")
			}
		case i == active:
			style = activeQStyle
			mark = accentStyle.Render("▶ ")
		}
		label := era.FormatDate(q.Date(), m.engine.Settings().YearMode)
		lines = append(lines, fmt.Sprintf("%s%s", mark, style.Render(
			fmt.Sprintf("%d. %s", i+1, label))))
	}
	lines = append(lines, "", m.renderDayKeys())
	return strings.Join(lines, "\n")
}

func (m *Model) renderDayKeys() string {
	settings := m.engine.Settings()
	parts := make([]string, 0, len(model.DaysJP))
	feedback := m.engine.Feedback()
	for pos, choice := range m.engine.DayList() {
		label := fmt.Sprintf("[%d]%s", pos+1, choice.Label)
		if settings.ShowNumbers {
			label += subtleStyle.Render(fmt.Sprintf("(%d)", choice.Index))
		}
		switch {
		case feedback != nil:
			label = subtleStyle.Render(label)
		case choice.Index == 0:
			label = incorrectStyle.Render(label)
		case choice.Index == 6:
			label = accentStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}

func (m *Model) viewFinished() string {
	rec := m.engine.LastRecord()
	if rec == nil {
		return ""
	}
	lines := []string{
		titleStyle.Render("リザルト"),
		"",
		fmt.Sprintf("%s %s", subtleStyle.Render("TOTAL (WITH PENALTY)"), accentStyle.Render(model.FormatMillis(rec.FinalScoreMs))),
		fmt.Sprintf("%s %s    %s +%ds",
			subtleStyle.Render("RAW"), model.FormatMillis(rec.TotalTimeMs),
			subtleStyle.Render("PENALTY"), rec.PenaltySeconds),
		"",
	}
	for _, lap := range rec.Laps {
		answer := lap.UserAnswer
		mark := correctStyle.Render("✓")
		if !lap.Correct {
			answer = fmt.Sprintf("%s → %s", lap.UserAnswer, lap.CorrectAnswer)
			mark = incorrectStyle.Render("✗")
		}
		lines = append(lines, fmt.Sprintf("%s %d. %s  %s  %s",
			mark, lap.QuestionNumber, lap.Date, answer,
			subtleStyle.Render(model.FormatMillis(lap.TimeMs))))
	}
	if m.notice != "" {
		lines = append(lines, "", noticeStyle.Render(m.notice))
	}
	lines = append(lines, "",
		accentStyle.Render("Enter")+subtleStyle.Render(" もう一度 · ")+
			accentStyle.Render("r")+subtleStyle.Render(" 条件を変える · ")+
			accentStyle.Render("q")+subtleStyle.Render(" 終了"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	segments := []string{}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %s", model.FormatMillis(m.lastScore)))
	}
	r := m.engine.Range()
	if best, ok := m.bests[r]; ok {
		segments = append(segments, fmt.Sprintf("Best(%s) %s", r.Label(), model.FormatMillis(best)))
	}
	if len(segments) == 0 {
		return ""
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
