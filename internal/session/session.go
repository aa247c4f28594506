// Package session implements the calendar trainer state machine.
package session

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/kioku-app/kioku/internal/clock"
	"github.com/kioku-app/kioku/internal/era"
	"github.com/kioku-app/kioku/internal/generator"
	"github.com/kioku-app/kioku/internal/history"
	"github.com/kioku-app/kioku/internal/model"
)

// State is the session lifecycle position.
type State int

// Session states.
const (
	StateIdle State = iota
	StateRangeSelect
	StateCountdown
	StatePlaying
	StateFinished
)

// FeedbackDelay is how long correct/incorrect feedback stays on screen.
// Further answers are rejected while it is pending.
const FeedbackDelay = 300 * time.Millisecond

// CountdownStartLabel is shown when the countdown reaches zero, one tick
// before the quiz begins.
const CountdownStartLabel = "START!"

// Feedback marks a just-answered question.
type Feedback struct {
	Index   int
	Correct bool
}

// DayChoice is one entry of the answer-choice list. Index is the weekday
// index (0 = Sunday) regardless of list position.
type DayChoice struct {
	Label string
	Index int
}

// Engine owns the session lifecycle: idle, range selection, countdown,
// play, and finish. All transitions happen synchronously inside method
// calls; timers live with the caller and must be cancelled on state exit.
type Engine struct {
	settings model.CalendarSettings
	clk      clock.Clock
	gen      *generator.Generator
	log      *history.Store

	newID      func() string
	wallClock  func() time.Time
	formatDate func(time.Time, model.YearMode) string

	state      State
	selected   model.CalendarRange
	questions  []model.Question
	laps       []model.LapRecord
	active     int
	countdown  int
	startAt    time.Duration
	endAt      time.Duration
	feedback   *Feedback
	lastRecord *model.CalendarSessionRecord
	persistErr error
}

// New builds an engine with its collaborators. Settings are a snapshot
// loaded at startup; a running session keeps the snapshot it started with.
func New(settings model.CalendarSettings, clk clock.Clock, gen *generator.Generator, log *history.Store) *Engine {
	return &Engine{
		settings:   settings,
		clk:        clk,
		gen:        gen,
		log:        log,
		newID:      uuid.NewString,
		wallClock:  time.Now,
		formatDate: era.FormatDate,
		state:      StateIdle,
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Settings returns the settings snapshot in effect.
func (e *Engine) Settings() model.CalendarSettings { return e.settings }

// Range returns the selected question range.
func (e *Engine) Range() model.CalendarRange { return e.selected }

// Questions returns the current batch.
func (e *Engine) Questions() []model.Question { return e.questions }

// Laps returns the lap records of the session in progress.
func (e *Engine) Laps() []model.LapRecord { return e.laps }

// ActiveIndex returns the zero-based index of the current question.
func (e *Engine) ActiveIndex() int { return e.active }

// Feedback returns the pending answer feedback, or nil.
func (e *Engine) Feedback() *Feedback { return e.feedback }

// LastRecord returns the record of the most recently finished session.
func (e *Engine) LastRecord() *model.CalendarSessionRecord { return e.lastRecord }

// PersistErr returns the storage error from the last finalize, if any. The
// in-memory record stays valid; the caller should surface a notice.
func (e *Engine) PersistErr() error { return e.persistErr }

// RequestStart moves from idle to range selection.
func (e *Engine) RequestStart() {
	if e.state != StateIdle {
		return
	}
	e.state = StateRangeSelect
}

// SelectRange fixes the range, generates a fresh batch of questions, and
// enters the countdown.
func (e *Engine) SelectRange(r model.CalendarRange) {
	if e.state != StateRangeSelect && e.state != StateFinished {
		return
	}
	if !r.Valid() {
		return
	}
	e.selected = r
	e.beginCountdown()
}

// Restart re-runs the generator with the same range.
func (e *Engine) Restart() {
	if e.state != StateFinished {
		return
	}
	e.beginCountdown()
}

// ChangeRange discards the finished session and returns to range selection.
// Only completed sessions are ever persisted.
func (e *Engine) ChangeRange() {
	if e.state != StateFinished {
		return
	}
	e.clearSession()
	e.state = StateRangeSelect
}

// Abort drops everything and returns to idle. The caller must cancel any
// scheduled ticks on the way out.
func (e *Engine) Abort() {
	e.clearSession()
	e.state = StateIdle
}

func (e *Engine) beginCountdown() {
	e.clearSession()
	e.questions = e.gen.Questions(e.selected, model.QuestionsPerSession)
	e.countdown = e.settings.CountdownSeconds
	e.state = StateCountdown
}

func (e *Engine) clearSession() {
	e.questions = nil
	e.laps = nil
	e.active = 0
	e.feedback = nil
	e.startAt = 0
	e.endAt = 0
}

// CountdownLabel returns the text shown for the current countdown value:
// the number while positive, the start marker at zero.
func (e *Engine) CountdownLabel() string {
	if e.countdown > 0 {
		return strconv.Itoa(e.countdown)
	}
	return CountdownStartLabel
}

// CountdownTick advances the once-per-second countdown. The tick after the
// start marker begins play.
func (e *Engine) CountdownTick() {
	if e.state != StateCountdown {
		return
	}
	e.countdown--
	if e.countdown < 0 {
		e.startPlaying()
	}
}

func (e *Engine) startPlaying() {
	e.startAt = e.clk.Now()
	e.active = 0
	e.state = StatePlaying
}

// Elapsed returns the session time for live display: running time while
// playing, the final raw time once finished.
func (e *Engine) Elapsed() time.Duration {
	switch e.state {
	case StatePlaying:
		return e.clk.Now() - e.startAt
	case StateFinished:
		return e.endAt - e.startAt
	}
	return 0
}

// SubmitAnswer validates an answer for the active question. Submissions
// outside the playing state, or while feedback is pending, are silently
// ignored. Returns whether the submission was accepted.
func (e *Engine) SubmitAnswer(dayIndex int) bool {
	if e.state != StatePlaying || e.feedback != nil {
		return false
	}
	if dayIndex < 0 || dayIndex >= len(model.DaysJP) {
		return false
	}
	target := e.questions[e.active]
	correctIndex := target.Weekday()
	correct := dayIndex == correctIndex
	now := e.clk.Now()

	e.laps = append(e.laps, model.LapRecord{
		QuestionNumber: e.active + 1,
		Date:           e.formatDate(target.Date(), e.settings.YearMode),
		TimeMs:         (now - e.startAt).Milliseconds(),
		Correct:        correct,
		UserAnswer:     model.DaysJP[dayIndex],
		CorrectAnswer:  model.DaysJP[correctIndex],
	})
	e.feedback = &Feedback{Index: e.active, Correct: correct}
	if len(e.laps) == model.QuestionsPerSession {
		e.endAt = now
	}
	return true
}

// ResolveFeedback ends the post-answer pause: advance to the next question
// or, after the fifth answer, finalize the session.
func (e *Engine) ResolveFeedback() {
	if e.state != StatePlaying || e.feedback == nil {
		return
	}
	e.feedback = nil
	if len(e.laps) < model.QuestionsPerSession {
		e.active++
		return
	}
	e.finalize()
}

func (e *Engine) finalize() {
	totalMs := (e.endAt - e.startAt).Milliseconds()
	mistakes := 0
	for _, lap := range e.laps {
		if !lap.Correct {
			mistakes++
		}
	}
	penaltySeconds := mistakes * 10
	record := model.CalendarSessionRecord{
		ID:             e.newID(),
		Timestamp:      e.wallClock().UnixMilli(),
		Range:          e.selected,
		TotalTimeMs:    totalMs,
		PenaltySeconds: penaltySeconds,
		FinalScoreMs:   totalMs + int64(penaltySeconds)*1000,
		IsCorrectAll:   mistakes == 0,
		Laps:           append([]model.LapRecord(nil), e.laps...),
		Settings:       e.settings,
	}
	e.lastRecord = &record
	e.persistErr = e.log.Append(context.Background(), record)
	e.state = StateFinished
}

// DayList returns the answer choices in display order. StartDay 1 rotates
// the week to begin on Monday; correctness always compares weekday indexes,
// not list positions.
func (e *Engine) DayList() []DayChoice {
	list := make([]DayChoice, 0, len(model.DaysJP))
	for i, label := range model.DaysJP {
		list = append(list, DayChoice{Label: label, Index: i})
	}
	if e.settings.StartDay == 1 {
		return append(list[1:], list[0])
	}
	return list
}
