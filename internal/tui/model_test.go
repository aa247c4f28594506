package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kioku-app/kioku/internal/clock"
	"github.com/kioku-app/kioku/internal/generator"
	"github.com/kioku-app/kioku/internal/history"
	"github.com/kioku-app/kioku/internal/model"
	"github.com/kioku-app/kioku/internal/session"
	"github.com/kioku-app/kioku/internal/settings"
	"github.com/kioku-app/kioku/internal/store"
)

func newTestModel(t *testing.T, kv *store.Memory) *Model {
	t.Helper()
	log := history.New(kv)
	engine := session.New(settings.Default(), &clock.Manual{}, generator.New(), log)
	return NewModel(engine, log)
}

func seedRecord(t *testing.T, kv *store.Memory, id string, r model.CalendarRange, score int64) {
	t.Helper()
	rec := model.CalendarSessionRecord{
		ID:           id,
		Timestamp:    1700000000000,
		Range:        r,
		TotalTimeMs:  score,
		FinalScoreMs: score,
		IsCorrectAll: true,
	}
	if err := history.New(kv).Append(context.Background(), rec); err != nil {
		t.Fatalf("seed history: %v", err)
	}
}

func TestFooterEmptyWithoutHistory(t *testing.T) {
	m := newTestModel(t, store.NewMemory())
	if footer := m.renderFooter(); footer != "" {
		t.Fatalf("expected no footer on an empty history, got %q", footer)
	}
}

func TestFooterShowsLastAndBest(t *testing.T) {
	kv := store.NewMemory()
	seedRecord(t, kv, "a", model.RangeRecent, 14000)
	seedRecord(t, kv, "b", model.RangeRecent, 12340)

	m := newTestModel(t, kv)
	m.engine.RequestStart()
	m.engine.SelectRange(model.RangeRecent)

	footer := m.renderFooter()
	if !strings.Contains(footer, "Last 12.34s") {
		t.Fatalf("expected last score in footer, got %q", footer)
	}
	if !strings.Contains(footer, "Best(最近) 12.34s") {
		t.Fatalf("expected personal best in footer, got %q", footer)
	}
}

func TestStaleCountdownTickIsDropped(t *testing.T) {
	m := newTestModel(t, store.NewMemory())
	m.engine.RequestStart()
	m.engine.SelectRange(model.RangeRecent)
	m.enterCountdown()

	before := m.engine.CountdownLabel()
	m.Update(countdownTickMsg{gen: m.gen - 1})
	if got := m.engine.CountdownLabel(); got != before {
		t.Fatalf("stale tick advanced the countdown: %q -> %q", before, got)
	}
	m.Update(countdownTickMsg{gen: m.gen})
	if got := m.engine.CountdownLabel(); got == before {
		t.Fatalf("current-generation tick did not advance the countdown")
	}
}

func TestPersistFailureShowsNotice(t *testing.T) {
	kv := store.NewMemory()
	kv.FailSet = errors.New("storage unavailable")
	m := newTestModel(t, kv)

	m.engine.RequestStart()
	m.engine.SelectRange(model.RangeRecent)
	for m.engine.State() == session.StateCountdown {
		m.engine.CountdownTick()
	}
	for i := 0; i < model.QuestionsPerSession; i++ {
		q := m.engine.Questions()[m.engine.ActiveIndex()]
		if !m.engine.SubmitAnswer(q.Weekday()) {
			t.Fatalf("answer %d rejected", i+1)
		}
		m.engine.ResolveFeedback()
	}
	m.onFinished()

	if m.notice != "結果を保存できませんでした" {
		t.Fatalf("expected the save-failure notice, got %q", m.notice)
	}
	if !strings.Contains(m.viewFinished(), m.notice) {
		t.Fatalf("expected the notice in the result view")
	}
	if !m.hasLast || m.lastScore != m.engine.LastRecord().FinalScoreMs {
		t.Fatalf("expected the finished score to reach the footer stats")
	}
}
