package history

import (
	"context"
	"fmt"
	"testing"

	"github.com/kioku-app/kioku/internal/model"
	"github.com/kioku-app/kioku/internal/store"
)

func record(id int, r model.CalendarRange, score int64) model.CalendarSessionRecord {
	return model.CalendarSessionRecord{
		ID:           fmt.Sprintf("rec-%d", id),
		Timestamp:    int64(1700000000000 + id),
		Range:        r,
		TotalTimeMs:  score,
		FinalScoreMs: score,
		IsCorrectAll: true,
	}
}

func TestAppendCapsAtHundred(t *testing.T) {
	kv := store.NewMemory()
	s := New(kv)
	ctx := context.Background()

	for i := 0; i < 105; i++ {
		if err := s.Append(ctx, record(i, model.RangeRecent, int64(1000+i))); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	records, err := s.All(ctx)
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	if len(records) != model.HistoryCap {
		t.Fatalf("expected %d records, got %d", model.HistoryCap, len(records))
	}
	if records[0].ID != "rec-104" {
		t.Fatalf("expected the newest record first, got %s", records[0].ID)
	}
	if records[len(records)-1].ID != "rec-5" {
		t.Fatalf("expected the oldest beyond the cap dropped, got %s", records[len(records)-1].ID)
	}
}

func TestPersonalBestPicksLowestScore(t *testing.T) {
	kv := store.NewMemory()
	s := New(kv)
	ctx := context.Background()

	appendAll := []model.CalendarSessionRecord{
		record(1, model.RangeRecent, 9000),
		record(2, model.RangeBirthday, 4000),
		record(3, model.RangeRecent, 6000),
		record(4, model.RangeRecent, 8000),
	}
	for _, rec := range appendAll {
		if err := s.Append(ctx, rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	best, err := s.PersonalBest(ctx, model.RangeRecent)
	if err != nil {
		t.Fatalf("personal best: %v", err)
	}
	if best == nil || best.ID != "rec-3" {
		t.Fatalf("expected rec-3 as personal best, got %+v", best)
	}

	missing, err := s.PersonalBest(ctx, model.RangeCompetition)
	if err != nil {
		t.Fatalf("personal best: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected no personal best for an unplayed range, got %+v", missing)
	}
}

func TestPersonalBestTiePrefersMoreRecent(t *testing.T) {
	records := []model.CalendarSessionRecord{
		record(2, model.RangeRecent, 5000), // most recent first
		record(1, model.RangeRecent, 5000),
	}
	best := BestOf(records, model.RangeRecent)
	if best == nil || best.ID != "rec-2" {
		t.Fatalf("expected the more recent record on a tie, got %+v", best)
	}
}

func TestCorruptHistoryReadsAsEmpty(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	if err := kv.Set(ctx, store.KeyCalendarHistory, "{not json"); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}
	s := New(kv)
	records, err := s.All(ctx)
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty history, got %d records", len(records))
	}

	// Appending over corrupt data starts a fresh log.
	if err := s.Append(ctx, record(1, model.RangeRecent, 7000)); err != nil {
		t.Fatalf("append: %v", err)
	}
	records, err = s.All(ctx)
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
}

func TestLatestIsLogHead(t *testing.T) {
	kv := store.NewMemory()
	s := New(kv)
	ctx := context.Background()

	latest, err := s.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest != nil {
		t.Fatalf("expected no latest record on empty history")
	}

	for i := 0; i < 3; i++ {
		if err := s.Append(ctx, record(i, model.RangeRecent, int64(3000-i))); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	latest, err = s.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.ID != "rec-2" {
		t.Fatalf("expected rec-2 as latest, got %+v", latest)
	}
}
