// Package history stores completed calendar sessions.
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kioku-app/kioku/internal/model"
	"github.com/kioku-app/kioku/internal/store"
)

// Store is the append-only, capped session log. Records are kept
// most-recent-first; no update or delete is exposed.
type Store struct {
	kv store.KV
}

// New returns a history store over the given key-value storage.
func New(kv store.KV) *Store {
	return &Store{kv: kv}
}

// All returns every stored record, most-recent-first. An absent or
// malformed log reads as empty.
func (s *Store) All(ctx context.Context) ([]model.CalendarSessionRecord, error) {
	raw, ok, err := s.kv.Get(ctx, store.KeyCalendarHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var records []model.CalendarSessionRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		// Corrupt history is recovered as empty, not surfaced.
		return nil, nil
	}
	return records, nil
}

// Append prepends the record and truncates the log to the cap. The
// read-prepend-cap-write sequence is a single step from the caller's view;
// storage access is single-threaded.
func (s *Store) Append(ctx context.Context, record model.CalendarSessionRecord) error {
	records, err := s.All(ctx)
	if err != nil {
		return err
	}
	records = append([]model.CalendarSessionRecord{record}, records...)
	if len(records) > model.HistoryCap {
		records = records[:model.HistoryCap]
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := s.kv.Set(ctx, store.KeyCalendarHistory, string(raw)); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// Latest returns the most recent record, derived from the log head.
func (s *Store) Latest(ctx context.Context) (*model.CalendarSessionRecord, error) {
	records, err := s.All(ctx)
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return &records[0], nil
}

// PersonalBest returns the lowest-score record for the range, or nil when
// no record of that range exists. Stored order is most-recent-first, so a
// tie keeps the more recent session.
func (s *Store) PersonalBest(ctx context.Context, r model.CalendarRange) (*model.CalendarSessionRecord, error) {
	records, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return BestOf(records, r), nil
}

// BestOf scans records (most-recent-first) for the lowest final score in
// the range.
func BestOf(records []model.CalendarSessionRecord, r model.CalendarRange) *model.CalendarSessionRecord {
	var best *model.CalendarSessionRecord
	for i := range records {
		if records[i].Range != r {
			continue
		}
		if best == nil || records[i].FinalScoreMs < best.FinalScoreMs {
			best = &records[i]
		}
	}
	return best
}
