// Package settings persists calendar settings in the key-value store.
package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kioku-app/kioku/internal/model"
	"github.com/kioku-app/kioku/internal/store"
)

// Default returns the settings used when nothing is stored.
func Default() model.CalendarSettings {
	return model.CalendarSettings{
		YearMode:         model.YearBoth,
		CountdownSeconds: 3,
		ShowNumbers:      false,
		StartDay:         0,
	}
}

// Load reads settings from storage. Absent or malformed values fall back to
// the defaults.
func Load(ctx context.Context, kv store.KV) model.CalendarSettings {
	raw, ok, err := kv.Get(ctx, store.KeyCalendarSettings)
	if err != nil || !ok {
		return Default()
	}
	var s model.CalendarSettings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Default()
	}
	if !s.Valid() {
		return Default()
	}
	return s
}

// Save validates and persists settings immediately.
func Save(ctx context.Context, kv store.KV, s model.CalendarSettings) error {
	if !s.Valid() {
		return fmt.Errorf("invalid settings: %+v", s)
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := kv.Set(ctx, store.KeyCalendarSettings, string(raw)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
