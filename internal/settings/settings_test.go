package settings

import (
	"context"
	"testing"

	"github.com/kioku-app/kioku/internal/model"
	"github.com/kioku-app/kioku/internal/store"
)

func TestLoadDefaultsWhenAbsent(t *testing.T) {
	kv := store.NewMemory()
	got := Load(context.Background(), kv)
	if got != Default() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestLoadDefaultsOnCorruptValue(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	if err := kv.Set(ctx, store.KeyCalendarSettings, "not json"); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}
	if got := Load(ctx, kv); got != Default() {
		t.Fatalf("expected defaults on corrupt data, got %+v", got)
	}
}

func TestLoadDefaultsOnInvalidValues(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	if err := kv.Set(ctx, store.KeyCalendarSettings,
		`{"yearMode":"roman","countdownSeconds":7,"showNumbers":false,"startDay":0}`); err != nil {
		t.Fatalf("seed invalid value: %v", err)
	}
	if got := Load(ctx, kv); got != Default() {
		t.Fatalf("expected defaults on invalid data, got %+v", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	want := model.CalendarSettings{
		YearMode:         model.YearJapanese,
		CountdownSeconds: 10,
		ShowNumbers:      true,
		StartDay:         1,
	}
	if err := Save(ctx, kv, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := Load(ctx, kv); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestSaveRejectsInvalidSettings(t *testing.T) {
	kv := store.NewMemory()
	bad := Default()
	bad.CountdownSeconds = 4
	if err := Save(context.Background(), kv, bad); err == nil {
		t.Fatalf("expected an error for an invalid countdown")
	}
}
