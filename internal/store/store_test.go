package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kioku.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := openTestStore(t)
	value, ok, err := s.Get(context.Background(), KeyCalendarSettings)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || value != "" {
		t.Fatalf("expected an absent key, got ok=%v value=%q", ok, value)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.Set(ctx, KeyNumberMappings, `{"00":"test"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := s.Get(ctx, KeyNumberMappings)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || value != `{"00":"test"}` {
		t.Fatalf("expected stored value, got ok=%v value=%q", ok, value)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.Set(ctx, KeyCalendarHistory, "first"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, KeyCalendarHistory, "second"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, ok, err := s.Get(ctx, KeyCalendarHistory)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || value != "second" {
		t.Fatalf("expected the overwritten value, got ok=%v value=%q", ok, value)
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "kioku.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}
}
