package mapping

import (
	"context"
	"testing"

	"github.com/kioku-app/kioku/internal/store"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
	}{
		{"number", KindNumber},
		{"Numbers", KindNumber},
		{"letter", KindLetter},
		{"letters", KindLetter},
		{" letterpair ", KindLetter},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.in, tc.want, got)
		}
	}
	if _, err := ParseKind("words"); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
}

func TestKeysCatalogSizes(t *testing.T) {
	numbers := Keys(KindNumber)
	if len(numbers) != 100 {
		t.Fatalf("expected 100 number keys, got %d", len(numbers))
	}
	if numbers[0] != "00" || numbers[99] != "99" {
		t.Fatalf("expected zero-padded keys 00..99, got %q..%q", numbers[0], numbers[99])
	}

	letters := Keys(KindLetter)
	if len(letters) != 29*29 {
		t.Fatalf("expected %d letter-pair keys, got %d", 29*29, len(letters))
	}
	if letters[0] != "ああ" {
		t.Fatalf("expected ああ first, got %q", letters[0])
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()

	m := map[string]string{"00": "おおさま", "42": "よつば"}
	if err := Save(ctx, kv, KindNumber, m); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(ctx, kv, KindNumber)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got["00"] != "おおさま" || got["42"] != "よつば" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	// The other catalog stays untouched.
	letters, err := Load(ctx, kv, KindLetter)
	if err != nil {
		t.Fatalf("load letters: %v", err)
	}
	if len(letters) != 0 {
		t.Fatalf("expected empty letter mappings, got %+v", letters)
	}
}

func TestLoadCorruptReadsAsEmpty(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	if err := kv.Set(ctx, store.KeyNumberMappings, "[broken"); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}
	got, err := Load(ctx, kv, KindNumber)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty mapping on corrupt data, got %+v", got)
	}
}

func TestFilterMatchesKeyOrWord(t *testing.T) {
	keys := []string{"00", "01", "42"}
	m := map[string]string{"00": "おおさま", "42": "よつば"}

	if got := Filter(keys, m, ""); len(got) != 3 {
		t.Fatalf("empty query must keep every key, got %d", len(got))
	}
	if got := Filter(keys, m, "4"); len(got) != 1 || got[0] != "42" {
		t.Fatalf("key query: expected [42], got %v", got)
	}
	if got := Filter(keys, m, "おお"); len(got) != 1 || got[0] != "00" {
		t.Fatalf("word query: expected [00], got %v", got)
	}
	if got := Filter(keys, m, "zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}
