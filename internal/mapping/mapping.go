// Package mapping manages user-authored mnemonic word mappings.
package mapping

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kioku-app/kioku/internal/model"
	"github.com/kioku-app/kioku/internal/store"
)

// Kind selects which mapping catalog is in use.
type Kind string

// Mapping kinds.
const (
	KindNumber Kind = "number"
	KindLetter Kind = "letter"
)

// ParseKind converts a user-supplied mode string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "number", "numbers":
		return KindNumber, nil
	case "letter", "letters", "letterpair":
		return KindLetter, nil
	}
	return "", fmt.Errorf("unknown mapping mode %q (number or letter)", s)
}

// Title returns the Japanese display title for the kind.
func (k Kind) Title() string {
	if k == KindLetter {
		return "レターペア"
	}
	return "ナンバー"
}

func (k Kind) storageKey() string {
	if k == KindLetter {
		return store.KeyLetterMappings
	}
	return store.KeyNumberMappings
}

// Keys returns the full catalog for the kind: "00".."99" for numbers, every
// two-hiragana combination for letters.
func Keys(k Kind) []string {
	if k == KindNumber {
		keys := make([]string, 0, 100)
		for i := 0; i < 100; i++ {
			keys = append(keys, fmt.Sprintf("%02d", i))
		}
		return keys
	}
	keys := make([]string, 0, len(model.HiraganaSet)*len(model.HiraganaSet))
	for _, first := range model.HiraganaSet {
		for _, second := range model.HiraganaSet {
			keys = append(keys, string(first)+string(second))
		}
	}
	return keys
}

// Load reads the mapping for the kind. Absent or malformed data reads as an
// empty mapping.
func Load(ctx context.Context, kv store.KV, k Kind) (map[string]string, error) {
	raw, ok, err := kv.Get(ctx, k.storageKey())
	if err != nil {
		return nil, fmt.Errorf("failed to read mappings: %w", err)
	}
	if !ok {
		return map[string]string{}, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return map[string]string{}, nil
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}

// Save persists the whole mapping for the kind.
func Save(ctx context.Context, kv store.KV, k Kind, m map[string]string) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode mappings: %w", err)
	}
	if err := kv.Set(ctx, k.storageKey(), string(raw)); err != nil {
		return fmt.Errorf("failed to write mappings: %w", err)
	}
	return nil
}

// Filter keeps keys whose name or mapped word contains the query.
func Filter(keys []string, m map[string]string, query string) []string {
	if query == "" {
		return keys
	}
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.Contains(key, query) || strings.Contains(m[key], query) {
			out = append(out, key)
		}
	}
	return out
}
