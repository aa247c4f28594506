package store

import "context"

// Memory is an in-memory KV used by tests and as an injectable fake.
type Memory struct {
	values map[string]string

	// FailSet, when set, is returned from every Set call.
	FailSet error
}

// NewMemory returns an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

// Get implements KV.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements KV.
func (m *Memory) Set(_ context.Context, key, value string) error {
	if m.FailSet != nil {
		return m.FailSet
	}
	m.values[key] = value
	return nil
}
