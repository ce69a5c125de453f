package persist

import (
	"context"
	"sync"

	"github.com/roach88/roster/internal/record"
)

// Memory keeps the slot in process memory. Load and Save copy, so callers
// never share a backing array with the slot.
type Memory struct {
	mu    sync.Mutex
	recs  []record.Record
	saves int
}

// NewMemory returns a Memory slot seeded with recs.
func NewMemory(recs ...record.Record) *Memory {
	return &Memory{recs: record.Clone(recs)}
}

// Load returns a copy of the slot.
func (m *Memory) Load(ctx context.Context) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return record.Clone(m.recs), nil
}

// Save replaces the slot with a copy of recs.
func (m *Memory) Save(ctx context.Context, recs []record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = record.Clone(recs)
	m.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
