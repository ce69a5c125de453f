package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/roach88/roster/internal/persist"
	"github.com/roach88/roster/internal/record"
)

// ErrInjected is returned by FlakyPort when a failure is switched on.
var ErrInjected = errors.New("injected storage failure")

// FlakyPort wraps a persist.Memory slot and fails Load or Save on demand.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FlakyPort struct {
	mu       sync.Mutex
	mem      *persist.Memory
	failLoad bool
	failSave bool
	attempts int
}

// NewFlakyPort creates a port whose slot holds recs.
func NewFlakyPort(recs ...record.Record) *FlakyPort {
	return &FlakyPort{mem: persist.NewMemory(recs...)}
}

// FailLoad switches Load failures on or off.
func (p *FlakyPort) FailLoad(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failLoad = on
}

// FailSave switches Save failures on or off.
func (p *FlakyPort) FailSave(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failSave = on
}

// Load returns the slot or ErrInjected.
func (p *FlakyPort) Load(ctx context.Context) ([]record.Record, error) {
	p.mu.Lock()
	fail := p.failLoad
	p.mu.Unlock()
	if fail {
		return nil, ErrInjected
	}
	return p.mem.Load(ctx)
}

// Save stores recs or returns ErrInjected. Every call counts as an attempt.
func (p *FlakyPort) Save(ctx context.Context, recs []record.Record) error {
	p.mu.Lock()
	p.attempts++
	fail := p.failSave
	p.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return p.mem.Save(ctx, recs)
}

// Saved returns what the last successful Save stored.
func (p *FlakyPort) Saved() []record.Record {
	recs, _ := p.mem.Load(context.Background())
	return recs
}

// Saves returns how many Save calls succeeded.
func (p *FlakyPort) Saves() int {
	return p.mem.Saves()
}

// Attempts returns how many Save calls were made.
func (p *FlakyPort) Attempts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attempts
}
