package persist

import (
	"context"
	"fmt"

	"github.com/roach88/roster/internal/codec"
	"github.com/roach88/roster/internal/config"
	"github.com/roach88/roster/internal/record"
)

// DefaultSlot is the slot name used when none is configured.
const DefaultSlot = "student_data"

// Backend is a persistence port that holds resources until closed.
type Backend interface {
	Load(ctx context.Context) ([]record.Record, error)
	Save(ctx context.Context, recs []record.Record) error
	Close() error
}

var (
	_ Backend = (*Memory)(nil)
	_ Backend = (*File)(nil)
	_ Backend = (*SQLite)(nil)
	_ Backend = (*Redis)(nil)
	_ Backend = (*Postgres)(nil)
)

// Open constructs the backend named by cfg.Backend.
func Open(ctx context.Context, cfg config.Storage) (Backend, error) {
	wrap := func(err error) error {
		return fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}

	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendFile:
		f, err := NewFile(cfg.FilePath)
		if err != nil {
			return nil, wrap(err)
		}
		return f, nil
	case config.BackendSQLite:
		s, err := OpenSQLite(cfg.SQLitePath, cfg.Slot)
		if err != nil {
			return nil, wrap(err)
		}
		return s, nil
	case config.BackendRedis:
		r, err := OpenRedis(ctx, RedisConfig{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: cfg.Redis.DialTimeout,
		}, cfg.Slot)
		if err != nil {
			return nil, wrap(err)
		}
		return r, nil
	case config.BackendPostgres:
		p, err := OpenPostgres(ctx, cfg.PostgresDSN, cfg.Slot)
		if err != nil {
			return nil, wrap(err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown backend %q: must be one of %v", cfg.Backend, config.ValidBackends)
	}
}

// decodeSlot parses a stored payload. Blank payloads load as empty.
func decodeSlot(data []byte) ([]record.Record, error) {
	if len(data) == 0 {
		return []record.Record{}, nil
	}
	return codec.Decode(data)
}
