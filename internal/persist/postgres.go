package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roach88/roster/internal/codec"
	"github.com/roach88/roster/internal/record"
)

const postgresSchemaSQL = `
CREATE TABLE IF NOT EXISTS roster_slots (
	name       TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	revision   UUID NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Postgres keeps the slot in a PostgreSQL table.
type Postgres struct {
	pool *pgxpool.Pool
	slot string
}

// OpenPostgres connects to dsn, pings, and creates the slots table.
func OpenPostgres(ctx context.Context, dsn, slot string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply postgres schema: %w", err)
	}

	if slot == "" {
		slot = DefaultSlot
	}
	return &Postgres{pool: pool, slot: slot}, nil
}

// Load reads the slot. A missing row loads as an empty sequence.
func (p *Postgres) Load(ctx context.Context) ([]record.Record, error) {
	var payload []byte
	err := p.pool.QueryRow(ctx,
		`SELECT payload::text FROM roster_slots WHERE name = $1`, p.slot,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return []record.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %q: %w", p.slot, err)
	}
	return decodeSlot(payload)
}

// Save upserts the slot with a new UUIDv7 revision.
func (p *Postgres) Save(ctx context.Context, recs []record.Record) error {
	payload, err := codec.EncodeCompact(recs)
	if err != nil {
		return fmt.Errorf("save slot %q: %w", p.slot, err)
	}
	rev, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("save slot %q: revision: %w", p.slot, err)
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO roster_slots (name, payload, revision, updated_at)
		VALUES ($1, $2::jsonb, $3, now())
		ON CONFLICT (name) DO UPDATE SET
			payload = EXCLUDED.payload,
			revision = EXCLUDED.revision,
			updated_at = EXCLUDED.updated_at
	`, p.slot, string(payload), rev.String())
	if err != nil {
		return fmt.Errorf("save slot %q: %w", p.slot, err)
	}
	return nil
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
