package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/roster/internal/codec"
	"github.com/roach88/roster/internal/record"
)

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added saves counter on slots
const currentSchemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS slots (
	name     TEXT PRIMARY KEY,
	payload  TEXT NOT NULL,
	revision TEXT NOT NULL
);
`

// SQLite keeps the record slot in a SQLite database.
type SQLite struct {
	db   *sql.DB
	slot string
}

// OpenSQLite creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
//
// The database is configured with:
//   - WAL mode
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func OpenSQLite(path, slot string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	if slot == "" {
		slot = DefaultSlot
	}
	return &SQLite{db: db, slot: slot}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load reads the slot. A missing slot row loads as an empty sequence.
func (s *SQLite) Load(ctx context.Context) ([]record.Record, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM slots WHERE name = ?`, s.slot,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []record.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %q: %w", s.slot, err)
	}
	return decodeSlot([]byte(payload))
}

// Save replaces the slot payload and stamps a new UUIDv7 revision.
func (s *SQLite) Save(ctx context.Context, recs []record.Record) error {
	payload, err := codec.EncodeCompact(recs)
	if err != nil {
		return fmt.Errorf("save slot %q: %w", s.slot, err)
	}

	rev, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("save slot %q: revision: %w", s.slot, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO slots (name, payload, revision, saves)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(name) DO UPDATE SET
			payload = excluded.payload,
			revision = excluded.revision,
			saves = slots.saves + 1
	`, s.slot, string(payload), rev.String())
	if err != nil {
		return fmt.Errorf("save slot %q: %w", s.slot, err)
	}
	return nil
}

// Revision returns the revision and save count of the last save.
// Returns "" and 0 if the slot has never been saved.
func (s *SQLite) Revision(ctx context.Context) (string, int64, error) {
	var rev string
	var saves int64
	err := s.db.QueryRowContext(ctx,
		`SELECT revision, saves FROM slots WHERE name = ?`, s.slot,
	).Scan(&rev, &saves)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("read revision of slot %q: %w", s.slot, err)
	}
	return rev, saves, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// migrateToV1 adds the saves counter. schemaSQL creates slots without it,
// so fresh and v0 databases both gain the column here.
func migrateToV1(db *sql.DB) error {
	_, err := db.Exec(`ALTER TABLE slots ADD COLUMN saves INTEGER NOT NULL DEFAULT 0`)
	if err != nil {
		return fmt.Errorf("migrate to v1: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *SQLite) verifyPragma(name, expected string) error {
	var value string
	if err := s.db.QueryRow(fmt.Sprintf("PRAGMA %s", name)).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
