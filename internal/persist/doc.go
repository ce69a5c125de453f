// Package persist provides the durable backends behind the store's
// persistence port.
//
// Every backend keeps the whole record sequence in one named slot as a
// compact JSON array (codec.EncodeCompact). Loading an empty or missing
// slot yields an empty sequence. Loading a slot whose payload fails
// codec.Decode returns that error unchanged, so callers see exactly which
// record was bad.
//
// # Backends
//
//   - memory: in-process slot, for tests and throwaway sessions
//   - file: a single JSON file, replaced atomically on save
//   - sqlite: a slots table in a SQLite database (WAL mode)
//   - redis: one string key
//   - postgres: a slots table with a JSONB payload
//
// Open selects a backend from config.Storage.
package persist
