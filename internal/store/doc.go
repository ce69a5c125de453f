// Package store owns the ordered, id-unique collection of student records
// and mediates every mutation.
//
// # Invariants
//
//   - No two records share an id, at any time.
//   - Order is insertion order until a sort replaces it.
//   - Every successful mutation is followed by exactly one Port.Save.
//   - Import is atomic: the whole payload replaces the sequence or nothing
//     changes.
//
// # Persistence failures
//
// A failing Port.Save does not undo the in-memory mutation. The operation
// returns a record.KindStorage error (and logs it) while the store keeps
// the new state; the caller decides how to surface it.
//
// # Field validation
//
// Add and Edit do not validate fields; callers construct records with
// record.New first. Import validates every element itself.
package store
