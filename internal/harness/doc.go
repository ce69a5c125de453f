// Package harness replays YAML scenarios against a roster store.
//
// A scenario seeds the store, runs a list of steps, and records one trace
// event per step. Steps may carry expectations, and the scenario may end
// with assertions over the whole trace and the final sequence.
//
// # Scenario Format
//
//	name: crud_basics
//	description: "Add, edit and remove keep positions and ids unique"
//	seed:
//	  - {id: "100000001", name: "Maria", department: "Informatics"}
//	steps:
//	  - op: add
//	    record: {id: "100000002", name: "Budi", department: "Physics"}
//	  - op: add
//	    record: {id: "100000002", name: "Budi", department: "Physics"}
//	    expect: {error: DUPLICATE_ID}
//	  - op: search
//	    query: "mar"
//	    expect: {count: 1}
//	assertions:
//	  - type: final_ids
//	    ids: ["100000001", "100000002"]
//
// # Operations
//
//   - add: record
//   - edit: index, record
//   - remove: index
//   - sort_bubble, sort_merge: no arguments
//   - search: query (linear, case-insensitive substring)
//   - binary_search: id
//   - import: payload (a JSON document)
//   - export: no arguments
//
// An expect clause with error set requires the step to fail with that
// error kind; without error it requires success. count is checked against
// the number of matches for search and the sequence length otherwise.
// index is checked against the binary_search result.
//
// # Assertion Types
//
//   - final_ids: the final sequence ids, in order
//   - trace_count: how many steps ran op, optionally with a given outcome
//   - trace_order: ops appear in this relative order
//
// # Determinism
//
// Every run uses a fresh persist.Memory slot, so traces are reproducible
// and can be compared against golden files with RunWithGolden.
package harness
