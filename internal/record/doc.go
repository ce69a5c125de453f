// Package record defines the student Record value type, the field
// validators, and the error kinds shared by every roster package.
//
// This package imports nothing internal. All other internal packages
// import record; record imports nothing from them.
//
// # Field rules
//
//   - id: 9 to 12 ASCII digits, not trimmed
//   - name: trimmed, 2 to 50 ASCII letters or whitespace
//   - department: trimmed, 2 to 50 characters of any kind
//
// Validation checks id, then name, then department and stops at the first
// failure, so callers always see a single reason.
package record
