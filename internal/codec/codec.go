// Package codec serializes record sequences to and from JSON.
//
// Export writes a pretty-printed array of {id, name, department} objects.
// Import accepts the same shape, plus the legacy nim/nama/jurusan keys
// written by older exports, and validates every element before returning.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/roach88/roster/internal/record"
)

// wireRecord is the on-the-wire element shape accepted by Decode.
type wireRecord struct {
	ID         *string `json:"id"`
	Name       *string `json:"name"`
	Department *string `json:"department"`

	// Legacy keys.
	NIM     *string `json:"nim"`
	Nama    *string `json:"nama"`
	Jurusan *string `json:"jurusan"`
}

func (w wireRecord) record() record.Record {
	return record.Record{
		ID:         pick(w.ID, w.NIM),
		Name:       pick(w.Name, w.Nama),
		Department: pick(w.Department, w.Jurusan),
	}
}

func pick(primary, legacy *string) string {
	if primary != nil {
		return *primary
	}
	if legacy != nil {
		return *legacy
	}
	return ""
}

// Encode returns recs as an indented JSON array followed by a newline.
// A nil or empty sequence encodes as "[]".
func Encode(recs []record.Record) ([]byte, error) {
	return encode(recs, "  ")
}

// EncodeCompact returns recs as a single-line JSON array, the form kept in
// storage slots.
func EncodeCompact(recs []record.Record) ([]byte, error) {
	return encode(recs, "")
}

func encode(recs []record.Record, indent string) ([]byte, error) {
	if recs == nil {
		recs = []record.Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(recs); err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	if indent == "" {
		// Encoder adds a trailing newline, remove it for compact slots
		return bytes.TrimRight(buf.Bytes(), "\n"), nil
	}
	return buf.Bytes(), nil
}

// Decode parses data as a JSON array of records and validates it.
//
// Errors:
//   - KindFormat: data is not UTF-8, not JSON, not an array, or an element
//     is not an object
//   - KindValidation: an element fails record.Validate (Index is set)
//   - KindDuplicateID: an id repeats inside the payload (Index is set)
//
// Decode never returns a partial result.
func Decode(data []byte) ([]record.Record, error) {
	if !utf8.Valid(data) {
		return nil, record.NewFormatError("import payload is not valid UTF-8", nil)
	}

	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, record.NewFormatError("import payload is not valid JSON", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, record.NewFormatError("import payload must be a JSON array", nil)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, record.NewFormatError("import payload must be a JSON array", err)
	}

	recs := make([]record.Record, 0, len(elems))
	seen := make(map[string]int, len(elems))
	for i, elem := range elems {
		var w wireRecord
		if err := json.Unmarshal(elem, &w); err != nil {
			return nil, record.NewFormatError(fmt.Sprintf("record %d is not an object of strings", i), err)
		}
		r := w.record()

		if err := r.Validate(); err != nil {
			var re *record.Error
			if errors.As(err, &re) {
				return nil, re.WithIndex(i)
			}
			return nil, err
		}
		if _, dup := seen[r.ID]; dup {
			return nil, record.NewDuplicateIDError(r.ID).WithIndex(i)
		}
		seen[r.ID] = i
		recs = append(recs, r)
	}

	return recs, nil
}
