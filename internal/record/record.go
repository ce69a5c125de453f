package record

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Record is one student entry.
type Record struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// New trims and validates the given fields and returns the Record.
//
// Name and department are NFC-normalized before validation so that
// visually identical input always has the same length and encoding.
func New(id, name, department string) (Record, error) {
	r := Record{
		ID:         strings.TrimSpace(id),
		Name:       norm.NFC.String(strings.TrimSpace(name)),
		Department: norm.NFC.String(strings.TrimSpace(department)),
	}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Validate runs Validate over the record's fields.
func (r Record) Validate() error {
	return Validate(r.ID, r.Name, r.Department)
}

// Less orders records by id using plain string comparison.
// Ids of different lengths therefore compare lexicographically, so
// "100000000" sorts before "99999999".
func (r Record) Less(other Record) bool {
	return r.ID < other.ID
}

// Clone returns a copy of recs that shares no backing array with it.
// A nil input yields an empty, non-nil slice.
func Clone(recs []Record) []Record {
	out := make([]Record, len(recs))
	copy(out, recs)
	return out
}
