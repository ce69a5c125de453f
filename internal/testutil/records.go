package testutil

import (
	"fmt"
	"testing"

	"github.com/roach88/roster/internal/record"
)

// MustRecord builds a validated record or fails the test.
func MustRecord(t testing.TB, id, name, department string) record.Record {
	t.Helper()
	r, err := record.New(id, name, department)
	if err != nil {
		t.Fatalf("record.New(%q, %q, %q) failed: %v", id, name, department, err)
	}
	return r
}

// Records returns n valid records with ids 100000001, 100000002, ...
// Names cycle through a fixed list so searches have predictable hits.
func Records(n int) []record.Record {
	names := []string{"Maria", "Budi", "Martin", "Siti", "Andi", "Citra"}
	out := make([]record.Record, n)
	for i := range out {
		out[i] = record.Record{
			ID:         fmt.Sprintf("%d", 100000001+i),
			Name:       names[i%len(names)],
			Department: "Informatics",
		}
	}
	return out
}

// IDs returns the ids of recs in order.
func IDs(recs []record.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}
