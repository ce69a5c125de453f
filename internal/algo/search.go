// Package algo provides the stateless search and sort operations over a
// sequence of records.
//
// All ordering is by id using plain string comparison (record.Record.Less).
// None of the functions modify their input.
package algo

import (
	"strings"

	"github.com/roach88/roster/internal/record"
)

// NotFound is returned by BinarySearch when the id is absent.
const NotFound = -1

// LinearSearch returns every record whose id or name contains query,
// ignoring case, in input order. O(n).
//
// An empty query matches every record; callers that treat an empty
// query as "show all" may skip the call entirely.
func LinearSearch(recs []record.Record, query string) []record.Record {
	q := strings.ToLower(query)
	matches := []record.Record{}
	for _, r := range recs {
		if strings.Contains(strings.ToLower(r.ID), q) || strings.Contains(strings.ToLower(r.Name), q) {
			matches = append(matches, r)
		}
	}
	return matches
}

// BinarySearch returns the index of the record with the given id, or
// NotFound. O(log n).
//
// Precondition: recs is sorted ascending by id (string comparison), e.g.
// by BubbleSort or MergeSort. The precondition is not checked; on unsorted
// input the result may be a wrong index or a false NotFound.
func BinarySearch(recs []record.Record, id string) int {
	low, high := 0, len(recs)-1
	for low <= high {
		mid := int(uint(low+high) >> 1)
		switch midID := recs[mid].ID; {
		case midID == id:
			return mid
		case midID < id:
			low = mid + 1
		default:
			high = mid - 1
		}
	}
	return NotFound
}
