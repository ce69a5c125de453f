package algo

import "github.com/roach88/roster/internal/record"

// BubbleSort returns a copy of recs sorted ascending by id. O(n²).
// Adjacent records swap only when strictly out of order, so the sort is
// stable.
func BubbleSort(recs []record.Record) []record.Record {
	arr := record.Clone(recs)
	n := len(arr)
	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			if arr[j+1].Less(arr[j]) {
				arr[j], arr[j+1] = arr[j+1], arr[j]
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return arr
}

// MergeSort returns a copy of recs sorted ascending by id. O(n log n).
// Splits at the midpoint, sorts each half, then merges; on equal ids the
// left run wins, so the sort is stable.
func MergeSort(recs []record.Record) []record.Record {
	if len(recs) <= 1 {
		return record.Clone(recs)
	}
	mid := len(recs) / 2
	return merge(MergeSort(recs[:mid]), MergeSort(recs[mid:]))
}

func merge(left, right []record.Record) []record.Record {
	out := make([]record.Record, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if right[j].Less(left[i]) {
			out = append(out, right[j])
			j++
		} else {
			out = append(out, left[i])
			i++
		}
	}
	out = append(out, left[i:]...)
	return append(out, right[j:]...)
}

// IsSorted reports whether recs is ascending by id.
func IsSorted(recs []record.Record) bool {
	for i := 1; i < len(recs); i++ {
		if recs[i].Less(recs[i-1]) {
			return false
		}
	}
	return true
}
