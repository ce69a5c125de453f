package algo

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/roster/internal/record"
)

func rec(id, name string) record.Record {
	return record.Record{ID: id, Name: name, Department: "Informatics"}
}

func ids(recs []record.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestLinearSearch_NameCaseInsensitive(t *testing.T) {
	recs := []record.Record{
		rec("100000001", "Maria"),
		rec("100000002", "Budi"),
		rec("100000003", "Martin"),
	}

	got := LinearSearch(recs, "mar")
	assert.Equal(t, []string{"100000001", "100000003"}, ids(got))

	got = LinearSearch(recs, "MAR")
	assert.Len(t, got, 2)
}

func TestLinearSearch_IDSubstring(t *testing.T) {
	recs := []record.Record{
		rec("900112233", "Siti"),
		rec("123456789", "Andi"),
	}

	got := LinearSearch(recs, "9001")
	require.Len(t, got, 1)
	assert.Equal(t, "900112233", got[0].ID)
}

func TestLinearSearch_NoMatchReturnsEmpty(t *testing.T) {
	got := LinearSearch([]record.Record{rec("123456789", "Andi")}, "zzz")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBinarySearch(t *testing.T) {
	recs := []record.Record{
		rec("100000001", "Ana"),
		rec("200000002", "Budi"),
		rec("300000003", "Citra"),
	}

	assert.Equal(t, 1, BinarySearch(recs, "200000002"))
	assert.Equal(t, NotFound, BinarySearch(recs, "999999999"))

	for i, r := range recs {
		assert.Equal(t, i, BinarySearch(recs, r.ID))
	}
	assert.Equal(t, NotFound, BinarySearch(nil, "100000001"))
}

func TestBinarySearch_LexicographicOrder(t *testing.T) {
	// "1000000000" (10 digits) sorts before "999999999" as a string.
	recs := MergeSort([]record.Record{
		rec("999999999", "Ana"),
		rec("1000000000", "Budi"),
	})
	require.Equal(t, []string{"1000000000", "999999999"}, ids(recs))
	assert.Equal(t, 0, BinarySearch(recs, "1000000000"))
	assert.Equal(t, 1, BinarySearch(recs, "999999999"))
}

func TestSorts_DoNotModifyInput(t *testing.T) {
	in := []record.Record{rec("300000003", "C"), rec("100000001", "A")}
	_ = BubbleSort(in)
	_ = MergeSort(in)
	assert.Equal(t, []string{"300000003", "100000001"}, ids(in))
}

func TestSorts_Agree(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(40)
		in := make([]record.Record, n)
		for i := range in {
			// Narrow id space forces duplicates and mixed lengths.
			id := fmt.Sprintf("%d", 99999990+rng.Intn(20))
			in[i] = rec(id, fmt.Sprintf("Name%c", 'a'+i%26))
		}

		bubble := BubbleSort(in)
		merged := MergeSort(in)
		assert.Equal(t, bubble, merged, "trial %d", trial)
		assert.True(t, IsSorted(merged), "trial %d", trial)
		assert.Len(t, merged, n)
	}
}

func TestMergeSort_Stable(t *testing.T) {
	in := []record.Record{
		rec("200000002", "First"),
		rec("100000001", "Only"),
		rec("200000002", "Second"),
		rec("200000002", "Third"),
	}

	got := MergeSort(in)
	require.Equal(t, []string{"100000001", "200000002", "200000002", "200000002"}, ids(got))
	assert.Equal(t, "First", got[1].Name)
	assert.Equal(t, "Second", got[2].Name)
	assert.Equal(t, "Third", got[3].Name)

	assert.Equal(t, got, BubbleSort(in))
}

func TestSorts_EdgeSizes(t *testing.T) {
	assert.Empty(t, BubbleSort(nil))
	assert.Empty(t, MergeSort(nil))

	one := []record.Record{rec("123456789", "Ana")}
	assert.Equal(t, one, BubbleSort(one))
	assert.Equal(t, one, MergeSort(one))
}

func TestIsSorted(t *testing.T) {
	assert.True(t, IsSorted(nil))
	assert.True(t, IsSorted([]record.Record{rec("1", "a"), rec("2", "b")}))
	assert.False(t, IsSorted([]record.Record{rec("2", "a"), rec("1", "b")}))
}
