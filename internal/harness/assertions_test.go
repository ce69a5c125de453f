package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrace() []TraceEvent {
	return []TraceEvent{
		{Step: 0, Op: OpAdd, Outcome: OutcomeOK},
		{Step: 1, Op: OpAdd, Outcome: OutcomeError, Detail: "DUPLICATE_ID: id 100000001 is already registered"},
		{Step: 2, Op: OpSortMerge, Outcome: OutcomeOK},
		{Step: 3, Op: OpBinarySearch, Outcome: OutcomeOK, Detail: "index=0"},
	}
}

func TestAssertTraceCount(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceCount(trace, Assertion{Op: OpAdd, Count: 2}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Op: OpAdd, Outcome: OutcomeError, Count: 1}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Op: OpRemove, Count: 0}))

	err := assertTraceCount(trace, Assertion{Op: OpAdd, Outcome: OutcomeOK, Count: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 occurrences of add (ok)")
	assert.Contains(t, err.Error(), "Actual: 1 occurrences")
}

func TestAssertTraceOrder(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceOrder(trace, Assertion{Ops: []string{OpAdd, OpSortMerge, OpBinarySearch}}))
	assert.NoError(t, assertTraceOrder(trace, Assertion{Ops: []string{OpAdd, OpBinarySearch}}))

	err := assertTraceOrder(trace, Assertion{Ops: []string{OpBinarySearch, OpAdd}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binary_search (step 3) should be before add (step 0)")

	err = assertTraceOrder(trace, Assertion{Ops: []string{OpAdd, OpImport}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing op: import")
}

func TestAssertFinalIDs(t *testing.T) {
	result := NewResult()
	result.Final = []string{"100000002", "100000001"}

	assert.NoError(t, assertFinalIDs(result, Assertion{IDs: []string{"100000002", "100000001"}}))

	err := assertFinalIDs(result, Assertion{IDs: []string{"100000001", "100000002"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Assertion failed: final_ids")
}

func TestEvaluateAssertions(t *testing.T) {
	result := NewResult()
	result.Trace = sampleTrace()

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertTraceCount, Op: OpAdd, Count: 2},
		{Type: AssertTraceCount, Op: OpAdd, Count: 5},
		{Type: "bogus"},
	})
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "trace_count")
	assert.Contains(t, errs[1], `unknown assertion type "bogus"`)
}
