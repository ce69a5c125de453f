package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestRun_MinimalScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "minimal",
		Description: "Minimal test scenario",
		Steps: []Step{
			{Op: OpAdd, Record: &RecordArgs{ID: "123456789", Name: "Maria", Department: "CS"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Trace, 1)
	assert.Equal(t, TraceEvent{Step: 0, Op: OpAdd, Outcome: OutcomeOK, IDs: []string{"123456789"}}, result.Trace[0])
	assert.Equal(t, []string{"123456789"}, result.Final)
}

func TestRun_StepFailureIsTraced(t *testing.T) {
	scenario := &Scenario{
		Name:        "failure",
		Description: "Remove on an empty store",
		Steps:       []Step{{Op: OpRemove, Index: intPtr(0)}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "no expect clause, so the failure is only traced")
	require.Len(t, result.Trace, 1)
	assert.Equal(t, OutcomeError, result.Trace[0].Outcome)
	assert.Equal(t, "INDEX: index 0 out of range [0, 0)", result.Trace[0].Detail)
	assert.Equal(t, []string{}, result.Trace[0].IDs)
}

func TestRun_ExpectMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "Expectations that do not hold",
		Seed:        []RecordArgs{{ID: "100000001", Name: "Maria", Department: "CS"}},
		Steps: []Step{
			{
				Op:     OpAdd,
				Record: &RecordArgs{ID: "100000001", Name: "Maria", Department: "CS"},
				Expect: &Expect{},
			},
			{
				Op:     OpSearch,
				Query:  "zzz",
				Expect: &Expect{Count: intPtr(1)},
			},
			{
				Op:     OpBinarySearch,
				ID:     "100000001",
				Expect: &Expect{Error: "INDEX", Index: intPtr(3)},
			},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors[0], "steps[0] add: expected success")
	assert.Contains(t, result.Errors[1], "expected count 1, got 0")
	assert.Contains(t, result.Errors[2], "expected INDEX error, got success")
	assert.Contains(t, result.Errors[3], "expected index 3, got 0")
}

func TestRun_WrongErrorKind(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong_kind",
		Description: "Validation failure where a duplicate was expected",
		Steps: []Step{
			{
				Op:     OpAdd,
				Record: &RecordArgs{ID: "1", Name: "Maria", Department: "CS"},
				Expect: &Expect{Error: "DUPLICATE_ID"},
			},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected DUPLICATE_ID error, got VALIDATION")
}

func TestRun_InvalidSeed(t *testing.T) {
	tests := []struct {
		name string
		seed []RecordArgs
	}{
		{"invalid record", []RecordArgs{{ID: "12", Name: "Maria", Department: "CS"}}},
		{"duplicate id", []RecordArgs{
			{ID: "100000001", Name: "Maria", Department: "CS"},
			{ID: "100000001", Name: "Budi", Department: "CS"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(&Scenario{
				Name:        "seed",
				Description: "bad seed",
				Seed:        tt.seed,
				Steps:       []Step{{Op: OpExport}},
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "seed[")
		})
	}
}

func TestRun_ExportRoundTrips(t *testing.T) {
	result, err := Run(&Scenario{
		Name:        "export",
		Description: "Export of an empty store",
		Steps:       []Step{{Op: OpExport}},
	})
	require.NoError(t, err)
	require.Len(t, result.Trace, 1)
	assert.Equal(t, "records=0", result.Trace[0].Detail)
}

func TestScenarioFiles_Golden(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, path := range files {
		scenario, err := LoadScenario(path)
		require.NoError(t, err, path)

		t.Run(scenario.Name, func(t *testing.T) {
			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)

			require.NoError(t, AssertGolden(t, scenario.Name, result))
		})
	}
}

func TestRunWithGolden(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/sort_and_search.yaml")
	require.NoError(t, err)
	require.NoError(t, RunWithGolden(t, scenario))
}
