package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/roster/internal/algo"
	"github.com/roach88/roster/internal/codec"
	"github.com/roach88/roster/internal/persist"
	"github.com/roach88/roster/internal/record"
	"github.com/roach88/roster/internal/store"
)

// Harness runs one scenario against its own store.
type Harness struct {
	store  *store.Store
	slot   *persist.Memory
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs on a fresh in-memory slot. Step failures are part of
// the trace, not Run errors; Run only fails if the seed is unusable.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario, nil)
}

// RunContext is Run with a context and an optional logger.
func RunContext(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	seed, err := buildSeed(scenario.Seed)
	if err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}

	slot := persist.NewMemory(seed...)
	h := &Harness{
		store:  store.New(slot, store.WithLogger(logger)),
		slot:   slot,
		logger: logger,
	}
	if err := h.store.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load seed: %w", err)
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		h.executeStep(ctx, i, step, result)
	}
	result.Final = ids(h.store.All())

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	logger.Debug("scenario finished",
		"scenario", scenario.Name,
		"steps", len(scenario.Steps),
		"saves", h.slot.Saves(),
		"pass", result.Pass,
	)
	return result, nil
}

// buildSeed validates seed records the same way the store would on import.
func buildSeed(args []RecordArgs) ([]record.Record, error) {
	recs := make([]record.Record, 0, len(args))
	seen := make(map[string]bool, len(args))
	for i, a := range args {
		r, err := record.New(a.ID, a.Name, a.Department)
		if err != nil {
			return nil, fmt.Errorf("seed[%d]: %w", i, err)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("seed[%d]: %w", i, record.NewDuplicateIDError(r.ID))
		}
		seen[r.ID] = true
		recs = append(recs, r)
	}
	return recs, nil
}

// executeStep runs one step, traces it, and checks its expect clause.
func (h *Harness) executeStep(ctx context.Context, i int, step Step, result *Result) {
	ev := TraceEvent{Step: i, Op: step.Op, Outcome: OutcomeOK}
	count := -1
	index := algo.NotFound

	var err error
	switch step.Op {
	case OpAdd:
		var r record.Record
		if r, err = newRecord(step.Record); err == nil {
			err = h.store.Add(ctx, r)
		}
	case OpEdit:
		var r record.Record
		if r, err = newRecord(step.Record); err == nil {
			err = h.store.Edit(ctx, *step.Index, r)
		}
	case OpRemove:
		err = h.store.Remove(ctx, *step.Index)
	case OpSortBubble:
		err = h.store.BubbleSort(ctx)
	case OpSortMerge:
		err = h.store.MergeSort(ctx)
	case OpSearch:
		matches := h.store.LinearSearch(step.Query)
		count = len(matches)
		ev.Detail = fmt.Sprintf("matches=%d", count)
		ev.IDs = ids(matches)
	case OpBinarySearch:
		index = h.store.BinarySearch(step.ID)
		ev.Detail = fmt.Sprintf("index=%d", index)
	case OpImport:
		err = h.store.Import(ctx, []byte(step.Payload))
	case OpExport:
		var data []byte
		if data, err = h.store.Export(); err == nil {
			var back []record.Record
			back, err = codec.Decode(data)
			ev.Detail = fmt.Sprintf("records=%d", len(back))
		}
	default:
		err = fmt.Errorf("unknown op %q", step.Op)
	}

	if err != nil {
		ev.Outcome = OutcomeError
		ev.Detail = err.Error()
	}
	if ev.IDs == nil {
		ev.IDs = ids(h.store.All())
	}
	if count < 0 {
		count = h.store.Len()
	}
	result.AddTrace(ev)

	h.logger.Debug("step executed", "step", i, "op", step.Op, "outcome", ev.Outcome)

	if step.Expect != nil {
		for _, msg := range checkExpect(i, step, err, count, index) {
			result.AddError(msg)
		}
	}
}

// checkExpect compares a step's outcome with its expect clause.
func checkExpect(i int, step Step, err error, count, index int) []string {
	var errs []string
	exp := step.Expect

	switch {
	case exp.Error == "" && err != nil:
		errs = append(errs, fmt.Sprintf("steps[%d] %s: expected success, got %v", i, step.Op, err))
	case exp.Error != "" && err == nil:
		errs = append(errs, fmt.Sprintf("steps[%d] %s: expected %s error, got success", i, step.Op, exp.Error))
	case exp.Error != "" && string(record.KindOf(err)) != exp.Error:
		errs = append(errs, fmt.Sprintf("steps[%d] %s: expected %s error, got %v", i, step.Op, exp.Error, err))
	}

	if exp.Count != nil && *exp.Count != count {
		errs = append(errs, fmt.Sprintf("steps[%d] %s: expected count %d, got %d", i, step.Op, *exp.Count, count))
	}
	if exp.Index != nil && *exp.Index != index {
		errs = append(errs, fmt.Sprintf("steps[%d] %s: expected index %d, got %d", i, step.Op, *exp.Index, index))
	}
	return errs
}

func newRecord(a *RecordArgs) (record.Record, error) {
	return record.New(a.ID, a.Name, a.Department)
}

func ids(recs []record.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}
