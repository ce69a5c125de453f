package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/roster/internal/record"
)

// Scenario is a replayable sequence of store operations.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario checks.
	Description string `yaml:"description"`

	// Seed is the slot content before the first step.
	Seed []RecordArgs `yaml:"seed,omitempty"`

	// Steps run in order. A failing step does not stop the run.
	Steps []Step `yaml:"steps"`

	// Assertions run after the last step.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// RecordArgs is a record as written in a scenario.
type RecordArgs struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Department string `yaml:"department"`
}

// Step is one store operation.
type Step struct {
	Op      string      `yaml:"op"`
	Record  *RecordArgs `yaml:"record,omitempty"`
	Index   *int        `yaml:"index,omitempty"`
	Query   string      `yaml:"query,omitempty"`
	ID      string      `yaml:"id,omitempty"`
	Payload string      `yaml:"payload,omitempty"`

	// Expect is optional. When nil the step's outcome is only traced.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes the required outcome of a step.
type Expect struct {
	// Error is the required error kind, e.g. DUPLICATE_ID. Empty means success.
	Error string `yaml:"error,omitempty"`

	// Count is the number of search matches, or the sequence length for
	// other ops.
	Count *int `yaml:"count,omitempty"`

	// Index is the binary_search result.
	Index *int `yaml:"index,omitempty"`
}

// Assertion validates the trace or the final sequence.
type Assertion struct {
	Type string `yaml:"type"`

	// IDs is the expected final sequence (final_ids).
	IDs []string `yaml:"ids,omitempty"`

	// Op and Outcome select trace events (trace_count). Empty Outcome
	// matches both.
	Op      string `yaml:"op,omitempty"`
	Outcome string `yaml:"outcome,omitempty"`
	Count   int    `yaml:"count,omitempty"`

	// Ops is the expected relative order (trace_order).
	Ops []string `yaml:"ops,omitempty"`
}

// Step operations.
const (
	OpAdd          = "add"
	OpEdit         = "edit"
	OpRemove       = "remove"
	OpSortBubble   = "sort_bubble"
	OpSortMerge    = "sort_merge"
	OpSearch       = "search"
	OpBinarySearch = "binary_search"
	OpImport       = "import"
	OpExport       = "export"
)

// Assertion type constants.
const (
	AssertFinalIDs   = "final_ids"
	AssertTraceCount = "trace_count"
	AssertTraceOrder = "trace_order"
)

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos surface as errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks structure only. Record contents are validated
// when the steps run, since invalid records are legitimate test input.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(i int, step *Step) error {
	switch step.Op {
	case OpAdd:
		if step.Record == nil {
			return fmt.Errorf("steps[%d]: record is required for add", i)
		}
	case OpEdit:
		if step.Record == nil || step.Index == nil {
			return fmt.Errorf("steps[%d]: index and record are required for edit", i)
		}
	case OpRemove:
		if step.Index == nil {
			return fmt.Errorf("steps[%d]: index is required for remove", i)
		}
	case OpBinarySearch:
		if step.ID == "" {
			return fmt.Errorf("steps[%d]: id is required for binary_search", i)
		}
	case OpImport:
		if step.Payload == "" {
			return fmt.Errorf("steps[%d]: payload is required for import", i)
		}
	case OpSortBubble, OpSortMerge, OpSearch, OpExport:
	case "":
		return fmt.Errorf("steps[%d]: op is required", i)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
	}

	if step.Expect != nil && step.Expect.Error != "" && !isKnownKind(step.Expect.Error) {
		return fmt.Errorf("steps[%d].expect: unknown error kind %q", i, step.Expect.Error)
	}
	return nil
}

func validateAssertion(i int, a *Assertion) error {
	switch a.Type {
	case AssertFinalIDs:
		if a.IDs == nil {
			return fmt.Errorf("assertions[%d]: ids is required for final_ids (use [] for empty)", i)
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", i)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", i)
		}
		if a.Outcome != "" && a.Outcome != OutcomeOK && a.Outcome != OutcomeError {
			return fmt.Errorf("assertions[%d]: outcome must be %q or %q", i, OutcomeOK, OutcomeError)
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("assertions[%d]: ops list is required for trace_order", i)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", i)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", i, a.Type)
	}
	return nil
}

func isKnownKind(k string) bool {
	switch record.Kind(k) {
	case record.KindValidation, record.KindDuplicateID, record.KindIndex,
		record.KindFormat, record.KindStorage:
		return true
	}
	return false
}
