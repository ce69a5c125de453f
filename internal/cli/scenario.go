package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/roster/internal/harness"
)

// NewScenarioCommand creates the scenario command.
func NewScenarioCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scenario <file.yaml>",
		Short: "Replay a YAML scenario against an in-memory store",
		Long: `Replay a YAML scenario against a fresh in-memory store and print its
trace. Configured storage is never touched.

Exits with code 1 if any expectation or assertion in the scenario fails.

Example:
  roster scenario internal/harness/testdata/scenarios/crud_basics.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(rootOpts, args[0], cmd)
		},
	}
}

func runScenario(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}
	formatter.VerboseLog("Running scenario %s (%d steps)", scenario.Name, len(scenario.Steps))

	cfg, err := resolveConfig(opts)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	logger := newLogger(cfg.Log, opts.Verbose, cmd.ErrOrStderr())
	result, err := harness.RunContext(cmd.Context(), scenario, logger)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to run scenario", err)
	}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		printTrace(formatter, scenario.Name, result)
	}

	if !result.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %s failed", scenario.Name))
	}
	return nil
}

func printTrace(formatter *OutputFormatter, name string, result *harness.Result) {
	w := formatter.Writer
	fmt.Fprintf(w, "Scenario: %s\n", name)
	for _, ev := range result.Trace {
		line := fmt.Sprintf("  [%d] %-13s %-5s %v", ev.Step, ev.Op, ev.Outcome, ev.IDs)
		if ev.Detail != "" {
			line += "  " + ev.Detail
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "Final: %v\n", result.Final)

	if result.Pass {
		fmt.Fprintln(w, "✓ PASS")
		return
	}
	fmt.Fprintln(w, "✗ FAIL")
	for _, e := range result.Errors {
		fmt.Fprintf(w, "  - %s\n", e)
	}
}
