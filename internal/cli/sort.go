package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Sorting algorithms accepted by --algo.
const (
	AlgoBubble = "bubble"
	AlgoMerge  = "merge"
)

// SortOptions holds options for the sort command.
type SortOptions struct {
	*RootOptions
	Algo string
}

// NewSortCommand creates the sort command.
func NewSortCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SortOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort records ascending by id and save the new order",
		Long: `Sort records ascending by id and save the new order.

Ids compare as strings, so "1000000000" sorts before "200000002".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Algo, "algo", AlgoMerge, "sorting algorithm (bubble|merge)")

	return cmd
}

func runSort(opts *SortOptions, cmd *cobra.Command) error {
	if opts.Algo != AlgoBubble && opts.Algo != AlgoMerge {
		formatter := newFormatter(opts.RootOptions, cmd)
		msg := fmt.Sprintf("invalid algorithm %q: must be %s or %s", opts.Algo, AlgoBubble, AlgoMerge)
		_ = formatter.Error(ErrCodeGeneric, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	s, err := openSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	sortFn := s.store.MergeSort
	if opts.Algo == AlgoBubble {
		sortFn = s.store.BubbleSort
	}
	if err := sortFn(s.ctx); err != nil {
		return s.formatter.Fail(err)
	}
	s.logger.Info("records sorted", "algorithm", opts.Algo, "count", s.store.Len())

	if s.formatter.Format == "json" {
		return s.formatter.Success(MutationResult{Op: "sort_" + opts.Algo, Records: s.store.Len()})
	}
	return outputRecords(s.formatter, indexed(s.store.All()))
}
