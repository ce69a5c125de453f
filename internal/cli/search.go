package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/roster/internal/algo"
	"github.com/roach88/roster/internal/record"
)

// SearchOptions holds options for the search command.
type SearchOptions struct {
	*RootOptions
	ID   string
	Sort bool
}

// SearchResult is the JSON payload of a binary search.
type SearchResult struct {
	ID     string         `json:"id"`
	Index  int            `json:"index"`
	Record *record.Record `json:"record,omitempty"`
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search records by id or name",
		Long: `Search records.

Without --id, lists every record whose id or name contains the query,
ignoring case. An empty query lists all records.

With --id, runs a binary search for an exact id. Binary search needs the
records sorted by id; pass --sort to merge-sort (and save) them first.

Examples:
  roster search mar
  roster search --sort --id 220101001`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return runSearch(opts, query, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "exact id to find with binary search")
	cmd.Flags().BoolVar(&opts.Sort, "sort", false, "merge-sort by id before a binary search")

	return cmd
}

func runSearch(opts *SearchOptions, query string, cmd *cobra.Command) error {
	if opts.ID != "" && query != "" {
		formatter := newFormatter(opts.RootOptions, cmd)
		msg := "pass either a query or --id, not both"
		_ = formatter.Error(ErrCodeGeneric, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	s, err := openSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if opts.ID == "" {
		return outputRecords(s.formatter, matchViews(s.store.All(), s.store.LinearSearch(query)))
	}

	if opts.Sort {
		if err := s.store.MergeSort(s.ctx); err != nil {
			return s.formatter.Fail(err)
		}
	}

	index := s.store.BinarySearch(opts.ID)
	s.logger.Debug("binary search", "id", opts.ID, "index", index, "sorted_first", opts.Sort)

	result := SearchResult{ID: opts.ID, Index: index}
	if index != algo.NotFound {
		rec, err := s.store.Get(index)
		if err != nil {
			return s.formatter.Fail(err)
		}
		result.Record = &rec
	}

	if s.formatter.Format == "json" {
		return s.formatter.Success(result)
	}
	if result.Record == nil {
		fmt.Fprintf(s.formatter.Writer, "%s not found\n", opts.ID)
		return nil
	}
	return writeTable(s.formatter.Writer, []RecordView{{Index: index, Record: *result.Record}})
}

// matchViews attaches each match's position in all. Ids are unique, so the
// id identifies the position.
func matchViews(all, matches []record.Record) []RecordView {
	pos := make(map[string]int, len(all))
	for i, r := range all {
		pos[r.ID] = i
	}
	views := make([]RecordView, len(matches))
	for i, m := range matches {
		views[i] = RecordView{Index: pos[m.ID], Record: m}
	}
	return views
}
