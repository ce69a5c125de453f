package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/roster/internal/record"
)

// RecordView is a record with its position, as printed by list and search.
type RecordView struct {
	Index int `json:"index"`
	record.Record
}

// MutationResult is the JSON payload of add, edit, remove, sort and import.
type MutationResult struct {
	Op      string         `json:"op"`
	Record  *record.Record `json:"record,omitempty"`
	Index   *int           `json:"index,omitempty"`
	Records int            `json:"records"`
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <id> <name> <department>",
		Short: "Add a student record",
		Long: `Add a student record at the end of the list.

The id must be 9-12 digits and unique, the name 2-50 letters or spaces,
and the department 2-50 characters.

Example:
  roster add 220101001 "Siti Aminah" "Sistem Informasi"`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(rootOpts, args, cmd)
		},
	}
}

func runAdd(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	rec, err := record.New(args[0], args[1], args[2])
	if err != nil {
		return formatter.Fail(err)
	}

	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.store.Add(s.ctx, rec); err != nil {
		return s.formatter.Fail(err)
	}
	s.logger.Info("record added", "id", rec.ID)

	return outputMutation(s.formatter, MutationResult{Op: "add", Record: &rec, Records: s.store.Len()},
		fmt.Sprintf("✓ added %s (%s)", rec.ID, rec.Name))
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index> <id> <name> <department>",
		Short: "Replace the record at an index",
		Long: `Replace the record at the given index (as shown by list), keeping
its position. The id may change as long as no other record uses it.

Example:
  roster edit 0 220101001 "Siti Aminah" "Teknik Elektro"`,
		Args:          cobra.ExactArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(rootOpts, args, cmd)
		},
	}
}

func runEdit(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	index, err := parseIndex(formatter, args[0])
	if err != nil {
		return err
	}
	rec, err := record.New(args[1], args[2], args[3])
	if err != nil {
		return formatter.Fail(err)
	}

	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.store.Edit(s.ctx, index, rec); err != nil {
		return s.formatter.Fail(err)
	}
	s.logger.Info("record edited", "index", index, "id", rec.ID)

	return outputMutation(s.formatter, MutationResult{Op: "edit", Record: &rec, Index: &index, Records: s.store.Len()},
		fmt.Sprintf("✓ updated record %d (%s)", index, rec.ID))
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "remove <index>",
		Aliases:       []string{"rm"},
		Short:         "Remove the record at an index",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(rootOpts, args[0], cmd)
		},
	}
}

func runRemove(opts *RootOptions, arg string, cmd *cobra.Command) error {
	index, err := parseIndex(newFormatter(opts, cmd), arg)
	if err != nil {
		return err
	}

	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	removed, err := s.store.Get(index)
	if err != nil {
		return s.formatter.Fail(err)
	}
	if err := s.store.Remove(s.ctx, index); err != nil {
		return s.formatter.Fail(err)
	}
	s.logger.Info("record removed", "index", index, "id", removed.ID)

	return outputMutation(s.formatter, MutationResult{Op: "remove", Record: &removed, Index: &index, Records: s.store.Len()},
		fmt.Sprintf("✓ removed record %d (%s)", index, removed.ID))
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "get <index>",
		Short:         "Show the record at an index",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(newFormatter(rootOpts, cmd), args[0])
			if err != nil {
				return err
			}

			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			rec, err := s.store.Get(index)
			if err != nil {
				return s.formatter.Fail(err)
			}
			return outputRecords(s.formatter, []RecordView{{Index: index, Record: rec}})
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Aliases:       []string{"ls"},
		Short:         "List all records in their current order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			return outputRecords(s.formatter, indexed(s.store.All()))
		},
	}
}

// parseIndex converts a CLI index argument.
func parseIndex(formatter *OutputFormatter, arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		msg := fmt.Sprintf("invalid index %q: must be an integer", arg)
		_ = formatter.Error(ErrCodeGeneric, msg, nil)
		return 0, NewExitError(ExitCommandError, msg)
	}
	return index, nil
}

// indexed pairs every record with its position.
func indexed(recs []record.Record) []RecordView {
	views := make([]RecordView, len(recs))
	for i, r := range recs {
		views[i] = RecordView{Index: i, Record: r}
	}
	return views
}

// outputMutation prints a mutation result.
func outputMutation(formatter *OutputFormatter, result MutationResult, text string) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintln(formatter.Writer, text)
	return nil
}

// outputRecords prints records as a table or a JSON array.
func outputRecords(formatter *OutputFormatter, views []RecordView) error {
	if formatter.Format == "json" {
		return formatter.Success(views)
	}
	if len(views) == 0 {
		fmt.Fprintln(formatter.Writer, "No records.")
		return nil
	}
	return writeTable(formatter.Writer, views)
}

func writeTable(w io.Writer, views []RecordView) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tID\tNAME\tDEPARTMENT")
	for _, v := range views {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", v.Index, v.ID, v.Name, v.Department)
	}
	return tw.Flush()
}
