package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/manimcheck/internal/history"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	Run      string // optional - show a single run with probe results
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded check runs",
		Long: `List check runs recorded with 'manimcheck check --record'.

Examples:
  manimcheck history --db ./manimcheck.db
  manimcheck history --db ./manimcheck.db --limit 5
  manimcheck history --db ./manimcheck.db --run 4f9d2c1e-... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite history database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to list")
	cmd.Flags().StringVar(&opts.Run, "run", "", "show a single run by ID, including probe results")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Opening a missing path would create an empty database; reject it
	// instead so typos are visible.
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		msg := fmt.Sprintf("database not found: %s", opts.Database)
		_ = formatter.Error(ErrCodeDatabase, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	st, err := history.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := context.Background()

	if opts.Run != "" {
		return outputRun(ctx, formatter, st, opts.Run)
	}
	return outputRunList(ctx, formatter, st, opts.Limit)
}

func outputRun(ctx context.Context, formatter *OutputFormatter, st *history.Store, id string) error {
	run, err := st.GetRun(ctx, id)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load run", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(run)
	}

	writeRunLine(formatter, *run)
	fmt.Fprintln(formatter.Writer)
	for _, res := range run.Results {
		marker := "✓"
		if !res.OK {
			marker = "✗"
		}
		fmt.Fprintf(formatter.Writer, "  %s %s\n", marker, res.Message)
	}
	return nil
}

func outputRunList(ctx context.Context, formatter *OutputFormatter, st *history.Store, limit int) error {
	runs, err := st.ListRuns(ctx, limit)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No recorded runs")
		return nil
	}

	for _, run := range runs {
		writeRunLine(formatter, run)
	}
	return nil
}

func writeRunLine(formatter *OutputFormatter, run history.Run) {
	status := "ok"
	if !run.OK {
		status = "failed"
	}
	fmt.Fprintf(formatter.Writer, "%s  %s  %d/%d passed  %s\n",
		run.ID,
		run.StartedAt.Format("2006-01-02 15:04:05"),
		run.Passed,
		run.Total,
		status,
	)
}
