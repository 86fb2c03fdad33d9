package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/manimcheck/internal/config"
	"github.com/roach88/manimcheck/internal/history"
	"github.com/roach88/manimcheck/internal/probe"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Config   string
	Database string
	Record   bool
	Timeout  time.Duration
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run all environment checks",
		Long: `Run the three environment checks in order:

  1. renderer       - manim is on the PATH and answers --version
  2. client-library - the Python MCP client library is importable
  3. render         - a minimal scene renders end to end

All checks always run; a failure never skips the remaining checks.
The exit code is 0 when every check passes and 1 otherwise.

Examples:
  manimcheck check
  manimcheck check --config ./manimcheck.yaml --timeout 2m
  manimcheck check --record --db ./manimcheck.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite history database (required with --record)")
	cmd.Flags().BoolVar(&opts.Record, "record", false, "record this run in the history database")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "per-run timeout for external invocations (0 = none)")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := loadConfig(opts, cmd)
	if err != nil {
		_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	if opts.Record && opts.Database == "" {
		msg := "--db is required with --record"
		_ = formatter.Error(ErrCodeDatabase, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	formatter.VerboseLog("renderer: %s %v", cfg.Renderer, cfg.RendererArgs)
	formatter.VerboseLog("python: %s (import %s)", cfg.Python, cfg.ClientModule)

	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout.Std())
		defer cancel()
	}

	started := time.Now().UTC()
	sum := probe.Run(ctx, probe.All(cfg))
	finished := time.Now().UTC()

	if opts.Record {
		run := history.Run{
			ID:         uuid.New().String(),
			StartedAt:  started,
			FinishedAt: finished,
			Passed:     sum.Passed,
			Total:      sum.Total,
			OK:         sum.OK,
			Results:    sum.Results,
		}
		if err := recordRun(opts.Database, run); err != nil {
			_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		formatter.VerboseLog("recorded run %s", run.ID)
	}

	return outputSummary(formatter, sum)
}

// loadConfig builds the effective config from the optional file plus the
// --timeout flag. An explicit flag wins over the file value.
func loadConfig(opts *CheckOptions, cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = config.Duration(opts.Timeout)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func recordRun(dbPath string, run history.Run) error {
	st, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.WriteRun(context.Background(), run)
}

// outputSummary prints the run result and maps it to an exit code:
// nil when every check passed, ExitFailure otherwise.
func outputSummary(formatter *OutputFormatter, sum probe.Summary) error {
	if formatter.Format == "json" {
		response := CLIResponse{Status: "ok", Data: sum}
		if !sum.OK {
			response.Status = "error"
			response.Error = &CLIError{
				Code:    ErrCodeCheckFailed,
				Message: fmt.Sprintf("%d/%d checks passed", sum.Passed, sum.Total),
			}
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
	} else {
		writeTextSummary(formatter.Writer, sum)
	}

	if !sum.OK {
		return NewExitError(ExitFailure, fmt.Sprintf("%d/%d checks passed", sum.Passed, sum.Total))
	}
	return nil
}

// writeTextSummary renders the per-probe lines, the tally, and the banner.
func writeTextSummary(w io.Writer, sum probe.Summary) {
	for _, res := range sum.Results {
		marker := "✓"
		if !res.OK {
			marker = "✗"
		}
		fmt.Fprintf(w, "%s %s\n\n", marker, res.Message)
	}

	fmt.Fprintf(w, "%d/%d passed\n\n", sum.Passed, sum.Total)

	if sum.OK {
		fmt.Fprintln(w, "✓ All checks passed")
	} else {
		fmt.Fprintln(w, "✗ Some checks failed")
	}
}
