package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the manimcheck CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	rootCheckOpts := &CheckOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   "manimcheck",
		Short: "Smoke checks for a Manim MCP server environment",
		Long: `manimcheck verifies a host is ready to serve Manim renders over MCP.

It probes the environment from the outside in: the Manim binary on the
PATH, the Python MCP client library, and a minimal end-to-end render.

Run with no arguments to execute all checks with default settings.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		// Bare `manimcheck` behaves like `manimcheck check` with defaults.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootCheckOpts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
