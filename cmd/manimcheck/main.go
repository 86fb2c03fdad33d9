package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/manimcheck/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		code := cli.GetExitCode(err)

		// Check failures already printed the tally and banner; command
		// errors and bare flag/usage errors still need a line here.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || code == cli.ExitCommandError {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(code)
	}
}
