package probe

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/roach88/manimcheck/internal/config"
)

// CheckRenderer verifies the Manim binary is on the PATH and responds to
// --version with exit status zero.
//
// A missing executable is distinguished from a failing one: LookPath
// resolves the binary first, so "not found" is reported without ever
// spawning a process.
func CheckRenderer(ctx context.Context, cfg *config.Config) Result {
	path, err := exec.LookPath(cfg.Renderer)
	if err != nil {
		return Result{
			Name:    NameRenderer,
			Message: fmt.Sprintf("%s not found on PATH", cfg.Renderer),
		}
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "--version")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return Result{
			Name:    NameRenderer,
			Message: fmt.Sprintf("%s --version failed: %s", cfg.Renderer, msg),
		}
	}

	return Result{
		Name:    NameRenderer,
		OK:      true,
		Message: fmt.Sprintf("%s available: %s", cfg.Renderer, strings.TrimSpace(stdout.String())),
	}
}
