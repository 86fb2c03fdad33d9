package probe

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/roach88/manimcheck/internal/config"
)

// CheckClientLibrary verifies the MCP client library is importable from
// the configured Python interpreter. The interpreter is the module
// resolution authority here; manimcheck only observes its exit status.
func CheckClientLibrary(ctx context.Context, cfg *config.Config) Result {
	interp, err := exec.LookPath(cfg.Python)
	if err != nil {
		return Result{
			Name:    NameClientLibrary,
			Message: fmt.Sprintf("%s not found on PATH", cfg.Python),
		}
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, interp, "-c", "import "+cfg.ClientModule)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return Result{
			Name:    NameClientLibrary,
			Message: fmt.Sprintf("import %s failed: %s", cfg.ClientModule, msg),
		}
	}

	return Result{
		Name:    NameClientLibrary,
		OK:      true,
		Message: fmt.Sprintf("%s client library imports cleanly", cfg.ClientModule),
	}
}
