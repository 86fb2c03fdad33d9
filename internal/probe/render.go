package probe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/roach88/manimcheck/internal/config"
	"github.com/roach88/manimcheck/internal/scene"
)

// CheckRender runs a minimal scene through the renderer end to end:
// write the scene source to a temp file, invoke the renderer against it
// with the configured flags, and treat exit status zero as the sole
// success criterion. No output-content validation is performed.
//
// Each fallible step reports its own failure; the scene file is removed
// on every exit path via the deferred cleanup, so it never outlives the
// probe regardless of how the render goes.
func CheckRender(ctx context.Context, cfg *config.Config) Result {
	dir := os.TempDir()

	scenePath, cleanup, err := scene.Materialize(dir)
	if err != nil {
		return Result{
			Name:    NameRender,
			Message: err.Error(),
		}
	}
	defer cleanup()

	args := make([]string, 0, len(cfg.RendererArgs)+2)
	args = append(args, cfg.RendererArgs...)
	args = append(args, scenePath, scene.ClassName)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, cfg.Renderer, args...)
	// Media output and partial movie files land next to the scene, not in
	// the caller's working directory.
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return Result{
			Name:    NameRender,
			Message: fmt.Sprintf("render failed: %s", msg),
		}
	}

	return Result{
		Name:    NameRender,
		OK:      true,
		Message: fmt.Sprintf("rendered %s scene successfully", scene.ClassName),
	}
}
