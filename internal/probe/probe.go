package probe

import (
	"context"

	"github.com/roach88/manimcheck/internal/config"
)

// Result is the outcome of a single probe.
type Result struct {
	// Name identifies the probe ("renderer", "client-library", "render").
	Name string `json:"name"`

	// OK indicates whether the check passed.
	OK bool `json:"ok"`

	// Message is the human-readable pass/fail line, including captured
	// diagnostic text from the spawned process on failure.
	Message string `json:"message"`
}

// Probe is one named environment check. Run must not panic; every fault
// is reported as a failing Result.
type Probe struct {
	Name string
	Run  func(ctx context.Context) Result
}

// All returns the probes in their fixed execution order:
// renderer availability, client-library import, end-to-end render.
func All(cfg *config.Config) []Probe {
	return []Probe{
		{Name: NameRenderer, Run: func(ctx context.Context) Result { return CheckRenderer(ctx, cfg) }},
		{Name: NameClientLibrary, Run: func(ctx context.Context) Result { return CheckClientLibrary(ctx, cfg) }},
		{Name: NameRender, Run: func(ctx context.Context) Result { return CheckRender(ctx, cfg) }},
	}
}

// Probe name constants.
const (
	NameRenderer      = "renderer"
	NameClientLibrary = "client-library"
	NameRender        = "render"
)
