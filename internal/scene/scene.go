// Package scene materializes the minimal Manim scene used by the
// end-to-end render check.
package scene

import (
	"fmt"
	"os"
)

// ClassName is the scene class the renderer is asked to render.
// It must match the class defined in Source.
const ClassName = "SimpleTest"

// Source is the scene definition written to the temp file. It renders a
// single text label, which exercises the full pipeline without requiring
// LaTeX for math typesetting.
const Source = `from manim import *

class SimpleTest(Scene):
    def construct(self):
        text = Text("Manim is working!")
        self.add(text)
`

// Materialize writes the scene source to a fresh temp file in dir and
// returns its path plus a cleanup func. The caller must defer cleanup so
// the file is removed on every exit path, including failures partway
// through a render.
func Materialize(dir string) (path string, cleanup func(), err error) {
	f, err := os.CreateTemp(dir, "manimcheck-*.py")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create scene file: %w", err)
	}
	path = f.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, err := f.WriteString(Source); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write scene file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to close scene file: %w", err)
	}

	return path, cleanup, nil
}
