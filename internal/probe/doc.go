// Package probe implements the environment checks run by manimcheck.
//
// A probe is one self-contained check of the host environment: it spawns
// an external process (or inspects the PATH), captures its output, and
// reports a pass/fail Result with a human-readable message. Probes never
// panic and never return an error - every fault, including a missing
// executable or a filesystem failure, is converted into a failing Result
// so the driver can always print a complete tally.
//
// The three probes verify, in fixed order:
//
//  1. renderer       - the Manim binary is on the PATH and answers --version
//  2. client-library - the Python MCP client library is importable
//  3. render         - a minimal scene renders end to end
//
// Probes are strictly sequential and share no state; the only shared
// external resource is the system temp directory, used transiently by the
// render probe.
package probe
