package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/manimcheck/internal/history"
	"github.com/roach88/manimcheck/internal/probe"
)

func writeFakeBin(t *testing.T, dir, name, script string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
}

// setupHealthyEnv puts fake manim and python3 binaries on the PATH so all
// three checks pass without a real Manim install.
func setupHealthyEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	writeFakeBin(t, dir, "manim", `if [ "$1" = "--version" ]; then echo "Manim Community v0.18.1"; fi
exit 0`)
	writeFakeBin(t, dir, "python3", `exit 0`)
	t.Setenv("PATH", dir)
}

func execCheck(t *testing.T, rootOpts *RootOptions, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewCheckCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestCheckAllPass(t *testing.T) {
	setupHealthyEnv(t)

	buf, err := execCheck(t, &RootOptions{Format: "text"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "✓ manim available: Manim Community v0.18.1")
	assert.Contains(t, out, "✓ mcp client library imports cleanly")
	assert.Contains(t, out, "✓ rendered SimpleTest scene successfully")
	assert.Contains(t, out, "3/3 passed")
	assert.Contains(t, out, "✓ All checks passed")
}

func TestCheckFailureExitCode(t *testing.T) {
	t.Setenv("PATH", t.TempDir()) // nothing installed

	buf, err := execCheck(t, &RootOptions{Format: "text"})
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out := buf.String()
	assert.Contains(t, out, "manim not found on PATH")
	assert.Contains(t, out, "0/3 passed")
	assert.Contains(t, out, "✗ Some checks failed")
}

func TestCheckPartialFailure(t *testing.T) {
	dir := t.TempDir()
	writeFakeBin(t, dir, "manim", `if [ "$1" = "--version" ]; then echo "Manim Community v0.18.1"; exit 0; fi
echo "LaTeX not found" >&2
exit 1`)
	writeFakeBin(t, dir, "python3", `exit 0`)
	t.Setenv("PATH", dir)

	buf, err := execCheck(t, &RootOptions{Format: "text"})
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out := buf.String()
	assert.Contains(t, out, "✗ render failed: LaTeX not found")
	assert.Contains(t, out, "2/3 passed")
}

func TestCheckJSON(t *testing.T) {
	setupHealthyEnv(t)

	buf, err := execCheck(t, &RootOptions{Format: "json"})
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   probe.Summary `json:"data"`
		Error  *CLIError     `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
	assert.Equal(t, 3, resp.Data.Passed)
	assert.Equal(t, 3, resp.Data.Total)
	assert.True(t, resp.Data.OK)
	require.Len(t, resp.Data.Results, 3)
	assert.Equal(t, probe.NameRenderer, resp.Data.Results[0].Name)
}

func TestCheckJSONFailure(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	buf, err := execCheck(t, &RootOptions{Format: "json"})
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string        `json:"status"`
		Data   probe.Summary `json:"data"`
		Error  *CLIError     `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))

	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeCheckFailed, resp.Error.Code)
	assert.Equal(t, "0/3 checks passed", resp.Error.Message)
	assert.Len(t, resp.Data.Results, 3, "results are still reported on failure")
}

func TestCheckBadConfigPath(t *testing.T) {
	setupHealthyEnv(t)

	buf, err := execCheck(t, &RootOptions{Format: "text"},
		"--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [E001]")
}

func TestCheckNegativeTimeout(t *testing.T) {
	setupHealthyEnv(t)

	_, err := execCheck(t, &RootOptions{Format: "text"}, "--timeout", "-1s")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestCheckRecordRequiresDB(t *testing.T) {
	setupHealthyEnv(t)

	_, err := execCheck(t, &RootOptions{Format: "text"}, "--record")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--db is required with --record")
}

func TestCheckRecord(t *testing.T) {
	setupHealthyEnv(t)
	dbPath := filepath.Join(t.TempDir(), "manimcheck.db")

	_, err := execCheck(t, &RootOptions{Format: "text"}, "--record", "--db", dbPath)
	require.NoError(t, err)

	st, err := history.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].OK)
	assert.Equal(t, 3, runs[0].Passed)

	run, err := st.GetRun(context.Background(), runs[0].ID)
	require.NoError(t, err)
	assert.Len(t, run.Results, 3)
}

func TestCheckRecordsFailedRunsToo(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	dbPath := filepath.Join(t.TempDir(), "manimcheck.db")

	_, err := execCheck(t, &RootOptions{Format: "text"}, "--record", "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	st, err := history.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].OK)
	assert.Equal(t, 0, runs[0].Passed)
}

func TestWriteTextSummaryGolden(t *testing.T) {
	g := goldie.New(t)

	pass := probe.Summary{
		Results: []probe.Result{
			{Name: probe.NameRenderer, OK: true, Message: "manim available: Manim Community v0.18.1"},
			{Name: probe.NameClientLibrary, OK: true, Message: "mcp client library imports cleanly"},
			{Name: probe.NameRender, OK: true, Message: "rendered SimpleTest scene successfully"},
		},
		Passed: 3,
		Total:  3,
		OK:     true,
	}

	buf := &bytes.Buffer{}
	writeTextSummary(buf, pass)
	g.Assert(t, "check_pass", buf.Bytes())

	fail := probe.Summary{
		Results: []probe.Result{
			{Name: probe.NameRenderer, OK: true, Message: "manim available: Manim Community v0.18.1"},
			{Name: probe.NameClientLibrary, OK: true, Message: "mcp client library imports cleanly"},
			{Name: probe.NameRender, OK: false, Message: "render failed: LaTeX not found"},
		},
		Passed: 2,
		Total:  3,
		OK:     false,
	}

	buf.Reset()
	writeTextSummary(buf, fail)
	g.Assert(t, "check_fail", buf.Bytes())
}
