package commands

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/jslint/internal/cli/output"
	"github.com/leapstack-labs/jslint/internal/config"
	"github.com/leapstack-labs/jslint/internal/runner"
	"github.com/leapstack-labs/jslint/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const teamPlugin = `
def check(file):
    for node in file.nodes:
        if node.kind == "debugger_statement":
            report(node, "debugger left in code")

rule(code = "team-no-debugger", check = check, tags = ["team"])
`

func TestNewLintCommand(t *testing.T) {
	cmd := NewLintCommand("test")

	assert.Equal(t, "lint [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"watch", "cache", "clear-cache"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestLintCommand_Clean(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.js", "export const a = 1;\n")

	out, _, err := execute(t, NewLintCommand("test"), compactConfig(t), dir)
	require.NoError(t, err)
	assert.Equal(t, "Checked 1 file\n", out)
}

func TestLintCommand_Diagnostics(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.js", "debugger;\n")

	out, _, err := execute(t, NewLintCommand("test"), compactConfig(t), dir)
	require.Error(t, err)
	assert.Equal(t, runner.ExitDiagnostics, ExitCode(err))
	assert.Contains(t, out, path+": line 1, col 1, Error - ")
	assert.Contains(t, out, "(no-debugger)")
	assert.Contains(t, out, "Found 1 problem")
}

func TestLintCommand_MissingPath(t *testing.T) {
	_, _, err := execute(t, NewLintCommand("test"), compactConfig(t), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
}

func TestLintCommand_RuleSelection(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.js", "export function f(a, b) { debugger; return a == b; }\n")

	cfg := compactConfig(t)
	cfg.Tags = []string{}
	cfg.Include = []string{"eqeqeq"}

	out, _, err := execute(t, NewLintCommand("test"), cfg, dir)
	require.Error(t, err)
	assert.Contains(t, out, "(eqeqeq)")
	assert.NotContains(t, out, "(no-debugger)")
}

func TestLintCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.js", "debugger;\n")

	cfg := compactConfig(t)
	cfg.Format = config.FormatJSON

	out, _, err := execute(t, NewLintCommand("test"), cfg, dir)
	require.Error(t, err)

	var report output.ReportJSON
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, "no-debugger", report.Diagnostics[0].Code)
	assert.Equal(t, 1, report.Summary.Files)
	assert.NotEmpty(t, report.RunID)
}

func TestLintCommand_Plugins(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "src/a.js", "debugger;\n")
	plugin := writeSource(t, t.TempDir(), "team.star", teamPlugin)

	cfg := compactConfig(t)
	cfg.Plugins = []string{plugin}
	cfg.Include = []string{"team-no-debugger"}

	out, _, err := execute(t, NewLintCommand("test"), cfg, filepath.Join(dir, "src"))
	require.Error(t, err)
	assert.Contains(t, out, "Error - debugger left in code (team-no-debugger)")
	assert.Contains(t, out, "(no-debugger)")
}

func TestLintCommand_DuplicatePluginRule(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.js", "export const a = 1;\n")
	plugin := writeSource(t, t.TempDir(), "dup.star", `rule(code = "no-debugger", check = lambda file: None)`)

	cfg := compactConfig(t)
	cfg.Plugins = []string{plugin}

	out, _, err := execute(t, NewLintCommand("test"), cfg, dir)
	require.Error(t, err)
	assert.Equal(t, runner.ExitDiagnostics, ExitCode(err))
	assert.Contains(t, out, "(plugin-duplicate-rule)")
	assert.Contains(t, out, plugin+": ")
}

func TestLintCommand_BrokenPlugin(t *testing.T) {
	plugin := writeSource(t, t.TempDir(), "bad.star", "rule(")

	cfg := compactConfig(t)
	cfg.Plugins = []string{plugin}

	_, _, err := execute(t, NewLintCommand("test"), cfg, t.TempDir())
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
}

func TestLintCommand_Cache(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.js", "debugger;\n")

	cfg := compactConfig(t)
	cfg.Cache = filepath.Join(t.TempDir(), "cache")

	first, _, err := execute(t, NewLintCommand("test"), cfg, "--cache", dir)
	require.Error(t, err)
	entries, err := os.ReadDir(cfg.Cache)
	require.NoError(t, err)
	assert.NotEmpty(t, entries, "cache should hold the result")

	second, _, err := execute(t, NewLintCommand("test"), cfg, "--cache", dir)
	require.Error(t, err)
	assert.Equal(t, first, second)

	_, _, err = execute(t, NewLintCommand("test"), cfg, "--clear-cache", dir)
	require.Error(t, err)
	entries, err = os.ReadDir(cfg.Cache)
	require.NoError(t, err)
	assert.Empty(t, entries, "clear-cache without cache leaves it empty")
}

func TestLintCommand_DefaultCacheDir(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.js", "export const a = 1;\n")

	cfg := compactConfig(t)
	_, _, err := execute(t, NewLintCommand("test"), cfg, "--cache", dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(cfg.ProjectRoot, config.DefaultCache))
	assert.NoError(t, err)
}

func TestFingerprint(t *testing.T) {
	cfg := config.Default()
	registry := lint.NewRegistry()
	linter := lint.New(lint.Options{Registry: registry})

	base := fingerprint("1.0.0", cfg, linter, registry)
	assert.Equal(t, base, fingerprint("1.0.0", cfg, linter, registry))
	assert.NotEqual(t, base, fingerprint("1.0.1", cfg, linter, registry))

	marked := *cfg
	marked.IgnoreMarker = "nolint"
	assert.NotEqual(t, base, fingerprint("1.0.0", &marked, linter, registry))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(&ExitError{Code: 1}))
	assert.Equal(t, 2, ExitCode(errors.New("boom")))
}
