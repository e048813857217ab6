package commands

import (
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/jslint/internal/cli/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRulesCommand(t *testing.T) {
	cmd := NewRulesCommand()

	assert.Equal(t, "rules [code]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"all", "json"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRulesCommand_List(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		contains   []string
		notContain []string
	}{
		{
			name:       "configured selection",
			contains:   []string{" - no-debugger ✔️", " - no-undef ✔️"},
			notContain: []string{"eqeqeq", "no-console"},
		},
		{
			name:     "all rules",
			args:     []string{"--all"},
			contains: []string{" - no-debugger ✔️", " - eqeqeq\n", " - no-console\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, NewRulesCommand(), compactConfig(t), tt.args...)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notContain {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestRulesCommand_JSON(t *testing.T) {
	out, _, err := execute(t, NewRulesCommand(), compactConfig(t), "--json", "--all")
	require.NoError(t, err)

	var got output.RulesJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, len(got.Rules), got.Count.Total)
	assert.Positive(t, got.Count.Recommended)
	assert.Less(t, got.Count.Recommended, got.Count.Total)
}

func TestRulesCommand_Show(t *testing.T) {
	cfg := compactConfig(t)
	cfg.Format = "pretty"

	out, _, err := execute(t, NewRulesCommand(), cfg, "no-debugger")
	require.NoError(t, err)
	assert.Contains(t, out, "no-debugger")
	assert.Contains(t, out, "Tags: Recommended")
	assert.Contains(t, out, "Docs: ")
}

func TestRulesCommand_Unknown(t *testing.T) {
	_, _, err := execute(t, NewRulesCommand(), compactConfig(t), "no-such-rule")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `rule "no-such-rule" not found`)
}

func TestRulesCommand_PluginRules(t *testing.T) {
	cfg := compactConfig(t)
	cfg.Plugins = []string{writeSource(t, t.TempDir(), "team.star", teamPlugin)}

	out, _, err := execute(t, NewRulesCommand(), cfg, "--all")
	require.NoError(t, err)
	assert.Contains(t, out, " - team-no-debugger\n")
}
