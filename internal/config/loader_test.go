package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/jslint/pkg/lint"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringSlice("tag", nil, "")
	flags.StringSlice("rule", nil, "")
	flags.StringSlice("plugin", nil, "")
	flags.Int("jobs", 0, "")
	flags.String("format", "", "")
	flags.Bool("no-ignore", false, "")
	flags.String("ignore-marker", "", "")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{lint.TagRecommended}, cfg.Tags)
	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.Equal(t, 0, cfg.Jobs)
	assert.Contains(t, cfg.Files.Include, "*.ts")
	assert.Contains(t, cfg.Files.Exclude, "node_modules")
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_FileFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: ConfigFileName,
			content: `tags: [recommended, react]
exclude: [no-var]
plugins: [plugins/team.star]
jobs: 4
format: json
plugin_settings:
  banned: [foo]
files:
  exclude: [dist]
`,
		},
		{
			name: "yml",
			file: ConfigFileNameAlt,
			content: `tags: [recommended, react]
exclude: [no-var]
plugins: [plugins/team.star]
jobs: 4
format: json
plugin_settings:
  banned: [foo]
files:
  exclude: [dist]
`,
		},
		{
			name: "toml",
			file: ConfigFileNameTOML,
			content: `tags = ["recommended", "react"]
exclude = ["no-var"]
plugins = ["plugins/team.star"]
jobs = 4
format = "json"

[plugin_settings]
banned = ["foo"]

[files]
exclude = ["dist"]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.content)
			t.Chdir(dir)

			cfg, err := LoadConfig("", nil)
			require.NoError(t, err)

			assert.Equal(t, []string{"recommended", "react"}, cfg.Tags)
			assert.Equal(t, []string{"no-var"}, cfg.Exclude)
			assert.Equal(t, 4, cfg.Jobs)
			assert.Equal(t, FormatJSON, cfg.Format)
			assert.Equal(t, []string{"dist"}, cfg.Files.Exclude)
			assert.Contains(t, cfg.Files.Include, "*.js", "defaults survive for unset nested keys")
			assert.Contains(t, cfg.PluginSettings, "banned")
			assert.True(t, filepath.IsAbs(cfg.Plugins[0]), "plugin paths are resolved")
			assert.Equal(t, filepath.Base(GetConfigFileUsed()), tt.file)
		})
	}
}

func TestLoadConfig_SearchesUpward(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	writeFile(t, root, ConfigFileName, "format: compact\n")
	sub := filepath.Join(root, "src", "app")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	t.Chdir(sub)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, FormatCompact, cfg.Format)

	wantRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(cfg.ProjectRoot)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.yaml", "jobs: 2\n")
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, dir, cfg.ProjectRoot)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_Precedence(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, "format: compact\njobs: 2\ntags: [react]\n")
	t.Chdir(dir)

	t.Setenv("JSLINT_JOBS", "3")
	t.Setenv("JSLINT_TAGS", "recommended, jsx")
	t.Setenv("JSLINT_FILES_EXCLUDE", "dist,build")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--format", "json", "--rule", "eqeqeq", "--no-ignore"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, cfg.Format, "flag beats file")
	assert.Equal(t, 3, cfg.Jobs, "env beats file")
	assert.Equal(t, []string{"recommended", "jsx"}, cfg.Tags, "env lists are split")
	assert.Equal(t, []string{"dist", "build"}, cfg.Files.Exclude)
	assert.Equal(t, []string{"eqeqeq"}, cfg.Include, "renamed flag key")
	assert.True(t, cfg.DisableIgnoreDirectives)
}

func TestLoadConfig_UnchangedFlagsIgnored(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, "format: compact\n")
	t.Chdir(dir)

	cfg, err := LoadConfig("", testFlags())
	require.NoError(t, err)
	assert.Equal(t, FormatCompact, cfg.Format)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{"bad format", "format: xml\n", "invalid format"},
		{"negative jobs", "jobs: -1\n", "jobs must not be negative"},
		{"unknown environment", "environments: [mars]\n", "unknown environment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			dir := t.TempDir()
			writeFile(t, dir, ConfigFileName, tt.content)
			t.Chdir(dir)

			_, err := LoadConfig("", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConfig_LintOptions(t *testing.T) {
	registry := lint.NewRegistry()
	registry.MustRegister(lint.Define(lint.RuleDef{Code: "a", Tags: []string{lint.TagRecommended}}))
	registry.MustRegister(lint.Define(lint.RuleDef{Code: "b"}))
	registry.MustRegister(lint.Define(lint.RuleDef{Code: "c", Tags: []string{lint.TagRecommended}}))

	cfg := &Config{
		Tags:             []string{lint.TagRecommended},
		Include:          []string{"b"},
		Exclude:          []string{"c"},
		Globals:          []string{"myGlobal"},
		IgnoreMarker:     "nolint",
		IgnoreFileMarker: "nolint-file",
	}
	opts, err := cfg.LintOptions(registry)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, opts.Rules.Codes())
	assert.True(t, opts.Globals.Writable("myGlobal"))
	assert.Equal(t, "nolint", opts.IgnoreMarker)
	assert.Equal(t, "nolint-file", opts.IgnoreFileMarker)
}

func TestConfig_GlobalsTable_UnknownEnvironment(t *testing.T) {
	cfg := &Config{Environments: []string{"mars"}}
	_, err := cfg.GlobalsTable()
	assert.Error(t, err)
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "fallback logger")

	logger := slog.New(slog.DiscardHandler)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}

func TestGetConfig(t *testing.T) {
	fallback := GetConfig(context.Background())
	require.NotNil(t, fallback)
	assert.Equal(t, DefaultFormat, fallback.Format)
	assert.Equal(t, []string{lint.TagRecommended}, fallback.Tags)
	assert.Contains(t, fallback.Files.Exclude, DefaultCache)
	require.NoError(t, fallback.Validate())

	cfg := &Config{Format: FormatJSON}
	assert.Same(t, cfg, GetConfig(WithConfig(context.Background(), cfg)))
}
