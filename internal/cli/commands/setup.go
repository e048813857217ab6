package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/jslint/internal/cli/output"
	"github.com/leapstack-labs/jslint/internal/config"
	"github.com/leapstack-labs/jslint/internal/plugin"
	"github.com/leapstack-labs/jslint/pkg/lint"
	_ "github.com/leapstack-labs/jslint/pkg/lint/rules" // register built-in rules
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config, logger and renderer stored on the
// command context by the root command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Format)),
	}
}

// ExitError ends the process with Code. It carries no message of its own:
// the command has already reported what went wrong.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 2
}

// Registry returns a registry holding the built-in rules and the plugin
// rules of cfg. Plugin rules whose code is already taken are dropped and
// reported in the returned diagnostics.
func (c *CommandContext) Registry() (*lint.Registry, []lint.Diagnostic, error) {
	registry := lint.NewRegistry()
	for _, rule := range lint.DefaultRegistry.All() {
		if err := registry.Register(rule); err != nil {
			return nil, nil, err
		}
	}
	if len(c.Cfg.Plugins) == 0 {
		return registry, nil, nil
	}

	pool := plugin.NewThreadPool(c.Cfg.Jobs, c.Logger)
	loader := plugin.NewLoader(c.Cfg.PluginSettings, pool, c.Logger)
	rules, err := loader.Load(c.Cfg.Plugins...)
	if err != nil {
		return nil, nil, err
	}
	diags := plugin.Install(registry, rules)
	c.Logger.Debug("plugins loaded", slog.Int("rules", len(rules)), slog.Int("dropped", len(diags)))
	return registry, diags, nil
}
