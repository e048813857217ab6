package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/leapstack-labs/jslint/internal/config"
	"github.com/leapstack-labs/jslint/internal/plugin"
	"github.com/leapstack-labs/jslint/internal/runner"
	"github.com/leapstack-labs/jslint/pkg/lint"
	"github.com/spf13/cobra"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Watch      bool // Re-run on file changes
	Cache      bool // Reuse results of unchanged files
	ClearCache bool // Drop cached results before the run
}

// NewLintCommand creates the lint command.
func NewLintCommand(version string) *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint JavaScript and TypeScript files",
		Long: `Lint JavaScript and TypeScript files.

Directories are searched for files matching files.include that are not
excluded by files.exclude. With no paths the current directory is linted.

Exit status is 0 when no problems were found, 1 when diagnostics were
reported and 2 when a file could not be linted.`,
		Example: `  # Lint the current directory
  jslint lint

  # Lint specific files and directories
  jslint lint src/ main.ts

  # Run only some rules
  jslint lint --tag "" --rule no-debugger,eqeqeq

  # Machine-readable output
  jslint lint --format json

  # Re-lint on every change
  jslint lint --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts, version)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch the paths and re-lint on change")
	cmd.Flags().BoolVar(&opts.Cache, "cache", false, "Cache results of unchanged files")
	cmd.Flags().BoolVar(&opts.ClearCache, "clear-cache", false, "Clear the cache before linting")

	return cmd
}

func runLint(cmd *cobra.Command, paths []string, opts *LintOptions, version string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg, logger, r := cmdCtx.Cfg, cmdCtx.Logger, cmdCtx.Renderer

	if len(paths) == 0 {
		paths = []string{"."}
	}

	registry, configDiags, err := cmdCtx.Registry()
	if err != nil {
		return err
	}
	lintOpts, err := cfg.LintOptions(registry)
	if err != nil {
		return err
	}
	lintOpts.Logger = logger
	linter := lint.New(lintOpts)
	logger.Debug("rules selected", slog.Int("count", linter.Rules().Len()))

	var cache *runner.Cache
	if opts.Cache || opts.ClearCache {
		dir := cfg.Cache
		if dir == "" {
			dir = filepath.Join(cfg.ProjectRoot, config.DefaultCache)
		}
		cache, err = runner.OpenCache(dir, fingerprint(version, cfg, linter, registry))
		if err != nil {
			return err
		}
		if opts.ClearCache {
			if err := cache.Clear(); err != nil {
				return err
			}
			if !opts.Cache {
				cache = nil
			}
		}
	}

	run := runner.New(runner.Options{
		Linter: linter,
		Jobs:   cfg.Jobs,
		Files:  cfg.Files,
		Cache:  cache,
		Logger: logger,
	})

	if opts.Watch {
		return run.Watch(cmd.Context(), paths, func(report *runner.Report, err error) {
			if err != nil {
				r.Error(err.Error())
				return
			}
			report.Config = configDiags
			if err := r.RenderReport(report); err != nil {
				logger.Error("failed to render report", slog.String("error", err.Error()))
			}
		})
	}

	report, err := run.Run(cmd.Context(), paths)
	if err != nil {
		return err
	}
	report.Config = configDiags
	if err := r.RenderReport(report); err != nil {
		return err
	}
	if code := report.ExitCode(); code != runner.ExitClean {
		return &ExitError{Code: code}
	}
	return nil
}

// fingerprint identifies everything besides the file itself that decides
// its lint result.
func fingerprint(version string, cfg *config.Config, linter *lint.Linter, registry *lint.Registry) string {
	parts := []string{
		version,
		strings.Join(linter.Rules().Codes(), ","),
		strings.Join(cfg.Environments, ","),
		strings.Join(cfg.Globals, ","),
		cfg.IgnoreMarker,
		cfg.IgnoreFileMarker,
		strconv.FormatBool(cfg.DisableIgnoreDirectives),
		fmt.Sprint(cfg.PluginSettings),
	}

	var pluginFiles []string
	seen := make(map[string]bool)
	for _, rule := range registry.All() {
		if p, ok := rule.(*plugin.Rule); ok && !seen[p.Path()] {
			seen[p.Path()] = true
			pluginFiles = append(pluginFiles, p.Path())
		}
	}
	sort.Strings(pluginFiles)
	for _, path := range pluginFiles {
		src, err := os.ReadFile(path) //nolint:gosec // G304: plugin paths come from the config
		if err != nil {
			continue
		}
		parts = append(parts, path, string(src))
	}
	return strings.Join(parts, "\x00")
}
