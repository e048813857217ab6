// Package cli provides the command-line interface for jslint.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/jslint/internal/cli/commands"
	"github.com/leapstack-labs/jslint/internal/config"
	"github.com/leapstack-labs/jslint/pkg/lint/globals"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jslint",
		Short: "jslint - JavaScript and TypeScript linter",
		Long: `jslint checks JavaScript and TypeScript files against a set of rules
in a single pass over each syntax tree.

Rules can be selected by tag or code, extended with Starlark plugins and
silenced with lint-ignore comments.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", slog.String("path", configFile))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./jslint.yaml)")
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.StringP("format", "f", "", "Output format (pretty|compact|json)")
	flags.IntP("jobs", "j", 0, "Number of files linted in parallel (0 = all cores)")
	flags.StringSlice("tag", nil, "Select rules carrying these tags")
	flags.StringSlice("rule", nil, "Select these rules regardless of tags")
	flags.StringSlice("skip-rule", nil, "Never run these rules")
	flags.StringSlice("plugin", nil, "Starlark plugin files or directories")
	flags.StringSlice("global", nil, "Extra writable global names")
	flags.StringSlice("env", nil, "Global environments (builtin, browser, node, deno, ...)")
	flags.Bool("no-ignore", false, "Report diagnostics covered by ignore directives")
	flags.String("ignore-marker", "", "Prefix of line ignore comments")
	flags.String("ignore-file-marker", "", "Prefix of file ignore comments")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.Formats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("env", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return globals.Environments(), cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewLintCommand(Version))
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	var exitErr *commands.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return commands.ExitCode(err)
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for jslint.

To load completions:

Bash:
  $ source <(jslint completion bash)

Zsh:
  $ jslint completion zsh > "${fpath[1]}/_jslint"

Fish:
  $ jslint completion fish | source

PowerShell:
  PS> jslint completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
