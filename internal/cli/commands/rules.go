package commands

import (
	"fmt"

	"github.com/leapstack-labs/jslint/internal/cli/output"
	"github.com/spf13/cobra"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	All  bool // List every rule instead of the configured selection
	JSON bool // Shorthand for --format json
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [code]",
		Short: "List available lint rules",
		Long: `List the lint rules selected by the configuration, or show the
documentation of one rule.

Plugin rules from the configured plugin files are listed with the built-in
rules.`,
		Example: `  # List the configured rules
  jslint rules

  # List every rule, including those not selected
  jslint rules --all

  # Show details for a specific rule
  jslint rules no-debugger

  # Output as JSON
  jslint rules --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "List every registered rule")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")

	return cmd
}

func runRules(cmd *cobra.Command, args []string, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	if opts.JSON {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeJSON)
	}

	registry, _, err := cmdCtx.Registry()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		rule, ok := registry.Get(args[0])
		if !ok {
			return fmt.Errorf("rule %q not found", args[0])
		}
		return r.RenderRule(rule)
	}

	rules := registry.All()
	if !opts.All {
		rules = cmdCtx.Cfg.LintConfig().RuleSet(registry).Rules()
	}
	return r.RenderRules(rules)
}
