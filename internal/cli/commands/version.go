package commands

import (
	"fmt"

	"github.com/leapstack-labs/jslint/pkg/lint"
	"github.com/leapstack-labs/jslint/pkg/parser"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display jslint version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "jslint v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d built-in rules for %d file extensions\n",
				lint.DefaultRegistry.Count(), len(parser.Extensions))
		},
	}
}
