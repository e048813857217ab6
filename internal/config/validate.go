package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/jslint/pkg/lint/globals"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("invalid format %q (want one of %s)", c.Format, strings.Join(Formats, ", "))
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	known := globals.Environments()
	for _, env := range c.Environments {
		if !slices.Contains(known, env) {
			return fmt.Errorf("unknown environment %q\nHint: known environments are %s", env, strings.Join(known, ", "))
		}
	}
	return nil
}
