// Package config loads the jslint configuration.
//
// Values are layered, lowest to highest: built-in defaults, the project
// config file (jslint.yaml, jslint.yml or jslint.toml), JSLINT_*
// environment variables and explicitly set command-line flags.
package config

import (
	"github.com/leapstack-labs/jslint/pkg/lint"
	"github.com/leapstack-labs/jslint/pkg/lint/globals"
)

// Config holds all configuration options.
type Config struct {
	// Rule selection, see lint.Config
	Tags    []string `koanf:"tags"`
	Include []string `koanf:"include"`
	Exclude []string `koanf:"exclude"`

	// Environments name the global tables to load (see globals.Environments);
	// Globals adds writable names on top.
	Environments []string `koanf:"environments"`
	Globals      []string `koanf:"globals"`

	IgnoreMarker            string `koanf:"ignore_marker"`
	IgnoreFileMarker        string `koanf:"ignore_file_marker"`
	DisableIgnoreDirectives bool   `koanf:"disable_ignore_directives"`

	// Plugins are .star files or directories of them.
	Plugins        []string       `koanf:"plugins"`
	PluginSettings map[string]any `koanf:"plugin_settings"`

	Jobs    int         `koanf:"jobs"`
	Format  string      `koanf:"format"`
	Verbose bool        `koanf:"verbose"`
	Cache   string      `koanf:"cache"`
	Files   FilesConfig `koanf:"files"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// FilesConfig selects the files to lint when a directory is given.
// Include patterns match file base names, Exclude patterns match any path
// element or the slash-separated path relative to the walked directory.
type FilesConfig struct {
	Include []string `koanf:"include"`
	Exclude []string `koanf:"exclude"`
}

// LintConfig returns the rule selection as a lint.Config.
func (c *Config) LintConfig() *lint.Config {
	return &lint.Config{
		Tags:    c.Tags,
		Include: c.Include,
		Exclude: c.Exclude,
	}
}

// GlobalsTable builds the global-name table of the configured environments.
func (c *Config) GlobalsTable() (*globals.Table, error) {
	envs := c.Environments
	if len(envs) == 0 {
		envs = globals.DefaultEnvironments
	}
	return globals.New(envs, c.Globals...)
}

// LintOptions returns the linter options the configuration describes.
// Registry and Logger are left to the caller.
func (c *Config) LintOptions(registry *lint.Registry) (lint.Options, error) {
	table, err := c.GlobalsTable()
	if err != nil {
		return lint.Options{}, err
	}
	return lint.Options{
		Registry:                registry,
		Rules:                   c.LintConfig().RuleSet(registry),
		Globals:                 table,
		IgnoreMarker:            c.IgnoreMarker,
		IgnoreFileMarker:        c.IgnoreFileMarker,
		DisableIgnoreDirectives: c.DisableIgnoreDirectives,
	}, nil
}
