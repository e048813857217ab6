package config

import (
	"os"

	"github.com/leapstack-labs/jslint/pkg/lint"
	"github.com/leapstack-labs/jslint/pkg/parser"
)

// Config file names, in lookup order.
const (
	ConfigFileName     = "jslint.yaml"
	ConfigFileNameAlt  = "jslint.yml"
	ConfigFileNameTOML = "jslint.toml"
)

// EnvPrefix is the prefix of configuration environment variables.
const EnvPrefix = "JSLINT_"

// Output formats.
const (
	FormatPretty  = "pretty"
	FormatCompact = "compact"
	FormatJSON    = "json"
)

// Formats lists the accepted values of the format key.
var Formats = []string{FormatPretty, FormatCompact, FormatJSON}

// Default configuration values.
const (
	DefaultFormat = FormatPretty
	DefaultCache  = ".jslint-cache"
)

// defaults returns the lowest configuration layer.
func defaults() map[string]any {
	return map[string]any{
		"tags":          []string{lint.TagRecommended},
		"format":        DefaultFormat,
		"verbose":       false,
		"jobs":          0,
		"files.include": sourcePatterns(),
		"files.exclude": defaultExcludes(),
	}
}

// Default returns the configuration of the built-in defaults alone,
// rooted at the working directory.
func Default() *Config {
	root, _ := os.Getwd()
	return &Config{
		Tags:        []string{lint.TagRecommended},
		Format:      DefaultFormat,
		Files:       FilesConfig{Include: sourcePatterns(), Exclude: defaultExcludes()},
		ProjectRoot: root,
	}
}

func defaultExcludes() []string {
	return []string{"node_modules", ".git", DefaultCache}
}

func sourcePatterns() []string {
	patterns := make([]string, len(parser.Extensions))
	for i, ext := range parser.Extensions {
		patterns[i] = "*" + ext
	}
	return patterns
}
