package rules

// Import all rule subpackages to register them with the default registry.
// This file triggers all init() functions in the rule packages.
import (
	// Import rule categories - each registers its rules via init()
	_ "github.com/leapstack-labs/jslint/pkg/lint/rules/correctness"
	_ "github.com/leapstack-labs/jslint/pkg/lint/rules/directives"
	_ "github.com/leapstack-labs/jslint/pkg/lint/rules/style"
	_ "github.com/leapstack-labs/jslint/pkg/lint/rules/typescript"
)
