// Package main provides the jslint command.
package main

import (
	"os"

	"github.com/leapstack-labs/jslint/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
