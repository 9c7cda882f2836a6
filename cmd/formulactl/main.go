// Package main is the entry point for the formulactl CLI.
package main

import (
	"github.com/formulabase/formulactl/internal/cli"
)

// version is set by the build via ldflags.
var version = "dev"

func main() {
	cli.Version = version
	cli.Execute(cli.NewRootCommand())
}
