// Package main is the entry point for the latexfmt CLI.
package main

import (
	"os"

	"github.com/thoreinstein/latexfmt/cmd/latexfmt/commands"
	"github.com/thoreinstein/latexfmt/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
