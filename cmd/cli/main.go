// Package main is the entry point for the netdiag CLI.
package main

import (
	"os"

	"netdiag/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
