// Package main provides the partvec CLI tool.
//
// Usage:
//
//	partvec -f dataset.yaml <command> [args]
//
// Commands:
//
//	summary - Per-partition record counts
//	search  - Nearest neighbors of a query vector
//	get     - Look up a record by id
//
// The dataset file describes the collection and its records; it is loaded
// into a fresh in-memory collection on every invocation.
package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/partvec/cmd/partvec/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
