// Package main provides the ontoforge binary entry point.
// Ontoforge merges, splits, and migrates RDF ontologies and their
// instance data, driven by YAML configuration files.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/ontoforge/ontoforge/commands"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
