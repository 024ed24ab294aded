// Package main provides the CLI entrypoint for lifecycle-generator.
//
// lifecycle-generator reads a symbol model of class declarations and emits,
// per class with lifecycle contributors, a partial-class fragment that:
//   - Merges constructor methods into a guarded Initialize entry point
//   - Implements or extends the dispose pattern around dispose methods
//   - Synthesizes the finalizer running finalizer methods
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}

		os.Exit(1)
	}
}
