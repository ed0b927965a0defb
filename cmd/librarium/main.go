// Package main provides the librarium CLI, the presentation layer over the
// library core. All prompting and output formatting lives here; the core
// only ever sees parsed arguments.
package main

import (
	"errors"
	"fmt"
	"os"

	"librarium/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps error categories to process exit codes: domain errors the
// caller can fix are user errors, persistence failures are system errors.
func exitCode(err error) int {
	switch {
	case errors.Is(err, types.ErrValidation),
		errors.Is(err, types.ErrConflict),
		errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrAmbiguousSelection):
		return exitUserError
	default:
		return exitSysError
	}
}
