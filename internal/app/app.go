// Package app wires shasum application execution.
package app

import (
	"fmt"
	"io"
	"os"

	"shasum/internal/cli"
	apperrors "shasum/internal/errors"
)

// App wires CLI execution.
type App struct {
	stdout io.Writer
	stderr io.Writer
}

// New creates an App bound to the process standard streams.
func New() App {
	return App{stdout: os.Stdout, stderr: os.Stderr}
}

// Run executes the application and returns a process exit code. On failure
// nothing is written to stdout.
func (a App) Run(args []string) int {
	root := cli.NewRootCommand(a.stdout, a.stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintf(a.stderr, "error: %v\n", err)
		return apperrors.ExitCode(err)
	}

	return 0
}
