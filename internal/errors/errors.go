// Package errors defines application errors and exit code mapping.
package errors

import sterrors "errors"

var (
	// ErrUsage indicates a command usage failure.
	ErrUsage = sterrors.New("usage error")
	// ErrNotFound indicates nothing exists at the requested path.
	ErrNotFound = sterrors.New("not found")
	// ErrInvalidInput indicates the path exists but is not a regular file.
	ErrInvalidInput = sterrors.New("invalid input")
	// ErrIO indicates an open, metadata or read failure while hashing.
	ErrIO = sterrors.New("i/o failure")
)

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	if sterrors.Is(err, ErrUsage) {
		return 2
	}

	return 1
}
