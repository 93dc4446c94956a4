// Package pathcheck confirms a path names an existing regular file before
// any content is read.
package pathcheck

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"

	apperrors "shasum/internal/errors"
)

// File is a path that was a regular file when checked.
type File struct {
	// Path is the path exactly as supplied by the caller.
	Path string
	Size int64
	Mode fs.FileMode
}

// Check stats path, following symlinks, and reports whether it may be hashed.
// A path that cannot name anything matches apperrors.ErrNotFound, anything
// other than a regular file matches apperrors.ErrInvalidInput, and any other
// stat failure (such as permission denied) matches apperrors.ErrIO.
func Check(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if missing(err) {
			return File{}, fmt.Errorf("the file does not exist: %w: %w", err, apperrors.ErrNotFound)
		}
		return File{}, fmt.Errorf("%w: %w", err, apperrors.ErrIO)
	}
	if !info.Mode().IsRegular() {
		return File{}, fmt.Errorf("%s: the path is not a file: %w", path, apperrors.ErrInvalidInput)
	}
	return File{Path: path, Size: info.Size(), Mode: info.Mode()}, nil
}

// missing reports stat failures that mean nothing exists at the path: no
// entry, a non-directory used as a directory, a symlink loop, or a name too
// long to exist.
func missing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, syscall.ELOOP) ||
		errors.Is(err, syscall.ENAMETOOLONG)
}
