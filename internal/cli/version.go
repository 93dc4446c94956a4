package cli

import (
	"fmt"
	"io"

	"shasum/internal/buildinfo"
)

func printVersion(out io.Writer) error {
	if _, err := fmt.Fprintln(out, buildinfo.Get().String()); err != nil {
		return fmt.Errorf("write version output: %w", err)
	}
	return nil
}
