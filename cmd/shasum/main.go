// Package main is the shasum CLI entrypoint.
package main

import (
	"os"

	"shasum/internal/app"
)

func main() {
	application := app.New()
	os.Exit(application.Run(os.Args[1:]))
}
