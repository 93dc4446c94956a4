// Package cli implements shasum command-line parsing and output.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"

	"shasum/internal/digest"
	apperrors "shasum/internal/errors"
	"shasum/internal/hash"
	"shasum/internal/logging"
	"shasum/internal/pathcheck"
	"shasum/internal/progress"
)

// Options is the parsed command line.
type Options struct {
	File      string
	Algorithm hash.Algorithm
	Binary    bool
	Text      bool
	Quiet     bool
	JSON      bool
	Verbose   bool
}

// BinaryMode reports whether the file should be opened in binary mode.
// Either flag enables it.
func (o Options) BinaryMode() bool { return o.Binary || o.Text }

// RootCommand handles argument parsing for the shasum CLI.
type RootCommand struct {
	out         io.Writer
	errOut      io.Writer
	args        []string
	interactive func(io.Writer) bool
}

// NewRootCommand creates the shasum root command. Progress is drawn on errOut
// only when it is a terminal.
func NewRootCommand(out io.Writer, errOut io.Writer) *RootCommand {
	return &RootCommand{out: out, errOut: errOut, interactive: logging.IsTerminal}
}

// SetArgs sets command arguments.
func (r *RootCommand) SetArgs(args []string) { r.args = args }

type flagValues struct {
	algorithm *string
	binary    *bool
	text      *bool
	quiet     *bool
	json      *bool
	verbose   *bool
	version   *bool
	help      *bool
}

func newFlagSet() (*pflag.FlagSet, flagValues) {
	fs := pflag.NewFlagSet("shasum", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	v := flagValues{
		algorithm: fs.StringP("algorithm", "a", hash.Default.Selector(), "hash algorithm: 1 (SHA-1), 224, 256 (default), 384, 512"),
		binary:    fs.BoolP("binary", "b", false, "read files in binary mode (default on DOS/Windows)"),
		text:      fs.BoolP("text", "t", false, "read files in text mode (default)"),
		quiet:     fs.BoolP("quiet", "q", false, "disable progress bar"),
		json:      fs.Bool("json", false, "print the result as a JSON object"),
		verbose:   fs.BoolP("verbose", "v", false, "log debug details to stderr"),
		version:   fs.BoolP("version", "V", false, "print version information"),
		help:      fs.BoolP("help", "h", false, "help for shasum"),
	}
	return fs, v
}

// Execute parses arguments and hashes the named file.
func (r *RootCommand) Execute() error {
	fs, v := newFlagSet()
	if err := fs.Parse(r.args); err != nil {
		return fmt.Errorf("parse flags: %w: %w", err, apperrors.ErrUsage)
	}
	if *v.help {
		return r.printHelp(fs)
	}
	if *v.version {
		return printVersion(r.out)
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("shasum requires exactly one file argument, got %d: %w", len(remaining), apperrors.ErrUsage)
	}
	alg, err := hash.Parse(*v.algorithm)
	if err != nil {
		return err
	}

	return r.run(Options{
		File:      remaining[0],
		Algorithm: alg,
		Binary:    *v.binary,
		Text:      *v.text,
		Quiet:     *v.quiet,
		JSON:      *v.json,
		Verbose:   *v.verbose,
	})
}

func (r *RootCommand) run(opts Options) error {
	logger := logging.ForWriter(r.errOut, logging.Level(opts.Verbose))

	ref, err := pathcheck.Check(opts.File)
	if err != nil {
		return err
	}

	engineOpts := digest.Options{
		Algorithm: opts.Algorithm,
		Binary:    opts.BinaryMode(),
		Quiet:     opts.Quiet,
		Logger:    logger,
	}
	if !opts.Quiet && r.interactive(r.errOut) {
		engineOpts.Progress = func(total uint64) digest.Observer {
			return progress.NewBar(r.errOut, total)
		}
	}

	result, err := digest.File(ref, engineOpts)
	if err != nil {
		return err
	}
	return r.printResult(result, opts.JSON)
}

type jsonResult struct {
	Algorithm string `json:"algorithm"`
	Digest    string `json:"digest"`
	File      string `json:"file"`
	Size      uint64 `json:"size"`
}

func (r *RootCommand) printResult(result digest.Result, asJSON bool) error {
	if asJSON {
		err := json.NewEncoder(r.out).Encode(jsonResult{
			Algorithm: result.Algorithm.String(),
			Digest:    result.Digest,
			File:      result.Path,
			Size:      result.Size,
		})
		if err != nil {
			return fmt.Errorf("write json result: %w", err)
		}
		return nil
	}
	if _, err := fmt.Fprintf(r.out, "%s  %s\n", result.Digest, result.Path); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func (r *RootCommand) printHelp(fs *pflag.FlagSet) error {
	var b strings.Builder
	b.WriteString("Hashes files with various algorithms\n\nUsage:\n  shasum [flags] <file>\n\nFlags:\n")
	b.WriteString(fs.FlagUsages())
	if _, err := fmt.Fprint(r.out, b.String()); err != nil {
		return fmt.Errorf("write help output: %w", err)
	}
	return nil
}
