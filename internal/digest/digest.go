// Package digest streams a file through a selected hash algorithm and
// returns its hex digest.
package digest

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	apperrors "shasum/internal/errors"
	"shasum/internal/hash"
	"shasum/internal/pathcheck"
)

// ChunkSize is the capacity of the read buffer reused across reads.
const ChunkSize = 8192

// CompletedMessage is passed to the observer once the digest is final.
const CompletedMessage = "Completed!"

// Observer is notified after every chunk. It never sees or influences the
// bytes being hashed.
type Observer interface {
	Inc(n uint64)
	FinishWithMessage(msg string)
}

// Options configures a single hashing run.
type Options struct {
	Algorithm hash.Algorithm
	// Binary requests binary-mode opening. Go does not translate line
	// endings on any platform, so both modes read the same bytes.
	Binary bool
	// Quiet disables progress even when Progress is set.
	Quiet bool
	// Progress creates an observer for a file of total bytes.
	Progress func(total uint64) Observer
	Logger   *slog.Logger
}

// Result is a finished digest.
type Result struct {
	Path      string
	Algorithm hash.Algorithm
	Digest    string
	Size      uint64
}

// File hashes the checked file. Open, stat and read failures match
// apperrors.ErrIO and carry the *fs.PathError naming the file; the file is
// closed before File returns.
func File(ref pathcheck.File, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	hasher := hash.New(opts.Algorithm)

	file, err := open(ref.Path, opts.Binary)
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", err, apperrors.ErrIO)
	}
	total := uint64(info.Size())
	logger.Debug("opened file", "path", ref.Path, "size", total, "algorithm", opts.Algorithm.String(), "binary", opts.Binary)

	var observer Observer
	if !opts.Quiet && opts.Progress != nil {
		observer = opts.Progress(total)
	}

	start := time.Now()
	read, err := stream(file, hasher, observer)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", err, apperrors.ErrIO)
	}
	sum := hasher.SumHex()
	if observer != nil {
		observer.FinishWithMessage(CompletedMessage)
	}
	logger.Debug("digest complete", "path", ref.Path, "algorithm", opts.Algorithm.String(), "bytes", read, "elapsed", time.Since(start))

	return Result{Path: ref.Path, Algorithm: hasher.Algorithm(), Digest: sum, Size: read}, nil
}

// Reader hashes r to EOF with the same chunked loop File uses.
func Reader(r io.Reader, alg hash.Algorithm) (string, error) {
	hasher := hash.New(alg)
	if _, err := stream(r, hasher, nil); err != nil {
		return "", fmt.Errorf("read: %w: %w", err, apperrors.ErrIO)
	}
	return hasher.SumHex(), nil
}

func open(path string, binary bool) (*os.File, error) {
	// os.Open never translates line endings, so binary and text mode read
	// the same bytes.
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", err, apperrors.ErrIO)
	}
	return file, nil
}

func stream(r io.Reader, hasher *hash.Hasher, observer Observer) (uint64, error) {
	var buf [ChunkSize]byte
	var read uint64
	for {
		n, err := r.Read(buf[:])
		if n > 0 {
			_, _ = hasher.Write(buf[:n])
			read += uint64(n)
			if observer != nil {
				observer.Inc(uint64(n))
			}
		}
		if err == io.EOF || (n == 0 && err == nil) {
			return read, nil
		}
		if err != nil {
			return read, err
		}
	}
}
