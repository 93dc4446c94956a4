package hash

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"

	apperrors "shasum/internal/errors"
)

// Algorithm selects one of the supported SHA digests.
type Algorithm uint8

// Supported algorithms. The zero value is invalid.
const (
	SHA1 Algorithm = iota + 1
	SHA224
	SHA256
	SHA384
	SHA512
)

// Default is used when no algorithm is requested.
const Default = SHA256

var algorithms = [...]struct {
	name     string
	selector string
	size     int
	new      func() hash.Hash
}{
	SHA1:   {name: "SHA-1", selector: "1", size: sha1.Size, new: sha1.New},
	SHA224: {name: "SHA-224", selector: "224", size: sha256.Size224, new: sha256.New224},
	SHA256: {name: "SHA-256", selector: "256", size: sha256.Size, new: sha256.New},
	SHA384: {name: "SHA-384", selector: "384", size: sha512.Size384, new: sha512.New384},
	SHA512: {name: "SHA-512", selector: "512", size: sha512.Size, new: sha512.New},
}

// Algorithms returns every supported algorithm in ascending digest size.
func Algorithms() []Algorithm {
	return []Algorithm{SHA1, SHA224, SHA256, SHA384, SHA512}
}

// Selectors returns the accepted command-line selectors.
func Selectors() []string {
	all := Algorithms()
	out := make([]string, 0, len(all))
	for _, a := range all {
		out = append(out, a.Selector())
	}
	return out
}

// Parse maps a command-line selector ("1", "224", "256", "384", "512") to an Algorithm.
func Parse(s string) (Algorithm, error) {
	for _, a := range Algorithms() {
		if algorithms[a].selector == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("invalid algorithm %q (choices: %s): %w", s, strings.Join(Selectors(), ", "), apperrors.ErrUsage)
}

// Valid reports whether a names a supported algorithm.
func (a Algorithm) Valid() bool {
	return a >= SHA1 && a <= SHA512
}

func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
	return algorithms[a].name
}

// Selector returns the command-line selector for a.
func (a Algorithm) Selector() string {
	if !a.Valid() {
		return ""
	}
	return algorithms[a].selector
}

// Size returns the digest length in bytes.
func (a Algorithm) Size() int {
	if !a.Valid() {
		return 0
	}
	return algorithms[a].size
}

// HexLen returns the length of the hex-encoded digest.
func (a Algorithm) HexLen() int { return 2 * a.Size() }

// New returns a fresh hash state for a. An invalid Algorithm is a
// programming error and panics.
func (a Algorithm) New() hash.Hash {
	if !a.Valid() {
		panic(fmt.Sprintf("hash: unsupported algorithm %d", uint8(a)))
	}
	return algorithms[a].new()
}
