// Package hash provides the supported digest algorithms and a streaming
// hex-digest helper.
package hash

import (
	"encoding/hex"
	"hash"
)

// Hasher wraps incremental hashing for a single file.
type Hasher struct {
	alg Algorithm
	h   hash.Hash
}

// New creates a hasher for alg. It panics if alg is not valid.
func New(alg Algorithm) *Hasher {
	return &Hasher{alg: alg, h: alg.New()}
}

// Algorithm returns the algorithm the hasher was created with.
func (h *Hasher) Algorithm() Algorithm { return h.alg }

// Write adds data to the hash state.
func (h *Hasher) Write(p []byte) (int, error) { return h.h.Write(p) }

// Sum returns the raw digest.
func (h *Hasher) Sum() []byte { return h.h.Sum(nil) }

// SumHex returns lowercase hex digest.
func (h *Hasher) SumHex() string { return hex.EncodeToString(h.Sum()) }
