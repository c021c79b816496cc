// Package idgen supplies element ids for ARIA wiring (aria-controls,
// aria-labelledby, aria-activedescendant).
//
// There is no package-level counter: every composition root creates its own
// Generator and passes it to the behaviors it builds.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator returns a fresh id on every call.
type Generator interface {
	Next() string
}

// Func adapts a plain function to Generator.
type Func func() string

// Next calls f.
func (f Func) Next() string { return f() }

// Sequence is a monotonic counter generator: "prefix-1", "prefix-2", ...
type Sequence struct {
	prefix string
	n      atomic.Uint64
}

// NewSequence creates a Sequence. An empty prefix defaults to "headless".
func NewSequence(prefix string) *Sequence {
	if prefix == "" {
		prefix = "headless"
	}
	return &Sequence{prefix: prefix}
}

// Next returns the next id in the sequence.
func (s *Sequence) Next() string {
	return fmt.Sprintf("%s-%d", s.prefix, s.n.Add(1))
}

type uuidGenerator struct {
	prefix string
}

// UUID returns a Generator producing "prefix-" plus the first eight hex
// characters of a random UUID, which is unique enough for a single document.
func UUID(prefix string) Generator {
	if prefix == "" {
		prefix = "headless"
	}
	return uuidGenerator{prefix: prefix}
}

func (g uuidGenerator) Next() string {
	return g.prefix + "-" + uuid.New().String()[:8]
}

// OrSequence returns g, or a new Sequence with the given prefix when g is nil.
func OrSequence(g Generator, prefix string) Generator {
	if g == nil {
		return NewSequence(prefix)
	}
	return g
}
