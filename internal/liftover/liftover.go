// Package liftover converts positions between reference genome builds.
package liftover

import "github.com/inodb/vibe-serve/internal/datamodel"

// Result is a lifted position. Reverse is set when the target region lies on
// the opposite strand, so bases must be complemented.
type Result struct {
	Chromosome string
	Position   int64
	Reverse    bool
}

// LiftOver maps a 1-based position to another build. ok is false when the
// position has no equivalent.
type LiftOver interface {
	LiftOver(chromosome string, position int64) (r Result, ok bool)
}

// Noop returns every position unchanged.
type Noop struct{}

// LiftOver returns the input position.
func (Noop) LiftOver(chromosome string, position int64) (Result, bool) {
	return Result{Chromosome: datamodel.NormalizeChromosome(chromosome), Position: position}, true
}
