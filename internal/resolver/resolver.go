// Package resolver turns protein, codon and exon annotations into genomic
// coordinates.
package resolver

import (
	"errors"
	"strings"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

// ErrUnresolvable is returned when an annotation cannot be mapped to the
// genome. Callers skip the entry.
var ErrUnresolvable = errors.New("unresolvable annotation")

// ProteinResolver maps a protein annotation to the genomic variants that
// produce it. Several variants may be returned due to codon degeneracy.
type ProteinResolver interface {
	Resolve(gene, transcript, protein string) ([]datamodel.Variant, error)
}

// RangeResolver maps a codon or exon rank to a genomic interval.
type RangeResolver interface {
	CodonRange(gene, transcript string, codon int) (datamodel.RangeAnnotation, error)
	ExonRange(gene, transcript string, exon int) (datamodel.RangeAnnotation, error)
}

// Dummy resolves nothing. It stands in for a real resolver when running
// without gene models.
type Dummy struct{}

// Resolve returns no variants.
func (Dummy) Resolve(gene, transcript, protein string) ([]datamodel.Variant, error) {
	return nil, nil
}

// CodonRange always fails with ErrUnresolvable.
func (Dummy) CodonRange(gene, transcript string, codon int) (datamodel.RangeAnnotation, error) {
	return datamodel.RangeAnnotation{}, ErrUnresolvable
}

// ExonRange always fails with ErrUnresolvable.
func (Dummy) ExonRange(gene, transcript string, exon int) (datamodel.RangeAnnotation, error) {
	return datamodel.RangeAnnotation{}, ErrUnresolvable
}

// Fixed resolves protein annotations from a lookup table keyed by
// FixedKey(gene, protein).
type Fixed map[string][]datamodel.Variant

// FixedKey builds the lookup key of a Fixed table.
func FixedKey(gene, protein string) string {
	return strings.ToUpper(strings.TrimSpace(gene)) + " " + strings.TrimSpace(protein)
}

// Resolve returns the variants stored for gene and protein.
func (f Fixed) Resolve(gene, transcript, protein string) ([]datamodel.Variant, error) {
	return f[FixedKey(gene, protein)], nil
}
