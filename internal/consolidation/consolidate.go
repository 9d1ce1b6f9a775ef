// Package consolidation deduplicates records that describe the same entity
// and merges extraction results from several knowledgebases.
package consolidation

import (
	"maps"
	"slices"
	"strconv"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

// consolidate groups records by key and folds each group with merge. merge
// must be commutative and associative. Output is sorted by key, so it does not
// depend on input order.
func consolidate[T any](records []T, key func(T) string, merge func(a, b T) T) []T {
	if len(records) == 0 {
		return nil
	}
	groups := make(map[string]T, len(records))
	for _, r := range records {
		k := key(r)
		if g, ok := groups[k]; ok {
			groups[k] = merge(g, r)
		} else {
			groups[k] = r
		}
	}
	out := make([]T, 0, len(groups))
	for _, k := range slices.Sorted(maps.Keys(groups)) {
		out = append(out, groups[k])
	}
	return out
}

// preferred picks between two values of an attribute that is not part of
// the identity: a non-empty value wins, then the smaller one.
func preferred(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return min(a, b)
}

// Hotspots merges hotspots with the same chromosome, position, ref, alt and
// gene.
func Hotspots(records []datamodel.KnownHotspot) []datamodel.KnownHotspot {
	return consolidate(records,
		func(h datamodel.KnownHotspot) string {
			return datamodel.JoinKey(h.Chromosome, strconv.FormatInt(h.Position, 10), h.Ref, h.Alt, h.Gene)
		},
		func(a, b datamodel.KnownHotspot) datamodel.KnownHotspot {
			a.Transcript = preferred(a.Transcript, b.Transcript)
			a.ProteinAnnotation = preferred(a.ProteinAnnotation, b.ProteinAnnotation)
			a.GeneRole = datamodel.MergeGeneRole(a.GeneRole, b.GeneRole)
			a.ProteinEffect = datamodel.MergeProteinEffect(a.ProteinEffect, b.ProteinEffect)
			a.Sources = a.Sources.Union(b.Sources)
			return a
		})
}

// Codons merges codons with the same range annotation.
func Codons(records []datamodel.KnownCodon) []datamodel.KnownCodon {
	return consolidate(records,
		func(c datamodel.KnownCodon) string { return datamodel.RangeKey(c.RangeAnnotation) },
		func(a, b datamodel.KnownCodon) datamodel.KnownCodon {
			a.GeneRole = datamodel.MergeGeneRole(a.GeneRole, b.GeneRole)
			a.ProteinEffect = datamodel.MergeProteinEffect(a.ProteinEffect, b.ProteinEffect)
			a.Sources = a.Sources.Union(b.Sources)
			return a
		})
}

// Exons merges exons with the same range annotation.
func Exons(records []datamodel.KnownExon) []datamodel.KnownExon {
	return consolidate(records,
		func(e datamodel.KnownExon) string { return datamodel.RangeKey(e.RangeAnnotation) },
		func(a, b datamodel.KnownExon) datamodel.KnownExon {
			a.GeneRole = datamodel.MergeGeneRole(a.GeneRole, b.GeneRole)
			a.ProteinEffect = datamodel.MergeProteinEffect(a.ProteinEffect, b.ProteinEffect)
			a.Sources = a.Sources.Union(b.Sources)
			return a
		})
}

// FusionPairs merges fusions with the same genes and exon bounds.
func FusionPairs(records []datamodel.KnownFusionPair) []datamodel.KnownFusionPair {
	return consolidate(records,
		func(f datamodel.KnownFusionPair) string {
			return datamodel.JoinKey(f.GeneUp, strconv.Itoa(f.MinExonUp), strconv.Itoa(f.MaxExonUp),
				f.GeneDown, strconv.Itoa(f.MinExonDown), strconv.Itoa(f.MaxExonDown))
		},
		func(a, b datamodel.KnownFusionPair) datamodel.KnownFusionPair {
			a.ProteinEffect = datamodel.MergeProteinEffect(a.ProteinEffect, b.ProteinEffect)
			a.Sources = a.Sources.Union(b.Sources)
			return a
		})
}

// CopyNumbers merges copy-number events of the same gene and type.
func CopyNumbers(records []datamodel.KnownCopyNumber) []datamodel.KnownCopyNumber {
	return consolidate(records,
		func(c datamodel.KnownCopyNumber) string { return datamodel.JoinKey(c.Gene, string(c.Type)) },
		func(a, b datamodel.KnownCopyNumber) datamodel.KnownCopyNumber {
			a.GeneRole = datamodel.MergeGeneRole(a.GeneRole, b.GeneRole)
			a.ProteinEffect = datamodel.MergeProteinEffect(a.ProteinEffect, b.ProteinEffect)
			a.Sources = a.Sources.Union(b.Sources)
			return a
		})
}

// Genes merges gene-level records of the same gene.
func Genes(records []datamodel.KnownGene) []datamodel.KnownGene {
	return consolidate(records,
		func(g datamodel.KnownGene) string { return g.Gene },
		func(a, b datamodel.KnownGene) datamodel.KnownGene {
			a.GeneRole = datamodel.MergeGeneRole(a.GeneRole, b.GeneRole)
			a.Sources = a.Sources.Union(b.Sources)
			return a
		})
}
