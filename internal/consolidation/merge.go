package consolidation

import (
	"fmt"
	"sync"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

// Consolidate deduplicates every known-event collection of r and merges the
// evidence URLs of otherwise identical actionable events. Collections are
// processed concurrently.
func Consolidate(r datamodel.ExtractionResult) datamodel.ExtractionResult {
	out := datamodel.ExtractionResult{RefGenome: r.RefGenome}

	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}
	run(func() { out.KnownHotspots = Hotspots(r.KnownHotspots) })
	run(func() { out.KnownCodons = Codons(r.KnownCodons) })
	run(func() { out.KnownExons = Exons(r.KnownExons) })
	run(func() { out.KnownFusionPairs = FusionPairs(r.KnownFusionPairs) })
	run(func() { out.KnownCopyNumbers = CopyNumbers(r.KnownCopyNumbers) })
	run(func() { out.KnownGenes = Genes(r.KnownGenes) })
	run(func() { out.ActionableHotspots = ConsolidateURLs(r.ActionableHotspots, HotspotURLs) })
	run(func() { out.ActionableRanges = ConsolidateURLs(r.ActionableRanges, RangeURLs) })
	run(func() { out.ActionableGenes = ConsolidateURLs(r.ActionableGenes, GeneURLs) })
	run(func() { out.ActionableFusions = ConsolidateURLs(r.ActionableFusions, FusionURLs) })
	run(func() {
		out.ActionableCharacteristics = ConsolidateURLs(r.ActionableCharacteristics, CharacteristicURLs)
	})
	run(func() { out.ActionableHLA = ConsolidateURLs(r.ActionableHLA, HLAURLs) })
	wg.Wait()
	return out
}

// MergeResults concatenates results and consolidates the combined result.
// All results must use the same reference genome.
func MergeResults(results ...datamodel.ExtractionResult) (datamodel.ExtractionResult, error) {
	if len(results) == 0 {
		return datamodel.ExtractionResult{}, nil
	}
	combined := datamodel.ExtractionResult{RefGenome: results[0].RefGenome}
	for i, r := range results {
		if r.RefGenome != combined.RefGenome {
			return datamodel.ExtractionResult{}, fmt.Errorf("merge result %d: reference genome %s does not match %s",
				i, r.RefGenome, combined.RefGenome)
		}
		combined.Append(r)
	}
	return Consolidate(combined), nil
}
