package datamodel

// ExtractionResult is the output of one extraction run or of merging several.
type ExtractionResult struct {
	RefGenome RefGenome

	KnownHotspots    []KnownHotspot
	KnownCodons      []KnownCodon
	KnownExons       []KnownExon
	KnownFusionPairs []KnownFusionPair
	KnownCopyNumbers []KnownCopyNumber
	KnownGenes       []KnownGene

	ActionableHotspots        []ActionableHotspot
	ActionableRanges          []ActionableRange
	ActionableGenes           []ActionableGene
	ActionableFusions         []ActionableFusion
	ActionableCharacteristics []ActionableCharacteristic
	ActionableHLA             []ActionableHLA
}

// KnownCount returns the number of known-event records.
func (r *ExtractionResult) KnownCount() int {
	return len(r.KnownHotspots) + len(r.KnownCodons) + len(r.KnownExons) +
		len(r.KnownFusionPairs) + len(r.KnownCopyNumbers) + len(r.KnownGenes)
}

// ActionableCount returns the number of actionable-event records.
func (r *ExtractionResult) ActionableCount() int {
	return len(r.ActionableHotspots) + len(r.ActionableRanges) + len(r.ActionableGenes) +
		len(r.ActionableFusions) + len(r.ActionableCharacteristics) + len(r.ActionableHLA)
}

// Append concatenates every collection of o onto r without consolidating.
func (r *ExtractionResult) Append(o ExtractionResult) {
	r.KnownHotspots = append(r.KnownHotspots, o.KnownHotspots...)
	r.KnownCodons = append(r.KnownCodons, o.KnownCodons...)
	r.KnownExons = append(r.KnownExons, o.KnownExons...)
	r.KnownFusionPairs = append(r.KnownFusionPairs, o.KnownFusionPairs...)
	r.KnownCopyNumbers = append(r.KnownCopyNumbers, o.KnownCopyNumbers...)
	r.KnownGenes = append(r.KnownGenes, o.KnownGenes...)
	r.ActionableHotspots = append(r.ActionableHotspots, o.ActionableHotspots...)
	r.ActionableRanges = append(r.ActionableRanges, o.ActionableRanges...)
	r.ActionableGenes = append(r.ActionableGenes, o.ActionableGenes...)
	r.ActionableFusions = append(r.ActionableFusions, o.ActionableFusions...)
	r.ActionableCharacteristics = append(r.ActionableCharacteristics, o.ActionableCharacteristics...)
	r.ActionableHLA = append(r.ActionableHLA, o.ActionableHLA...)
}
