package datamodel

import "strconv"

// Variant is a concrete genomic change on a reference genome.
type Variant struct {
	Chromosome string // Chromosome name without "chr" prefix (e.g., "12")
	Position   int64  // 1-based genomic position
	Ref        string // Reference allele
	Alt        string // Alternate allele
}

func (v Variant) String() string {
	return v.Chromosome + ":" + strconv.FormatInt(v.Position, 10) + ":" + v.Ref + ">" + v.Alt
}

// NormalizeChromosome strips a leading "chr" prefix.
func NormalizeChromosome(chrom string) string {
	if len(chrom) > 3 && chrom[:3] == "chr" {
		return chrom[3:]
	}
	return chrom
}
