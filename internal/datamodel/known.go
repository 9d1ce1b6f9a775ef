package datamodel

// MutationType restricts which variants inside a codon or exon range count as
// a hit.
type MutationType string

// Mutation type filters.
const (
	MutationTypeAny                  MutationType = "ANY"
	MutationTypeMissense             MutationType = "MISSENSE"
	MutationTypeNonsenseOrFrameshift MutationType = "NONSENSE_OR_FRAMESHIFT"
	MutationTypeInframe              MutationType = "INFRAME"
	MutationTypeInframeDeletion      MutationType = "INFRAME_DELETION"
	MutationTypeInframeInsertion     MutationType = "INFRAME_INSERTION"
	MutationTypeSplice               MutationType = "SPLICE"
	MutationTypeUnknown              MutationType = "UNKNOWN"
)

// RangeAnnotation anchors a genomic interval to a codon or exon rank of a
// transcript.
type RangeAnnotation struct {
	Gene         string
	Transcript   string
	Chromosome   string
	Start        int64
	End          int64
	MutationType MutationType
	Rank         int
}

// KnownHotspot is a specific variant reported as relevant by at least one
// knowledgebase. Identity: Chromosome, Position, Ref, Alt and Gene.
type KnownHotspot struct {
	Gene              string
	Transcript        string
	ProteinAnnotation string
	Chromosome        string
	Position          int64
	Ref               string
	Alt               string
	GeneRole          GeneRole
	ProteinEffect     ProteinEffect
	Sources           Sources
}

// KnownCodon is a mutation-type filtered codon range.
type KnownCodon struct {
	RangeAnnotation
	GeneRole      GeneRole
	ProteinEffect ProteinEffect
	Sources       Sources
}

// KnownExon is a mutation-type filtered exon range.
type KnownExon struct {
	RangeAnnotation
	GeneRole      GeneRole
	ProteinEffect ProteinEffect
	Sources       Sources
}

// KnownFusionPair is a fusion between an upstream and a downstream gene. Zero
// exon bounds mean the bound is unspecified.
type KnownFusionPair struct {
	GeneUp        string
	MinExonUp     int
	MaxExonUp     int
	GeneDown      string
	MinExonDown   int
	MaxExonDown   int
	ProteinEffect ProteinEffect
	Sources       Sources
}

// CopyNumberType is the direction of a copy-number alteration.
type CopyNumberType string

// Copy-number alteration types.
const (
	CopyNumberAmplification CopyNumberType = "AMPLIFICATION"
	CopyNumberDeletion      CopyNumberType = "DELETION"
)

// KnownCopyNumber is a gene amplification or deletion.
type KnownCopyNumber struct {
	Gene          string
	Type          CopyNumberType
	GeneRole      GeneRole
	ProteinEffect ProteinEffect
	Sources       Sources
}

// KnownGene records that a gene is mentioned by at least one knowledgebase.
type KnownGene struct {
	Gene     string
	GeneRole GeneRole
	Sources  Sources
}
