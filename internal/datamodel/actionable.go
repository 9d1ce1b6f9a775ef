package datamodel

import (
	"strconv"
	"strings"
)

// EvidenceLevel grades clinical evidence, A being the strongest.
type EvidenceLevel string

// Evidence levels.
const (
	EvidenceLevelA EvidenceLevel = "A"
	EvidenceLevelB EvidenceLevel = "B"
	EvidenceLevelC EvidenceLevel = "C"
	EvidenceLevelD EvidenceLevel = "D"
)

// EvidenceDirection states whether evidence supports or opposes a treatment.
type EvidenceDirection string

// Evidence directions.
const (
	DirectionResponsive          EvidenceDirection = "RESPONSIVE"
	DirectionPredictedResponsive EvidenceDirection = "PREDICTED_RESPONSIVE"
	DirectionResistant           EvidenceDirection = "RESISTANT"
	DirectionPredictedResistant  EvidenceDirection = "PREDICTED_RESISTANT"
	DirectionNoBenefit           EvidenceDirection = "NO_BENEFIT"
)

// Treatment is a drug or drug combination.
type Treatment struct {
	Name        string
	DrugClasses []string
}

// CancerType is a tumor type identified by its Disease Ontology ID.
type CancerType struct {
	Name string
	DOID string
}

// Evidence carries the clinical attributes every actionable event shares.
type Evidence struct {
	Source               Knowledgebase
	SourceEvent          string
	SourceURLs           []string
	Treatment            Treatment
	ApplicableCancerType CancerType
	BlacklistCancerTypes []CancerType
	Level                EvidenceLevel
	Direction            EvidenceDirection
	EvidenceURLs         []string
}

// Key identifies the evidence without its evidence URLs.
func (e Evidence) Key() string {
	blacklist := make([]string, len(e.BlacklistCancerTypes))
	for i, ct := range e.BlacklistCancerTypes {
		blacklist[i] = ct.Name + "/" + ct.DOID
	}
	return JoinKey(
		string(e.Source),
		e.SourceEvent,
		strings.Join(e.SourceURLs, ","),
		e.Treatment.Name,
		strings.Join(e.Treatment.DrugClasses, ","),
		e.ApplicableCancerType.Name,
		e.ApplicableCancerType.DOID,
		strings.Join(blacklist, ","),
		string(e.Level),
		string(e.Direction),
	)
}

// ActionableHotspot is evidence attached to a specific variant.
type ActionableHotspot struct {
	Chromosome string
	Position   int64
	Ref        string
	Alt        string
	Evidence
}

// Key identifies the hotspot evidence without its evidence URLs.
func (a ActionableHotspot) Key() string {
	return JoinKey(a.Chromosome, strconv.FormatInt(a.Position, 10), a.Ref, a.Alt, a.Evidence.Key())
}

// RangeType distinguishes codon ranges from exon ranges.
type RangeType string

// Range types.
const (
	RangeTypeCodon RangeType = "CODON"
	RangeTypeExon  RangeType = "EXON"
)

// ActionableRange is evidence attached to a codon or exon range.
type ActionableRange struct {
	RangeAnnotation
	RangeType RangeType
	Evidence
}

// Key identifies the range evidence without its evidence URLs.
func (a ActionableRange) Key() string {
	return JoinKey(string(a.RangeType), RangeKey(a.RangeAnnotation), a.Evidence.Key())
}

// GeneEvent is the gene-level alteration an actionable gene event requires.
type GeneEvent string

// Gene-level events.
const (
	GeneEventAnyMutation     GeneEvent = "ANY_MUTATION"
	GeneEventActivation      GeneEvent = "ACTIVATION"
	GeneEventInactivation    GeneEvent = "INACTIVATION"
	GeneEventFusion          GeneEvent = "FUSION"
	GeneEventAmplification   GeneEvent = "AMPLIFICATION"
	GeneEventOverExpression  GeneEvent = "OVER_EXPRESSION"
	GeneEventDeletion        GeneEvent = "DELETION"
	GeneEventUnderExpression GeneEvent = "UNDER_EXPRESSION"
	GeneEventWildType        GeneEvent = "WILD_TYPE"
)

// ActionableGene is evidence attached to a gene-level event.
type ActionableGene struct {
	Gene  string
	Event GeneEvent
	Evidence
}

// Key identifies the gene evidence without its evidence URLs.
func (a ActionableGene) Key() string {
	return JoinKey(a.Gene, string(a.Event), a.Evidence.Key())
}

// ActionableFusion is evidence attached to a fusion pair.
type ActionableFusion struct {
	GeneUp      string
	MinExonUp   int
	MaxExonUp   int
	GeneDown    string
	MinExonDown int
	MaxExonDown int
	Evidence
}

// Key identifies the fusion evidence without its evidence URLs.
func (a ActionableFusion) Key() string {
	return JoinKey(a.GeneUp, strconv.Itoa(a.MinExonUp), strconv.Itoa(a.MaxExonUp),
		a.GeneDown, strconv.Itoa(a.MinExonDown), strconv.Itoa(a.MaxExonDown), a.Evidence.Key())
}

// CharacteristicType is a tumor-wide property.
type CharacteristicType string

// Tumor characteristics.
const (
	CharacteristicMicrosatelliteUnstable CharacteristicType = "MICROSATELLITE_UNSTABLE"
	CharacteristicMicrosatelliteStable   CharacteristicType = "MICROSATELLITE_STABLE"
	CharacteristicHighTumorMutationLoad  CharacteristicType = "HIGH_TUMOR_MUTATIONAL_LOAD"
	CharacteristicLowTumorMutationLoad   CharacteristicType = "LOW_TUMOR_MUTATIONAL_LOAD"
	CharacteristicHomologousRepairDef    CharacteristicType = "HOMOLOGOUS_RECOMBINATION_DEFICIENT"
	CharacteristicHPVPositive            CharacteristicType = "HPV_POSITIVE"
	CharacteristicEBVPositive            CharacteristicType = "EBV_POSITIVE"
)

// Comparator relates a characteristic value to a cutoff.
type Comparator string

// Comparators.
const (
	ComparatorNone           Comparator = ""
	ComparatorEqualOrGreater Comparator = ">="
	ComparatorGreater        Comparator = ">"
	ComparatorEqualOrLess    Comparator = "<="
	ComparatorLess           Comparator = "<"
)

// ActionableCharacteristic is evidence attached to a tumor characteristic.
type ActionableCharacteristic struct {
	Type       CharacteristicType
	Comparator Comparator
	Cutoff     float64
	Evidence
}

// Key identifies the characteristic evidence without its evidence URLs.
func (a ActionableCharacteristic) Key() string {
	return JoinKey(string(a.Type), string(a.Comparator),
		strconv.FormatFloat(a.Cutoff, 'g', -1, 64), a.Evidence.Key())
}

// ActionableHLA is evidence attached to an HLA allele.
type ActionableHLA struct {
	HLAType string
	Evidence
}

// Key identifies the HLA evidence without its evidence URLs.
func (a ActionableHLA) Key() string {
	return JoinKey(a.HLAType, a.Evidence.Key())
}

// RangeKey identifies a range by every field of its annotation.
func RangeKey(r RangeAnnotation) string {
	return JoinKey(r.Gene, r.Transcript, r.Chromosome,
		strconv.FormatInt(r.Start, 10), strconv.FormatInt(r.End, 10),
		string(r.MutationType), strconv.Itoa(r.Rank))
}

// JoinKey builds a composite key from parts.
func JoinKey(parts ...string) string {
	return strings.Join(parts, "\x1f")
}
