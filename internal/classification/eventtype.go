// Package classification assigns a molecular event type to a free-text
// (gene, event) pair reported by a knowledgebase.
package classification

// EventType is the molecular event category of a knowledgebase entry.
type EventType string

// Event types. COMBINED is decided by the shape of an entry (several
// variants), never by a matcher.
const (
	Hotspot           EventType = "HOTSPOT"
	Codon             EventType = "CODON"
	Exon              EventType = "EXON"
	FusionPairAndExon EventType = "FUSION_PAIR_AND_EXON"
	GeneLevel         EventType = "GENE_LEVEL"
	Amplification     EventType = "AMPLIFICATION"
	OverExpression    EventType = "OVER_EXPRESSION"
	Deletion          EventType = "DELETION"
	UnderExpression   EventType = "UNDER_EXPRESSION"
	FusionPair        EventType = "FUSION_PAIR"
	PromiscuousFusion EventType = "PROMISCUOUS_FUSION"
	Characteristic    EventType = "CHARACTERISTIC"
	WildType          EventType = "WILD_TYPE"
	ImmunoHLA         EventType = "IMMUNO_HLA"
	Combined          EventType = "COMBINED"
	Complex           EventType = "COMPLEX"
	Unknown           EventType = "UNKNOWN"
)

// EventTypes lists every event type in declaration order.
var EventTypes = []EventType{
	Hotspot, Codon, Exon, FusionPairAndExon, GeneLevel, Amplification,
	OverExpression, Deletion, UnderExpression, FusionPair, PromiscuousFusion,
	Characteristic, WildType, ImmunoHLA, Combined, Complex, Unknown,
}
