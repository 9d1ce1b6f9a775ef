package classification

import (
	"strings"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

// ExonSpan holds the exon bounds an exon-skipping or intragenic deletion
// event leaves joined: the last retained upstream exon and the first retained
// downstream exon.
type ExonSpan struct {
	Up   int
	Down int
}

// Config holds the keyword sets and per-gene rules the matchers use. Keyword
// phrases are compared in upper case after the gene prefix is removed from
// the event text.
type Config struct {
	// MaxInframeLength is the longest inframe deletion or insertion (in amino
	// acids) still treated as a hotspot.
	MaxInframeLength int

	ExonIdentifiers []string

	// FusionPairAndExons maps gene → event phrase → exon span for events that
	// are intragenic fusions, e.g. MET exon 14 skipping.
	FusionPairAndExons map[string]map[string]ExonSpan

	FusionSuffixes              []string
	PromiscuousFusionKeyPhrases []string
	GenesWithHyphen             []string

	ActivationKeyPhrases   []string
	InactivationKeyPhrases []string
	AnyMutationKeyPhrases  []string

	AmplificationKeyPhrases   []string
	OverExpressionKeyPhrases  []string
	DeletionKeyPhrases        []string
	UnderExpressionKeyPhrases []string
	WildTypeKeyPhrases        []string

	// Characteristics maps a characteristic phrase to its type. A phrase may
	// be followed by a comparator and a cutoff ("TMB >= 10").
	Characteristics map[string]datamodel.CharacteristicType

	// ComplexEvents maps gene → event phrases that are known to be complex.
	ComplexEvents map[string][]string
}

// DefaultConfig returns the rule set shared by all knowledgebases.
func DefaultConfig() Config {
	return Config{
		MaxInframeLength: 16,
		ExonIdentifiers:  []string{"EXON", "EX"},
		FusionPairAndExons: map[string]map[string]ExonSpan{
			"MET": {
				"EXON 14 SKIPPING": {Up: 13, Down: 15},
				"EX14 SKIPPING":    {Up: 13, Down: 15},
				"EXON14 SKIPPING":  {Up: 13, Down: 15},
			},
			"EGFR": {
				"VIII":     {Up: 1, Down: 8},
				"EGFRVIII": {Up: 1, Down: 8},
			},
		},
		FusionSuffixes:              []string{" FUSION", " FUSIONS", " REARRANGEMENT", " TRANSLOCATION"},
		PromiscuousFusionKeyPhrases: []string{"FUSION", "FUSIONS", "REARRANGEMENT", "REARRANGEMENTS", "TRANSLOCATION", "FUSION POSITIVE"},
		GenesWithHyphen:             []string{"NKX2-1", "HLA-A", "HLA-B", "HLA-C", "ERVK-6"},
		ActivationKeyPhrases:        []string{"ACTIVATING MUTATION", "ACT MUT", "GAIN OF FUNCTION", "ONCOGENIC MUTATION"},
		InactivationKeyPhrases:      []string{"INACTIVATING MUTATION", "INACT MUT", "LOSS OF FUNCTION", "LOSS-OF-FUNCTION", "TRUNCATING MUTATION", "BIALLELIC INACTIVATION"},
		AnyMutationKeyPhrases:       []string{"MUTATION", "MUTATIONS", "MUTANT", "ALTERATION", "POSITIVE", "ANY MUTATION"},
		AmplificationKeyPhrases:     []string{"AMPLIFICATION", "AMP", "AMPLIFIED", "COPY NUMBER GAIN"},
		OverExpressionKeyPhrases:    []string{"OVEREXPRESSION", "OVER EXPRESSION", "OVER EXP", "HIGH EXPRESSION"},
		DeletionKeyPhrases:          []string{"DELETION", "DEL", "LOSS", "COPY NUMBER LOSS", "HOMOZYGOUS DELETION"},
		UnderExpressionKeyPhrases:   []string{"UNDEREXPRESSION", "UNDER EXPRESSION", "DEC EXP", "LOW EXPRESSION"},
		WildTypeKeyPhrases:          []string{"WILD TYPE", "WILDTYPE", "WILD-TYPE", "WT"},
		Characteristics: map[string]datamodel.CharacteristicType{
			"MSI HIGH":                        datamodel.CharacteristicMicrosatelliteUnstable,
			"MSI-H":                           datamodel.CharacteristicMicrosatelliteUnstable,
			"MICROSATELLITE INSTABILITY-HIGH": datamodel.CharacteristicMicrosatelliteUnstable,
			"MICROSATELLITE UNSTABLE":         datamodel.CharacteristicMicrosatelliteUnstable,
			"MSS":                             datamodel.CharacteristicMicrosatelliteStable,
			"MICROSATELLITE STABLE":           datamodel.CharacteristicMicrosatelliteStable,
			"TMB HIGH":                        datamodel.CharacteristicHighTumorMutationLoad,
			"TMB-H":                           datamodel.CharacteristicHighTumorMutationLoad,
			"TMB":                             datamodel.CharacteristicHighTumorMutationLoad,
			"TMB LOW":                         datamodel.CharacteristicLowTumorMutationLoad,
			"HRD":                             datamodel.CharacteristicHomologousRepairDef,
			"HRD POSITIVE":                    datamodel.CharacteristicHomologousRepairDef,
			"HPV POSITIVE":                    datamodel.CharacteristicHPVPositive,
			"EBV POSITIVE":                    datamodel.CharacteristicEBVPositive,
		},
		ComplexEvents: map[string][]string{
			"BRAF": {"V600E/K", "V600 AND V601 MUTATION"},
			"KIT":  {"D816V/H/Y"},
		},
	}
}

// ExonSpan returns the intragenic fusion span configured for (gene, event).
func (c *Config) ExonSpan(gene, event string) (ExonSpan, bool) {
	phrases, ok := c.FusionPairAndExons[strings.ToUpper(gene)]
	if !ok {
		return ExonSpan{}, false
	}
	span, ok := phrases[normalize(gene, event)]
	return span, ok
}

// IsKeyPhrase reports whether the normalized event is one of the configured
// keyword phrases of any keyword-based matcher.
func (c *Config) IsKeyPhrase(gene, event string) bool {
	s := normalize(gene, event)
	for _, set := range [][]string{
		c.PromiscuousFusionKeyPhrases, c.ActivationKeyPhrases, c.InactivationKeyPhrases,
		c.AnyMutationKeyPhrases, c.AmplificationKeyPhrases, c.OverExpressionKeyPhrases,
		c.DeletionKeyPhrases, c.UnderExpressionKeyPhrases, c.WildTypeKeyPhrases,
	} {
		if contains(set, s) {
			return true
		}
	}
	_, _, _, ok := c.Characteristic(gene, event)
	return ok
}

// normalize upper-cases the event, collapses whitespace and removes a leading
// gene symbol.
func normalize(gene, event string) string {
	s := strings.Join(strings.Fields(strings.ToUpper(event)), " ")
	g := strings.ToUpper(strings.TrimSpace(gene))
	if g == "" {
		return s
	}
	if s == g {
		return ""
	}
	return strings.TrimPrefix(s, g+" ")
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
