package classification

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

// EventMatcher decides whether a (gene, event) pair belongs to one event type.
// Matchers are pure and never panic on malformed input.
type EventMatcher interface {
	Matches(gene, event string) bool
}

// MatcherFunc adapts a function to EventMatcher.
type MatcherFunc func(gene, event string) bool

// Matches calls f.
func (f MatcherFunc) Matches(gene, event string) bool { return f(gene, event) }

var (
	reDigitRun = regexp.MustCompile(`\d+`)
	reCodon    = regexp.MustCompile(`^(` + aminoAcids + `)?(\d+)(X|\?)?$`)

	reSubstitution = regexp.MustCompile(`^` + aminoAcids + `(\d+)(` + aminoAcids + `|\*|=)$`)
	reDelDup       = regexp.MustCompile(`^` + aminoAcids + `(\d+)(?:_` + aminoAcids + `(\d+))?(?:del` + aminoAcids + `*|dup)$`)
	reInsertion    = regexp.MustCompile(`^` + aminoAcids + `(\d+)_` + aminoAcids + `(\d+)ins(` + aminoAcids + `+)$`)
	reDelIns       = regexp.MustCompile(`^` + aminoAcids + `(\d+)(?:_` + aminoAcids + `(\d+))?delins(` + aminoAcids + `+)$`)
	reFrameshift   = regexp.MustCompile(`^` + aminoAcids + `\d+` + aminoAcids + `?fs`)
	reExtension    = regexp.MustCompile(`^\*\d+` + aminoAcids + `?ext`)
	reCharCutoff   = regexp.MustCompile(`^(.*?)\s*(>=|<=|>|<)\s*(\d+(?:\.\d+)?)$`)
	reGeneToken    = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.]+$`)
	reAllDigits    = regexp.MustCompile(`^\d+$`)
	reProteinPos   = regexp.MustCompile(`^` + aminoAcids + `\d+$`)
)

// ProteinAnnotation removes the gene prefix and "p." from an event without
// changing its case.
func ProteinAnnotation(gene, event string) string {
	s := strings.TrimSpace(event)
	if g := strings.TrimSpace(gene); g != "" && strings.HasPrefix(strings.ToUpper(s), strings.ToUpper(g)+" ") {
		s = strings.TrimSpace(s[len(g)+1:])
	}
	return StripProteinPrefix(s)
}

// inframeLength returns the number of amino acids an inframe protein change
// touches, or -1 if the text is not an inframe protein change.
func inframeLength(s string) int {
	if m := reSubstitution.FindStringSubmatch(s); m != nil {
		return 1
	}
	if m := reDelDup.FindStringSubmatch(s); m != nil {
		return spanLength(m[1], m[2])
	}
	if m := reInsertion.FindStringSubmatch(s); m != nil {
		return len(m[3])
	}
	if m := reDelIns.FindStringSubmatch(s); m != nil {
		del := spanLength(m[1], m[2])
		if del < 0 {
			return -1
		}
		if ins := len(m[3]); ins > del {
			return ins
		}
		return del
	}
	return -1
}

func spanLength(start, end string) int {
	s, err := strconv.Atoi(start)
	if err != nil {
		return -1
	}
	if end == "" {
		return 1
	}
	e, err := strconv.Atoi(end)
	if err != nil || e < s {
		return -1
	}
	return e - s + 1
}

// HotspotMatcher matches protein changes that resolve to a small set of exact
// variants: substitutions and short inframe deletions, duplications and
// insertions.
func HotspotMatcher(cfg *Config) EventMatcher {
	return MatcherFunc(func(gene, event string) bool {
		n := inframeLength(ProteinAnnotation(gene, event))
		return n > 0 && n <= cfg.MaxInframeLength
	})
}

// CodonMatcher matches a single codon such as "R201" or "G12X". Text with more
// than one digit run, range or exon keywords, or a trailing amino acid after
// the position is rejected.
func CodonMatcher(cfg *Config) EventMatcher {
	return MatcherFunc(func(gene, event string) bool {
		s := ProteinAnnotation(gene, event)
		if len(reDigitRun.FindAllString(s, -1)) != 1 {
			return false
		}
		upper := strings.ToUpper(s)
		for _, id := range cfg.ExonIdentifiers {
			if strings.Contains(upper, id) {
				return false
			}
		}
		m := reCodon.FindStringSubmatch(s)
		if m == nil {
			return false
		}
		rank, err := strconv.Atoi(m[2])
		return err == nil && rank > 0
	})
}

// ExonMatcher matches exon-anchored events such as "EXON 19 DELETION".
// Intragenic fusions configured in FusionPairAndExons are left to
// FusionPairAndExonMatcher.
func ExonMatcher(cfg *Config) EventMatcher {
	return MatcherFunc(func(gene, event string) bool {
		if _, ok := cfg.ExonSpan(gene, event); ok {
			return false
		}
		s := normalize(gene, event)
		if strings.Contains(s, "FUSION") || strings.Contains(s, "SKIPPING") {
			return false
		}
		return len(ExonRanks(s)) > 0
	})
}

// FusionPairAndExonMatcher matches intragenic fusions configured per gene.
func FusionPairAndExonMatcher(cfg *Config) EventMatcher {
	return MatcherFunc(func(gene, event string) bool {
		_, ok := cfg.ExonSpan(gene, event)
		return ok
	})
}

// FusionPairMatcher matches "EML4-ALK", "BCR::ABL1" and "EML4 - ALK FUSION".
func FusionPairMatcher(cfg *Config) EventMatcher {
	return MatcherFunc(func(gene, event string) bool {
		_, _, ok := cfg.FusionGenes(gene, event)
		return ok
	})
}

// FusionGenes splits a fusion pair event into its upstream and downstream
// genes.
func (c *Config) FusionGenes(gene, event string) (up, down string, ok bool) {
	raw := strings.TrimSpace(event)
	for _, marker := range []string{"del", "ins", "dup", "fs", "_", "*"} {
		if strings.Contains(raw, marker) {
			return "", "", false
		}
	}
	s := normalize(gene, event)
	if strings.HasPrefix(s, "HLA-") || c.IsKeyPhrase(gene, event) {
		return "", "", false
	}
	for _, suffix := range c.FusionSuffixes {
		s = strings.TrimSuffix(s, suffix)
	}
	if contains(c.GenesWithHyphen, s) {
		return "", "", false
	}
	for _, id := range c.ExonIdentifiers {
		if strings.Contains(s, id+" ") || strings.HasPrefix(s, id) && reAllDigits.MatchString(strings.TrimPrefix(s, id)) {
			return "", "", false
		}
	}
	var parts []string
	if strings.Contains(s, "::") {
		parts = strings.Split(s, "::")
	} else {
		parts = strings.Split(s, "-")
	}
	if len(parts) != 2 {
		return "", "", false
	}
	up, down = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	for _, g := range []string{up, down} {
		if !reGeneToken.MatchString(g) || reAllDigits.MatchString(g) {
			return "", "", false
		}
	}
	if reProteinPos.MatchString(up) && reProteinPos.MatchString(down) {
		return "", "", false
	}
	return up, down, true
}

// PromiscuousFusionMatcher matches fusions with an unspecified partner.
func PromiscuousFusionMatcher(cfg *Config) EventMatcher {
	return keyPhraseMatcher(func() []string { return cfg.PromiscuousFusionKeyPhrases })
}

// GeneLevelMatcher matches gene-wide mutation events, including an event that
// only names the gene.
func GeneLevelMatcher(cfg *Config) EventMatcher {
	return MatcherFunc(func(gene, event string) bool {
		if strings.TrimSpace(gene) != "" && strings.TrimSpace(event) != "" && normalize(gene, event) == "" {
			return true
		}
		_, ok := cfg.GeneLevelEvent(gene, event)
		return ok
	})
}

// GeneLevelEvent maps a gene-level event phrase to the gene event it requires.
// Phrases that only name a mutation map to ANY_MUTATION.
func (c *Config) GeneLevelEvent(gene, event string) (datamodel.GeneEvent, bool) {
	s := normalize(gene, event)
	switch {
	case contains(c.ActivationKeyPhrases, s):
		return datamodel.GeneEventActivation, true
	case contains(c.InactivationKeyPhrases, s):
		return datamodel.GeneEventInactivation, true
	case contains(c.AnyMutationKeyPhrases, s):
		return datamodel.GeneEventAnyMutation, true
	}
	return "", false
}

// AmplificationMatcher matches copy-number gains.
func AmplificationMatcher(cfg *Config) EventMatcher {
	return keyPhraseMatcher(func() []string { return cfg.AmplificationKeyPhrases })
}

// OverExpressionMatcher matches over-expression events.
func OverExpressionMatcher(cfg *Config) EventMatcher {
	return keyPhraseMatcher(func() []string { return cfg.OverExpressionKeyPhrases })
}

// DeletionMatcher matches whole-gene copy-number losses.
func DeletionMatcher(cfg *Config) EventMatcher {
	return keyPhraseMatcher(func() []string { return cfg.DeletionKeyPhrases })
}

// UnderExpressionMatcher matches under-expression events.
func UnderExpressionMatcher(cfg *Config) EventMatcher {
	return keyPhraseMatcher(func() []string { return cfg.UnderExpressionKeyPhrases })
}

// WildTypeMatcher matches wild-type requirements.
func WildTypeMatcher(cfg *Config) EventMatcher {
	return keyPhraseMatcher(func() []string { return cfg.WildTypeKeyPhrases })
}

func keyPhraseMatcher(phrases func() []string) EventMatcher {
	return MatcherFunc(func(gene, event string) bool {
		s := normalize(gene, event)
		return s != "" && contains(phrases(), s)
	})
}

// CharacteristicMatcher matches tumor characteristics such as "MSI HIGH" or
// "TMB >= 10".
func CharacteristicMatcher(cfg *Config) EventMatcher {
	return MatcherFunc(func(gene, event string) bool {
		_, _, _, ok := cfg.Characteristic(gene, event)
		return ok
	})
}

// Characteristic parses a tumor characteristic with an optional cutoff.
func (c *Config) Characteristic(gene, event string) (datamodel.CharacteristicType, datamodel.Comparator, float64, bool) {
	s := normalize(gene, event)
	if t, ok := c.Characteristics[s]; ok {
		return t, datamodel.ComparatorNone, 0, true
	}
	m := reCharCutoff.FindStringSubmatch(s)
	if m == nil {
		return "", "", 0, false
	}
	t, ok := c.Characteristics[m[1]]
	if !ok {
		return "", "", 0, false
	}
	cutoff, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return "", "", 0, false
	}
	return t, datamodel.Comparator(m[2]), cutoff, true
}

// ImmunoHLAMatcher matches HLA alleles such as "HLA-A*02:01".
func ImmunoHLAMatcher(cfg *Config) EventMatcher {
	return MatcherFunc(func(gene, event string) bool {
		if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(event)), "HLA-") {
			return true
		}
		return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(gene)), "HLA-") &&
			strings.HasPrefix(normalize(gene, event), "*")
	})
}

// ComplexMatcher matches protein changes that cannot be expressed as a
// hotspot, codon or range: frameshifts, stop-loss extensions, splice events,
// long inframe changes and configured per-gene complex events.
func ComplexMatcher(cfg *Config) EventMatcher {
	return MatcherFunc(func(gene, event string) bool {
		if contains(cfg.ComplexEvents[strings.ToUpper(strings.TrimSpace(gene))], normalize(gene, event)) {
			return true
		}
		s := ProteinAnnotation(gene, event)
		if reFrameshift.MatchString(s) || reExtension.MatchString(s) || strings.HasPrefix(s, "c.") {
			return true
		}
		if strings.Contains(strings.ToUpper(s), "SPLICE") {
			return true
		}
		return inframeLength(s) > cfg.MaxInframeLength
	})
}

// ExonRanks extracts exon numbers from exon-anchored text: "EXON 19" gives
// [19], "EXON 2-4" gives [2 3 4] and "EXON 9 OR EXON 20" gives [9 20].
func ExonRanks(event string) []int {
	s := strings.ToUpper(event)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '/' || r == '(' || r == ')'
	})
	var ranks []int
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		var num string
		switch {
		case f == "EXON" || f == "EXONS" || f == "EX":
			if i+1 >= len(fields) {
				continue
			}
			i++
			num = fields[i]
		case strings.HasPrefix(f, "EXON") && len(f) > 4 && f[4] >= '0' && f[4] <= '9':
			num = f[4:]
		case strings.HasPrefix(f, "EX") && len(f) > 2 && f[2] >= '0' && f[2] <= '9':
			num = f[2:]
		default:
			continue
		}
		ranks = append(ranks, parseRankRange(num)...)
	}
	return ranks
}

func parseRankRange(s string) []int {
	lo, hi, found := strings.Cut(s, "-")
	start, err := strconv.Atoi(lo)
	if err != nil || start <= 0 {
		return nil
	}
	if !found {
		return []int{start}
	}
	end, err := strconv.Atoi(hi)
	if err != nil || end < start {
		return nil
	}
	ranks := make([]int, 0, end-start+1)
	for r := start; r <= end; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}
