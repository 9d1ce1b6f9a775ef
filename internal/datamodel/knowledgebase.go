// Package datamodel defines the knowledge-base records produced by extraction
// and consumed by consolidation. All record types are plain values; code that
// needs to change a record builds a new one.
package datamodel

import (
	"fmt"
	"sort"
	"strings"
)

// RefGenome identifies a reference genome build.
type RefGenome string

// Supported reference genome builds.
const (
	RefGenomeV37 RefGenome = "V37"
	RefGenomeV38 RefGenome = "V38"
)

// ParseRefGenome accepts V37/V38 as well as the common GRCh and hg aliases.
func ParseRefGenome(s string) (RefGenome, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "V37", "37", "GRCH37", "HG19":
		return RefGenomeV37, nil
	case "V38", "38", "GRCH38", "HG38":
		return RefGenomeV38, nil
	}
	return "", fmt.Errorf("unknown reference genome %q", s)
}

// Knowledgebase identifies the upstream source a record was contributed by.
type Knowledgebase string

// Knowledgebases with a source configuration in the extraction package.
const (
	KnowledgebaseCKB            Knowledgebase = "CKB"
	KnowledgebaseCIViC          Knowledgebase = "CIVIC"
	KnowledgebaseDoCM           Knowledgebase = "DOCM"
	KnowledgebaseIClusion       Knowledgebase = "ICLUSION"
	KnowledgebaseHartwigCurated Knowledgebase = "HARTWIG_CURATED"
)

// native reference genome of every knowledgebase.
var knowledgebaseRefGenomes = map[Knowledgebase]RefGenome{
	KnowledgebaseCKB:            RefGenomeV38,
	KnowledgebaseCIViC:          RefGenomeV37,
	KnowledgebaseDoCM:           RefGenomeV37,
	KnowledgebaseIClusion:       RefGenomeV37,
	KnowledgebaseHartwigCurated: RefGenomeV37,
}

// Knowledgebases returns all known knowledgebases in name order.
func Knowledgebases() []Knowledgebase {
	kbs := make([]Knowledgebase, 0, len(knowledgebaseRefGenomes))
	for kb := range knowledgebaseRefGenomes {
		kbs = append(kbs, kb)
	}
	sort.Slice(kbs, func(i, j int) bool { return kbs[i] < kbs[j] })
	return kbs
}

// ParseKnowledgebase resolves a knowledgebase by case-insensitive name.
func ParseKnowledgebase(s string) (Knowledgebase, error) {
	kb := Knowledgebase(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := knowledgebaseRefGenomes[kb]; !ok {
		return "", fmt.Errorf("unknown knowledgebase %q", s)
	}
	return kb, nil
}

// RefGenome returns the reference genome build the knowledgebase reports
// coordinates in.
func (k Knowledgebase) RefGenome() RefGenome {
	if rg, ok := knowledgebaseRefGenomes[k]; ok {
		return rg
	}
	return RefGenomeV38
}

// Sources is a sorted set of knowledgebases without duplicates.
type Sources []Knowledgebase

// NewSources builds a Sources set from any list of knowledgebases.
func NewSources(kbs ...Knowledgebase) Sources {
	if len(kbs) == 0 {
		return nil
	}
	out := make(Sources, 0, len(kbs))
	seen := make(map[Knowledgebase]bool, len(kbs))
	for _, kb := range kbs {
		if !seen[kb] {
			seen[kb] = true
			out = append(out, kb)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Union returns the set union of s and o. Neither input is modified.
func (s Sources) Union(o Sources) Sources {
	all := make([]Knowledgebase, 0, len(s)+len(o))
	all = append(all, s...)
	all = append(all, o...)
	return NewSources(all...)
}

// Contains reports whether kb is in the set.
func (s Sources) Contains(kb Knowledgebase) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= kb })
	return i < len(s) && s[i] == kb
}

func (s Sources) String() string {
	parts := make([]string, len(s))
	for i, kb := range s {
		parts[i] = string(kb)
	}
	return strings.Join(parts, ",")
}
