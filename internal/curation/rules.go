package curation

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

// Remap rewrites entries matching Key.
type Remap struct {
	Key `yaml:",inline"`
	To  Replacement `yaml:"to"`
}

// Rules are the curation rules of one knowledgebase.
type Rules struct {
	Filters []Key   `yaml:"filters"`
	Remaps  []Remap `yaml:"remaps"`
}

// RuleSet holds curation rules per knowledgebase.
type RuleSet map[datamodel.Knowledgebase]Rules

// For returns the rules of kb, or empty rules.
func (rs RuleSet) For(kb datamodel.Knowledgebase) Rules {
	return rs[kb]
}

// ParseRules reads a YAML rule file keyed by knowledgebase name:
//
//	CKB:
//	  filters:
//	    - {gene: BRAF, event: V600E}
//	  remaps:
//	    - {gene: MLL, event: FUSION, to: {gene: KMT2A}}
func ParseRules(r io.Reader) (RuleSet, error) {
	var raw map[string]Rules
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return RuleSet{}, nil
		}
		return nil, fmt.Errorf("decode curation rules: %w", err)
	}
	rs := make(RuleSet, len(raw))
	for name, rules := range raw {
		kb, err := datamodel.ParseKnowledgebase(name)
		if err != nil {
			return nil, fmt.Errorf("curation rules: %w", err)
		}
		for i, k := range rules.Filters {
			if k.Gene == "" && k.Event == "" {
				return nil, fmt.Errorf("curation rules for %s: filter %d has no gene or event", kb, i)
			}
		}
		for i, m := range rules.Remaps {
			if m.To.Gene == "" && m.To.Event == "" {
				return nil, fmt.Errorf("curation rules for %s: remap %d has an empty replacement", kb, i)
			}
		}
		rs[kb] = rules
	}
	return rs, nil
}

// LoadRules reads a rule file from path.
func LoadRules(path string) (RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open curation rules: %w", err)
	}
	defer f.Close()
	return ParseRules(f)
}
