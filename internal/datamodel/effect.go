package datamodel

import (
	"fmt"
	"strings"
)

// ProteinEffect annotates the functional consequence of an event on the protein.
type ProteinEffect string

// Protein effects. The _PREDICTED values are the lower-confidence tier of the
// value with the same direction.
const (
	ProteinEffectUnknown                 ProteinEffect = "UNKNOWN"
	ProteinEffectNoEffectPredicted       ProteinEffect = "NO_EFFECT_PREDICTED"
	ProteinEffectNoEffect                ProteinEffect = "NO_EFFECT"
	ProteinEffectLossOfFunctionPredicted ProteinEffect = "LOSS_OF_FUNCTION_PREDICTED"
	ProteinEffectLossOfFunction          ProteinEffect = "LOSS_OF_FUNCTION"
	ProteinEffectGainOfFunctionPredicted ProteinEffect = "GAIN_OF_FUNCTION_PREDICTED"
	ProteinEffectGainOfFunction          ProteinEffect = "GAIN_OF_FUNCTION"
	ProteinEffectAmbiguous               ProteinEffect = "AMBIGUOUS"
)

// ProteinEffects lists every protein effect.
var ProteinEffects = []ProteinEffect{
	ProteinEffectUnknown,
	ProteinEffectNoEffectPredicted,
	ProteinEffectNoEffect,
	ProteinEffectLossOfFunctionPredicted,
	ProteinEffectLossOfFunction,
	ProteinEffectGainOfFunctionPredicted,
	ProteinEffectGainOfFunction,
	ProteinEffectAmbiguous,
}

var confirmedEffects = map[ProteinEffect]ProteinEffect{
	ProteinEffectNoEffectPredicted:       ProteinEffectNoEffect,
	ProteinEffectLossOfFunctionPredicted: ProteinEffectLossOfFunction,
	ProteinEffectGainOfFunctionPredicted: ProteinEffectGainOfFunction,
}

// ParseProteinEffect parses a protein effect name. An empty string is UNKNOWN.
func ParseProteinEffect(s string) (ProteinEffect, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return ProteinEffectUnknown, nil
	}
	for _, pe := range ProteinEffects {
		if string(pe) == s {
			return pe, nil
		}
	}
	return "", fmt.Errorf("unknown protein effect %q", s)
}

// IsPredicted reports whether p is a _PREDICTED tier.
func (p ProteinEffect) IsPredicted() bool {
	_, ok := confirmedEffects[p]
	return ok
}

// Confirmed maps a predicted effect to its confirmed counterpart and returns
// every other effect unchanged.
func (p ProteinEffect) Confirmed() ProteinEffect {
	if c, ok := confirmedEffects[p]; ok {
		return c
	}
	return p
}

func (p ProteinEffect) orUnknown() ProteinEffect {
	if p == "" {
		return ProteinEffectUnknown
	}
	return p
}

// MergeProteinEffect combines two annotations of the same entity. UNKNOWN is
// the identity, a predicted value is absorbed by its confirmed value and two
// different directions give AMBIGUOUS. The merge is commutative and
// associative, so folding it over a group is independent of member order.
func MergeProteinEffect(a, b ProteinEffect) ProteinEffect {
	a, b = a.orUnknown(), b.orUnknown()
	switch {
	case a == b:
		return a
	case a == ProteinEffectUnknown:
		return b
	case b == ProteinEffectUnknown:
		return a
	case a.Confirmed() == b.Confirmed():
		return a.Confirmed()
	default:
		return ProteinEffectAmbiguous
	}
}

// GeneRole classifies a gene as oncogene, tumor suppressor, both or unknown.
type GeneRole string

// Gene roles.
const (
	GeneRoleUnknown GeneRole = "UNKNOWN"
	GeneRoleOnco    GeneRole = "ONCO"
	GeneRoleTSG     GeneRole = "TSG"
	GeneRoleBoth    GeneRole = "BOTH"
)

// GeneRoles lists every gene role.
var GeneRoles = []GeneRole{GeneRoleUnknown, GeneRoleOnco, GeneRoleTSG, GeneRoleBoth}

// ParseGeneRole parses a gene role name. An empty string is UNKNOWN.
func ParseGeneRole(s string) (GeneRole, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "UNKNOWN":
		return GeneRoleUnknown, nil
	case "ONCO", "ONCOGENE":
		return GeneRoleOnco, nil
	case "TSG", "TUMOR_SUPPRESSOR":
		return GeneRoleTSG, nil
	case "BOTH", "ONCOGENE,TSG":
		return GeneRoleBoth, nil
	}
	return "", fmt.Errorf("unknown gene role %q", s)
}

// MergeGeneRole combines two gene roles. UNKNOWN is the identity and any
// disagreement between known roles gives BOTH.
func MergeGeneRole(a, b GeneRole) GeneRole {
	if a == "" {
		a = GeneRoleUnknown
	}
	if b == "" {
		b = GeneRoleUnknown
	}
	switch {
	case a == b:
		return a
	case a == GeneRoleUnknown:
		return b
	case b == GeneRoleUnknown:
		return a
	default:
		return GeneRoleBoth
	}
}
