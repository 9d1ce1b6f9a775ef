package datamodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeProteinEffect(t *testing.T) {
	tests := []struct {
		name string
		a, b ProteinEffect
		want ProteinEffect
	}{
		{"equal", ProteinEffectLossOfFunction, ProteinEffectLossOfFunction, ProteinEffectLossOfFunction},
		{"unknown left", ProteinEffectUnknown, ProteinEffectNoEffect, ProteinEffectNoEffect},
		{"unknown right", ProteinEffectGainOfFunctionPredicted, ProteinEffectUnknown, ProteinEffectGainOfFunctionPredicted},
		{"empty is unknown", "", ProteinEffectLossOfFunction, ProteinEffectLossOfFunction},
		{"predicted absorbed", ProteinEffectGainOfFunctionPredicted, ProteinEffectGainOfFunction, ProteinEffectGainOfFunction},
		{"predicted absorbed reversed", ProteinEffectGainOfFunction, ProteinEffectGainOfFunctionPredicted, ProteinEffectGainOfFunction},
		{"no effect predicted absorbed", ProteinEffectNoEffectPredicted, ProteinEffectNoEffect, ProteinEffectNoEffect},
		{"opposite directions", ProteinEffectGainOfFunction, ProteinEffectLossOfFunction, ProteinEffectAmbiguous},
		{"opposite predicted", ProteinEffectGainOfFunctionPredicted, ProteinEffectLossOfFunctionPredicted, ProteinEffectAmbiguous},
		{"ambiguous absorbs", ProteinEffectAmbiguous, ProteinEffectNoEffect, ProteinEffectAmbiguous},
		{"ambiguous with unknown", ProteinEffectAmbiguous, ProteinEffectUnknown, ProteinEffectAmbiguous},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeProteinEffect(tt.a, tt.b))
		})
	}
}

func TestMergeProteinEffect_Laws(t *testing.T) {
	for _, a := range ProteinEffects {
		assert.Equal(t, a, MergeProteinEffect(a, ProteinEffectUnknown), "identity for %s", a)
		assert.Equal(t, a, MergeProteinEffect(a, a), "idempotent for %s", a)
		for _, b := range ProteinEffects {
			ab := MergeProteinEffect(a, b)
			require.Contains(t, ProteinEffects, ab, "merge(%s, %s) must stay in the domain", a, b)
			assert.Equal(t, ab, MergeProteinEffect(b, a), "commutative for %s, %s", a, b)
			for _, c := range ProteinEffects {
				assert.Equal(t,
					MergeProteinEffect(ab, c),
					MergeProteinEffect(a, MergeProteinEffect(b, c)),
					"associative for %s, %s, %s", a, b, c)
			}
		}
	}
}

func TestMergeGeneRole_Laws(t *testing.T) {
	assert.Equal(t, GeneRoleBoth, MergeGeneRole(GeneRoleOnco, GeneRoleTSG))
	assert.Equal(t, GeneRoleTSG, MergeGeneRole(GeneRoleUnknown, GeneRoleTSG))
	assert.Equal(t, GeneRoleOnco, MergeGeneRole("", GeneRoleOnco))

	for _, a := range GeneRoles {
		for _, b := range GeneRoles {
			assert.Equal(t, MergeGeneRole(a, b), MergeGeneRole(b, a))
			for _, c := range GeneRoles {
				assert.Equal(t,
					MergeGeneRole(MergeGeneRole(a, b), c),
					MergeGeneRole(a, MergeGeneRole(b, c)))
			}
		}
	}
}

func TestParseProteinEffect(t *testing.T) {
	pe, err := ParseProteinEffect("gain_of_function_predicted")
	require.NoError(t, err)
	assert.Equal(t, ProteinEffectGainOfFunctionPredicted, pe)
	assert.True(t, pe.IsPredicted())
	assert.Equal(t, ProteinEffectGainOfFunction, pe.Confirmed())

	pe, err = ParseProteinEffect("")
	require.NoError(t, err)
	assert.Equal(t, ProteinEffectUnknown, pe)

	_, err = ParseProteinEffect("SWITCH_OF_FUNCTION")
	assert.Error(t, err)
}

func TestParseGeneRole(t *testing.T) {
	for in, want := range map[string]GeneRole{
		"ONCOGENE":     GeneRoleOnco,
		"tsg":          GeneRoleTSG,
		"ONCOGENE,TSG": GeneRoleBoth,
		"":             GeneRoleUnknown,
	} {
		got, err := ParseGeneRole(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseGeneRole("KINASE")
	assert.Error(t, err)
}
