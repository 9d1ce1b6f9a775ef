package generoles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

const testList = "Hugo Symbol\tEntrez Gene ID\tGene Type\n" +
	"KRAS\t3845\tONCOGENE\n" +
	"TP53\t7157\tTSG\n" +
	"NOTCH1\t4851\tONCOGENE,TSG\n" +
	"ARID1B\t57492\t\n" +
	"short\n"

func TestParse(t *testing.T) {
	roles, err := Parse(strings.NewReader(testList))
	require.NoError(t, err)

	tests := []struct {
		gene string
		want datamodel.GeneRole
	}{
		{"KRAS", datamodel.GeneRoleOnco},
		{"kras", datamodel.GeneRoleOnco},
		{"TP53", datamodel.GeneRoleTSG},
		{"NOTCH1", datamodel.GeneRoleBoth},
		{"ARID1B", datamodel.GeneRoleUnknown},
		{"BRAF", datamodel.GeneRoleUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.gene, func(t *testing.T) {
			assert.Equal(t, tt.want, roles.Role(tt.gene))
		})
	}
	assert.Len(t, roles.Genes(), 4)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"missing symbol", "Gene\tGene Type\n"},
		{"missing type", "Hugo Symbol\tOther\n"},
		{"bad role", "Hugo Symbol\tGene Type\nKRAS\tWEIRD\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load("/nonexistent/path.tsv")
	assert.Error(t, err)
}
