package entries

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-serve/internal/datamodel"
	"github.com/inodb/vibe-serve/internal/extraction"
)

const sampleTSV = `# CKB export
gene	transcript	event	protein_effect	gene_role	treatment	drug_classes	cancer_type	doid	blacklist_cancer_types	level	direction	source_urls	evidence_urls
BRAF	ENST00000288602	V600E	gain_of_function	ONCOGENE	Vemurafenib	BRAF inhibitor	Melanoma	1909	Uveal melanoma|6039	A	responsive	https://ckb/1	https://pubmed/1, https://pubmed/2

EGFR		EXON 19 DELETION
-		MSI HIGH			Pembrolizumab		Solid tumor	162		B	PREDICTED RESPONSIVE
BRAF		V600E + MEK1 K57N
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParser_ReadsEntries(t *testing.T) {
	entries, err := ReadAll(writeFile(t, "ckb.tsv", sampleTSV))
	require.NoError(t, err)
	require.Len(t, entries, 4)

	braf := entries[0]
	assert.Equal(t, 3, braf.Line)
	assert.Equal(t, "BRAF", braf.Gene)
	assert.Equal(t, "ENST00000288602", braf.Transcript)
	assert.Equal(t, datamodel.ProteinEffectGainOfFunction, braf.ProteinEffect)
	assert.Equal(t, datamodel.GeneRoleOnco, braf.GeneRole)
	require.NotNil(t, braf.Evidence)
	assert.Equal(t, datamodel.Evidence{
		SourceURLs:           []string{"https://ckb/1"},
		Treatment:            datamodel.Treatment{Name: "Vemurafenib", DrugClasses: []string{"BRAF inhibitor"}},
		ApplicableCancerType: datamodel.CancerType{Name: "Melanoma", DOID: "1909"},
		BlacklistCancerTypes: []datamodel.CancerType{{Name: "Uveal melanoma", DOID: "6039"}},
		Level:                datamodel.EvidenceLevelA,
		Direction:            datamodel.DirectionResponsive,
		EvidenceURLs:         []string{"https://pubmed/1", "https://pubmed/2"},
	}, *braf.Evidence)
	assert.Nil(t, braf.Components)

	egfr := entries[1]
	assert.Equal(t, 5, egfr.Line)
	assert.Equal(t, "EXON 19 DELETION", egfr.Event)
	assert.Equal(t, datamodel.ProteinEffectUnknown, egfr.ProteinEffect)
	assert.Equal(t, datamodel.GeneRoleUnknown, egfr.GeneRole)
	assert.Nil(t, egfr.Evidence)

	msi := entries[2]
	assert.Equal(t, "-", msi.Gene)
	require.NotNil(t, msi.Evidence)
	assert.Equal(t, datamodel.DirectionPredictedResponsive, msi.Evidence.Direction)
	assert.Equal(t, datamodel.EvidenceLevelB, msi.Evidence.Level)

	assert.Equal(t, []extraction.Component{
		{Gene: "BRAF", Event: "V600E"},
		{Gene: "MEK1", Event: "K57N"},
	}, entries[3].Components)
}

func TestParser_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ckb.tsv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sampleTSV))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	entries, err := ReadAll(path)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestParser_Columns(t *testing.T) {
	p, err := NewParserFromReader(strings.NewReader("event\tGene\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, p.Columns().Gene)
	assert.Equal(t, 0, p.Columns().Event)
	assert.Equal(t, -1, p.Columns().Treatment)

	e, err := p.Next()
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"empty input", "", 0},
		{"missing gene column", "event\tlevel\nV600E\tA\n", 1},
		{"treatment without level", "gene\tevent\ttreatment\n", 1},
		{"short line", "gene\ttranscript\tevent\nBRAF\n", 2},
		{"bad protein effect", "gene\tevent\tprotein_effect\nBRAF\tV600E\tSWITCH\n", 2},
		{"bad level", "gene\tevent\ttreatment\tlevel\nBRAF\tV600E\tVemurafenib\tZ\n", 2},
		{"bad direction", "gene\tevent\ttreatment\tlevel\tdirection\nBRAF\tV600E\tVemurafenib\tA\tsideways\n", 2},
		{"blacklist without name", "gene\tevent\ttreatment\tlevel\tblacklist_cancer_types\nBRAF\tV600E\tX\tA\t|123\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewParserFromReader(strings.NewReader(tt.input))
			if err == nil {
				_, err = p.Next()
			}
			require.Error(t, err)
			var pErr *ParseError
			require.True(t, errors.As(err, &pErr), "got %v", err)
			assert.Equal(t, tt.line, pErr.Line)
		})
	}
}

func TestParser_MissingFile(t *testing.T) {
	_, err := ReadAll(filepath.Join(t.TempDir(), "absent.tsv"))
	assert.Error(t, err)
}
