package consolidation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

var (
	ckb   = datamodel.KnowledgebaseCKB
	civic = datamodel.KnowledgebaseCIViC
	docm  = datamodel.KnowledgebaseDoCM
)

func brafHotspot(kb datamodel.Knowledgebase, pe datamodel.ProteinEffect, transcript string) datamodel.KnownHotspot {
	return datamodel.KnownHotspot{
		Gene:              "BRAF",
		Transcript:        transcript,
		ProteinAnnotation: "V600E",
		Chromosome:        "7",
		Position:          140453136,
		Ref:               "A",
		Alt:               "T",
		GeneRole:          datamodel.GeneRoleUnknown,
		ProteinEffect:     pe,
		Sources:           datamodel.NewSources(kb),
	}
}

func TestHotspots_MergesSameVariant(t *testing.T) {
	a := brafHotspot(ckb, datamodel.ProteinEffectGainOfFunctionPredicted, "")
	b := brafHotspot(civic, datamodel.ProteinEffectGainOfFunction, "ENST00000288602")
	b.GeneRole = datamodel.GeneRoleOnco
	other := brafHotspot(ckb, datamodel.ProteinEffectUnknown, "")
	other.Alt = "G"

	got := Hotspots([]datamodel.KnownHotspot{a, other, b})
	require.Len(t, got, 2)

	assert.Equal(t, "G", got[0].Alt)
	assert.Equal(t, datamodel.NewSources(ckb), got[0].Sources)

	merged := got[1]
	assert.Equal(t, "T", merged.Alt)
	assert.Equal(t, datamodel.NewSources(ckb, civic), merged.Sources)
	assert.Equal(t, datamodel.ProteinEffectGainOfFunction, merged.ProteinEffect)
	assert.Equal(t, datamodel.GeneRoleOnco, merged.GeneRole)
	assert.Equal(t, "ENST00000288602", merged.Transcript)
}

func TestHotspots_ConflictingAnnotations(t *testing.T) {
	a := brafHotspot(ckb, datamodel.ProteinEffectGainOfFunction, "ENST2")
	b := brafHotspot(docm, datamodel.ProteinEffectLossOfFunction, "ENST1")
	b.ProteinAnnotation = "V600E"
	got := Hotspots([]datamodel.KnownHotspot{a, b})
	require.Len(t, got, 1)
	assert.Equal(t, datamodel.ProteinEffectAmbiguous, got[0].ProteinEffect)
	assert.Equal(t, "ENST1", got[0].Transcript)
}

func TestHotspots_SingletonUnchanged(t *testing.T) {
	a := brafHotspot(civic, datamodel.ProteinEffectNoEffect, "ENST1")
	assert.Equal(t, []datamodel.KnownHotspot{a}, Hotspots([]datamodel.KnownHotspot{a}))
	assert.Nil(t, Hotspots(nil))
}

func TestHotspots_OrderIndependent(t *testing.T) {
	a := brafHotspot(ckb, datamodel.ProteinEffectGainOfFunctionPredicted, "")
	b := brafHotspot(civic, datamodel.ProteinEffectGainOfFunction, "ENST2")
	c := brafHotspot(docm, datamodel.ProteinEffectUnknown, "ENST1")
	c.GeneRole = datamodel.GeneRoleTSG
	d := brafHotspot(ckb, datamodel.ProteinEffectLossOfFunction, "")
	d.Position++

	want := Hotspots([]datamodel.KnownHotspot{a, b, c, d})
	perms := [][]datamodel.KnownHotspot{
		{a, c, b, d}, {b, a, c, d}, {b, c, a, d}, {c, a, b, d}, {c, b, a, d}, {d, c, b, a},
	}
	for _, p := range perms {
		assert.Equal(t, want, Hotspots(p))
	}
	require.Len(t, want, 2)
	assert.Equal(t, datamodel.NewSources(ckb, civic, docm), want[0].Sources)
}

func TestConsolidate_Idempotent(t *testing.T) {
	r := sampleResult(ckb)
	r.Append(sampleResult(civic))
	once := Consolidate(r)
	assert.Equal(t, once, Consolidate(once))
}

func TestRangeKinds(t *testing.T) {
	ra := datamodel.RangeAnnotation{Gene: "KRAS", Transcript: "ENST1", Chromosome: "12", Start: 25398281, End: 25398283, Rank: 12}
	codons := Codons([]datamodel.KnownCodon{
		{RangeAnnotation: ra, GeneRole: datamodel.GeneRoleOnco, ProteinEffect: datamodel.ProteinEffectUnknown, Sources: datamodel.NewSources(ckb)},
		{RangeAnnotation: ra, GeneRole: datamodel.GeneRoleUnknown, ProteinEffect: datamodel.ProteinEffectGainOfFunction, Sources: datamodel.NewSources(docm)},
	})
	require.Len(t, codons, 1)
	assert.Equal(t, datamodel.GeneRoleOnco, codons[0].GeneRole)
	assert.Equal(t, datamodel.ProteinEffectGainOfFunction, codons[0].ProteinEffect)
	assert.Equal(t, datamodel.NewSources(ckb, docm), codons[0].Sources)

	other := ra
	other.MutationType = datamodel.MutationTypeMissense
	exons := Exons([]datamodel.KnownExon{
		{RangeAnnotation: ra, Sources: datamodel.NewSources(ckb)},
		{RangeAnnotation: other, Sources: datamodel.NewSources(ckb)},
	})
	assert.Len(t, exons, 2)
}

func TestFusionCopyNumberGene(t *testing.T) {
	fusions := FusionPairs([]datamodel.KnownFusionPair{
		{GeneUp: "EML4", GeneDown: "ALK", ProteinEffect: datamodel.ProteinEffectGainOfFunction, Sources: datamodel.NewSources(ckb)},
		{GeneUp: "EML4", GeneDown: "ALK", ProteinEffect: datamodel.ProteinEffectUnknown, Sources: datamodel.NewSources(civic)},
		{GeneUp: "EML4", GeneDown: "ALK", MinExonUp: 13, MaxExonUp: 13, MinExonDown: 20, MaxExonDown: 20, Sources: datamodel.NewSources(civic)},
	})
	require.Len(t, fusions, 2)
	assert.Equal(t, datamodel.NewSources(ckb, civic), fusions[0].Sources)
	assert.Equal(t, datamodel.ProteinEffectGainOfFunction, fusions[0].ProteinEffect)

	cns := CopyNumbers([]datamodel.KnownCopyNumber{
		{Gene: "ERBB2", Type: datamodel.CopyNumberAmplification, Sources: datamodel.NewSources(ckb)},
		{Gene: "ERBB2", Type: datamodel.CopyNumberDeletion, Sources: datamodel.NewSources(ckb)},
		{Gene: "ERBB2", Type: datamodel.CopyNumberAmplification, Sources: datamodel.NewSources(civic)},
	})
	require.Len(t, cns, 2)
	assert.Equal(t, datamodel.CopyNumberAmplification, cns[0].Type)
	assert.Equal(t, datamodel.NewSources(ckb, civic), cns[0].Sources)

	genes := Genes([]datamodel.KnownGene{
		{Gene: "TP53", GeneRole: datamodel.GeneRoleTSG, Sources: datamodel.NewSources(ckb)},
		{Gene: "TP53", GeneRole: datamodel.GeneRoleOnco, Sources: datamodel.NewSources(civic)},
	})
	require.Len(t, genes, 1)
	assert.Equal(t, datamodel.GeneRoleBoth, genes[0].GeneRole)
}

func TestPreferred(t *testing.T) {
	assert.Equal(t, "a", preferred("", "a"))
	assert.Equal(t, "a", preferred("a", ""))
	assert.Equal(t, "a", preferred("b", "a"))
	assert.Equal(t, "", preferred("", ""))
}
