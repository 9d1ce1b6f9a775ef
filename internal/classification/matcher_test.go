package classification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

func TestCodonMatcher(t *testing.T) {
	cfg := DefaultConfig()
	m := CodonMatcher(&cfg)
	tests := []struct {
		event string
		want  bool
	}{
		{"R201", true},
		{"G12", true},
		{"p.G12", true},
		{"G12X", true},
		{"G12C", false},
		{"G12_G13", false},
		{"G12/G13", false},
		{"EXON 12", false},
		{"E12del", false},
		{"R201fs", false},
		{"0", false},
		{"99999999999999999999", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.event, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Matches("GNAS", tt.event))
		})
	}
}

func TestHotspotMatcher(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxInframeLength = 3
	m := HotspotMatcher(&cfg)
	assert.True(t, m.Matches("BRAF", "V600E"))
	assert.True(t, m.Matches("BRAF", "V600="))
	assert.True(t, m.Matches("EGFR", "E746_A748del"))
	assert.False(t, m.Matches("EGFR", "E746_A750del"))
	assert.False(t, m.Matches("EGFR", "A750_E746del"))
	assert.True(t, m.Matches("ERBB2", "Y772dup"))
	assert.False(t, m.Matches("ERBB2", "A775_G776insYVMA"))
	assert.False(t, m.Matches("BRAF", "V600"))
}

func TestFusionGenes(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		gene, event string
		up, down    string
		ok          bool
	}{
		{"ALK", "EML4-ALK", "EML4", "ALK", true},
		{"ABL1", "BCR::ABL1", "BCR", "ABL1", true},
		{"ALK", "EML4 - ALK FUSION", "EML4", "ALK", true},
		{"NKX2-1", "NKX2-1", "", "", false},
		{"TP53", "LOSS-OF-FUNCTION", "", "", false},
		{"EGFR", "E746-A750", "", "", false},
		{"EGFR", "1-2", "", "", false},
		{"HLA-A", "HLA-A", "", "", false},
		{"A", "A-B-C", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.event, func(t *testing.T) {
			up, down, ok := cfg.FusionGenes(tt.gene, tt.event)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.up, up)
			assert.Equal(t, tt.down, down)
		})
	}
}

func TestCharacteristic(t *testing.T) {
	cfg := DefaultConfig()
	typ, cmp, cutoff, ok := cfg.Characteristic("", "TMB >= 10")
	assert.True(t, ok)
	assert.Equal(t, datamodel.CharacteristicHighTumorMutationLoad, typ)
	assert.Equal(t, datamodel.ComparatorEqualOrGreater, cmp)
	assert.InDelta(t, 10.0, cutoff, 1e-9)

	typ, cmp, _, ok = cfg.Characteristic("", "msi high")
	assert.True(t, ok)
	assert.Equal(t, datamodel.CharacteristicMicrosatelliteUnstable, typ)
	assert.Equal(t, datamodel.ComparatorNone, cmp)

	_, _, _, ok = cfg.Characteristic("", "TMB >= ten")
	assert.False(t, ok)
	_, _, _, ok = cfg.Characteristic("", "FOO > 3")
	assert.False(t, ok)
}

func TestGeneLevelEvent(t *testing.T) {
	cfg := DefaultConfig()
	ev, ok := cfg.GeneLevelEvent("BRAF", "ACTIVATING MUTATION")
	assert.True(t, ok)
	assert.Equal(t, datamodel.GeneEventActivation, ev)
	ev, ok = cfg.GeneLevelEvent("TP53", "TP53 truncating mutation")
	assert.True(t, ok)
	assert.Equal(t, datamodel.GeneEventInactivation, ev)
	_, ok = cfg.GeneLevelEvent("TP53", "V600E")
	assert.False(t, ok)
}

func TestExonRanks(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"EXON 19 DELETION", []int{19}},
		{"exon 2-4 mutation", []int{2, 3, 4}},
		{"EXON 9 OR EXON 20", []int{9, 20}},
		{"EX14 SKIPPING", []int{14}},
		{"EXON 4-2", nil},
		{"EXON", nil},
		{"V600E", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExonRanks(tt.in))
		})
	}
}

func TestMatchersNeverPanic(t *testing.T) {
	cfg := DefaultConfig()
	c := New(cfg)
	inputs := []string{"", " ", "-", "::", "*", "p.", "EXON -", "99999999999999999999999", "TMB >=", "A1_B", "fs*"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { c.Matches("X", in) }, in)
		assert.NotPanics(t, func() { c.Matches("", in) }, in)
	}
}

func TestMutationType(t *testing.T) {
	tests := []struct {
		in   string
		want datamodel.MutationType
	}{
		{"EXON 19 DELETION", datamodel.MutationTypeInframeDeletion},
		{"EXON 20 INSERTION", datamodel.MutationTypeInframeInsertion},
		{"EXON 20 DUPLICATION", datamodel.MutationTypeInframeInsertion},
		{"EXON 19 DELINS", datamodel.MutationTypeInframe},
		{"EXON 14 SPLICE SITE", datamodel.MutationTypeSplice},
		{"EXON 2 TRUNCATING MUTATION", datamodel.MutationTypeNonsenseOrFrameshift},
		{"EXON 11 MISSENSE MUTATION", datamodel.MutationTypeMissense},
		{"EXON 11 MUTATION", datamodel.MutationTypeAny},
		{"G12X", datamodel.MutationTypeAny},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, MutationType(tt.in))
		})
	}
}
