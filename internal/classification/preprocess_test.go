package classification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocessors(t *testing.T) {
	tests := []struct {
		name string
		p    Preprocessor
		in   string
		want string
	}{
		{"strip prefix", StripProteinPrefix, "p.V600E", "V600E"},
		{"strip repeated prefix", StripProteinPrefix, "p.p.V600E", "V600E"},
		{"strip nothing", StripProteinPrefix, " V600E ", "V600E"},
		{"three letter missense", ThreeLetterToSingle, "p.Val600Glu", "V600E"},
		{"three letter stop", ThreeLetterToSingle, "p.Arg213Ter", "R213*"},
		{"three letter deletion", ThreeLetterToSingle, "p.Glu746_Ala750del", "E746_A750del"},
		{"three letter frameshift", ThreeLetterToSingle, "p.Pro34ArgfsTer25", "P34Rfs*25"},
		{"single letter untouched", ThreeLetterToSingle, "G12C", "G12C"},
		{"three letter codon", ThreeLetterToSingle, "p.Gly12", "G12"},
		{"three letter extension", ThreeLetterToSingle, "p.Ter130Lysext*?", "*130Kext*?"},
		{"three letter delins", ThreeLetterToSingle, "p.Leu747_Thr751delinsPro", "L747_T751delinsP"},
		{"free text untouched", ThreeLetterToSingle, "Promoter Methylation", "Promoter Methylation"},
		{"gene prefixed word", ThreeLetterToSingle, "BRAF Val600Glu", "BRAF V600E"},
		{"no position untouched", ThreeLetterToSingle, "p.Leueu", "Leueu"},
		{"frameshift truncated", TruncateFrameshift, "P34Rfs*25X123", "P34Rfs*25"},
		{"frameshift short", TruncateFrameshift, "P34Rfs*2", "P34Rfs*2"},
		{"no frameshift", TruncateFrameshift, "P34R", "P34R"},
		{"chain", Chain(ThreeLetterToSingle, TruncateFrameshift), "p.Pro34ArgfsTer254", "P34Rfs*25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p(tt.in))
		})
	}
}

func TestPreprocessorsIdempotent(t *testing.T) {
	inputs := []string{
		"p.Val600Glu", "p.p.G12C", "P34Rfs*25X123", "p.Glu746_Ala750delinsGln",
		"p.Ter130Lysext*?", "EXON 19 DELETION", "", "  ", "p.Arg213Ter", "L747fs*1234",
		"p.Leueu", "p.Serer", "p.Valal600Glu", "Promoter Methylation", "Serine Threonine Kinase",
		"p.Glu746_Ala750del", "BRAF Val600Glu + MEK1 Lys57Asn",
	}
	preprocessors := map[string]Preprocessor{
		"identity":   Identity,
		"strip":      StripProteinPrefix,
		"three":      ThreeLetterToSingle,
		"frameshift": TruncateFrameshift,
		"chain":      Chain(ThreeLetterToSingle, TruncateFrameshift),
	}
	for name, p := range preprocessors {
		for _, in := range inputs {
			once := p(in)
			assert.Equal(t, once, p(once), "%s not idempotent for %q", name, in)
		}
	}
}
