package liftover

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChain = `chain 1000 chr1 1000 + 100 300 chr1 1200 + 150 350 1
50 10 20
40

chain 500 chr2 500 + 0 10 chr5 1000 - 0 10 2
10

chain 10 chr3 100 + 0 20 chr3 100 + 0 20 3
20

chain 10 chr3 100 + 10 30 chr3 100 + 50 70 4
20
`

func TestChainLiftOver(t *testing.T) {
	c, err := ParseChain(strings.NewReader(testChain))
	require.NoError(t, err)

	tests := []struct {
		name  string
		chrom string
		pos   int64
		want  Result
		ok    bool
	}{
		{"block start", "1", 101, Result{Chromosome: "1", Position: 151}, true},
		{"block end", "chr1", 150, Result{Chromosome: "1", Position: 200}, true},
		{"gap", "1", 155, Result{}, false},
		{"second block", "1", 161, Result{Chromosome: "1", Position: 221}, true},
		{"before chain", "1", 50, Result{}, false},
		{"after chain", "1", 201, Result{}, false},
		{"reverse strand", "2", 1, Result{Chromosome: "5", Position: 1000, Reverse: true}, true},
		{"unique in overlapping chains", "3", 5, Result{Chromosome: "3", Position: 5}, true},
		{"conflicting chains", "3", 15, Result{}, false},
		{"unknown chromosome", "9", 10, Result{}, false},
		{"zero position", "1", 0, Result{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.LiftOver(tt.chrom, tt.pos)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChain_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"short header", "chain 1 chr1 10 + 0 10\n10\n"},
		{"bad number", "chain 1 chr1 10 + x 10 chr1 10 + 0 10 1\n10\n"},
		{"block outside chain", "10\n"},
		{"two field block", "chain 1 chr1 10 + 0 10 chr1 10 + 0 10 1\n5 5\n"},
		{"reverse target", "chain 1 chr1 10 - 0 10 chr1 10 + 0 10 1\n10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseChain(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestNoop(t *testing.T) {
	got, ok := Noop{}.LiftOver("chr7", 140453136)
	assert.True(t, ok)
	assert.Equal(t, Result{Chromosome: "7", Position: 140453136}, got)
}
