package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-serve/internal/datamodel"
	"github.com/inodb/vibe-serve/internal/transcripts"
)

// codons: ATG GGT TGG TAA
const testCDS = "ATGGGTTGGTAA"

func testCache(strand int8) *transcripts.Cache {
	c := transcripts.New()
	t := &transcripts.Transcript{
		ID:          "ENST1",
		Gene:        "TEST",
		Chrom:       "7",
		Start:       1001,
		End:         1012,
		Strand:      strand,
		Canonical:   true,
		Exons:       []transcripts.Exon{{Start: 1001, End: 1012}},
		CDSStart:    1001,
		CDSEnd:      1012,
		CDSSequence: testCDS,
	}
	t.SortExons()
	c.Add(t)
	return c
}

func TestTranscriptResolve(t *testing.T) {
	r := NewTranscript(testCache(1))

	tests := []struct {
		protein string
		want    []datamodel.Variant
	}{
		{"G2C", []datamodel.Variant{{Chromosome: "7", Position: 1004, Ref: "G", Alt: "T"}}},
		{"G2V", []datamodel.Variant{{Chromosome: "7", Position: 1005, Ref: "G", Alt: "T"}}},
		{"W3*", []datamodel.Variant{
			{Chromosome: "7", Position: 1008, Ref: "G", Alt: "A"},
			{Chromosome: "7", Position: 1009, Ref: "G", Alt: "A"},
		}},
		{"G2=", []datamodel.Variant{
			{Chromosome: "7", Position: 1006, Ref: "T", Alt: "A"},
			{Chromosome: "7", Position: 1006, Ref: "T", Alt: "C"},
			{Chromosome: "7", Position: 1006, Ref: "T", Alt: "G"},
		}},
		{"M1K", []datamodel.Variant{{Chromosome: "7", Position: 1002, Ref: "T", Alt: "A"}}},
	}
	for _, tt := range tests {
		t.Run(tt.protein, func(t *testing.T) {
			got, err := r.Resolve("TEST", "", tt.protein)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranscriptResolve_ReverseStrand(t *testing.T) {
	r := NewTranscript(testCache(-1))
	got, err := r.Resolve("TEST", "ENST1", "G2C")
	require.NoError(t, err)
	assert.Equal(t, []datamodel.Variant{{Chromosome: "7", Position: 1009, Ref: "C", Alt: "A"}}, got)
}

func TestTranscriptResolve_Errors(t *testing.T) {
	r := NewTranscript(testCache(1))
	tests := []struct {
		gene, protein string
	}{
		{"TEST", "A2C"},
		{"TEST", "G5C"},
		{"TEST", "G2_W3del"},
		{"OTHER", "G2C"},
	}
	for _, tt := range tests {
		t.Run(tt.gene+" "+tt.protein, func(t *testing.T) {
			_, err := r.Resolve(tt.gene, "", tt.protein)
			assert.True(t, errors.Is(err, ErrUnresolvable), "got %v", err)
		})
	}
}

func TestTranscriptRanges(t *testing.T) {
	r := NewTranscript(testCache(1))

	codon, err := r.CodonRange("TEST", "", 2)
	require.NoError(t, err)
	assert.Equal(t, datamodel.RangeAnnotation{
		Gene: "TEST", Transcript: "ENST1", Chromosome: "7", Start: 1004, End: 1006, Rank: 2,
	}, codon)

	exon, err := r.ExonRange("TEST", "ENST1", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1001-SpliceBuffer), exon.Start)
	assert.Equal(t, int64(1012+SpliceBuffer), exon.End)

	_, err = r.CodonRange("TEST", "", 9)
	assert.ErrorIs(t, err, ErrUnresolvable)
	_, err = r.ExonRange("TEST", "", 2)
	assert.ErrorIs(t, err, ErrUnresolvable)
}

type countingResolver struct {
	calls int
}

func (c *countingResolver) Resolve(gene, transcript, protein string) ([]datamodel.Variant, error) {
	c.calls++
	if protein == "bad" {
		return nil, ErrUnresolvable
	}
	return []datamodel.Variant{{Chromosome: "1", Position: int64(len(protein)), Ref: "A", Alt: "C"}}, nil
}

func TestCached(t *testing.T) {
	next := &countingResolver{}
	c, err := NewCached(next, 2)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		v, err := c.Resolve("BRAF", "", "V600E")
		require.NoError(t, err)
		require.Len(t, v, 1)
		_, err = c.Resolve("BRAF", "", "bad")
		assert.ErrorIs(t, err, ErrUnresolvable)
	}
	assert.Equal(t, 2, next.calls)
	assert.Equal(t, 2, c.Len())

	_, err = NewCached(next, 0)
	assert.Error(t, err)
}

func TestDummyAndFixed(t *testing.T) {
	v, err := Dummy{}.Resolve("BRAF", "", "V600E")
	assert.NoError(t, err)
	assert.Empty(t, v)
	_, err = Dummy{}.CodonRange("BRAF", "", 600)
	assert.ErrorIs(t, err, ErrUnresolvable)

	want := []datamodel.Variant{{Chromosome: "7", Position: 140453136, Ref: "A", Alt: "T"}}
	f := Fixed{FixedKey("braf", "V600E"): want}
	got, err := f.Resolve("BRAF", "ENST00000288602", "V600E")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
