package datamodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeKey(t *testing.T) {
	base := RangeAnnotation{Gene: "KIT", Transcript: "T1", Chromosome: "4", Start: 100, End: 200, MutationType: MutationTypeAny, Rank: 11}
	assert.Equal(t, RangeKey(base), RangeKey(base))

	variants := []RangeAnnotation{base, base, base}
	variants[0].MutationType = MutationTypeMissense
	variants[1].Rank = 9
	variants[2].Transcript = ""
	for _, v := range variants {
		assert.NotEqual(t, RangeKey(base), RangeKey(v))
	}

	r := ActionableRange{RangeAnnotation: base, RangeType: RangeTypeExon}
	c := ActionableRange{RangeAnnotation: base, RangeType: RangeTypeCodon}
	assert.NotEqual(t, r.Key(), c.Key())
}

func TestJoinKey(t *testing.T) {
	assert.NotEqual(t, JoinKey("a b", "c"), JoinKey("a", "b c"))
	assert.NotEqual(t, JoinKey("ab", ""), JoinKey("a", "b"))
	assert.Equal(t, JoinKey("a", "b"), JoinKey("a", "b"))
}
