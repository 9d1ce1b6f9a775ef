package liftover

import "sort"

// block is an ungapped alignment: target [start, end) maps onto the query
// starting at qStart. Coordinates are 0-based.
type block struct {
	start  int64
	end    int64
	qChrom string
	qStart int64
	qSize  int64
	qRev   bool
}

// index answers point queries over blocks using a start-sorted slice and a
// prefix-max array of block ends.
type index struct {
	blocks []block
	maxEnd []int64 // maxEnd[i] = max(end) for blocks[:i+1]
}

func buildIndex(blocks []block) *index {
	if len(blocks) == 0 {
		return &index{}
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].start < blocks[j].start })
	maxEnd := make([]int64, len(blocks))
	maxEnd[0] = blocks[0].end
	for i := 1; i < len(blocks); i++ {
		maxEnd[i] = max(maxEnd[i-1], blocks[i].end)
	}
	return &index{blocks: blocks, maxEnd: maxEnd}
}

// find returns the blocks containing pos.
func (x *index) find(pos int64) []block {
	hi := sort.Search(len(x.blocks), func(i int) bool { return x.blocks[i].start > pos })
	var out []block
	for i := hi - 1; i >= 0; i-- {
		if x.maxEnd[i] <= pos {
			break
		}
		if x.blocks[i].end > pos {
			out = append(out, x.blocks[i])
		}
	}
	return out
}
