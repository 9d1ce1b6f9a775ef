package liftover

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

// Chain lifts positions using a UCSC chain file.
type Chain struct {
	byChrom map[string]*index
}

// LoadChain reads a chain file, which may be gzip compressed.
func LoadChain(path string) (*Chain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chain file: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var r io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	return ParseChain(r)
}

// ParseChain reads chain records:
//
//	chain score tName tSize tStrand tStart tEnd qName qSize qStrand qStart qEnd id
//	size dt dq
//	...
//	size
func ParseChain(r io.Reader) (*Chain, error) {
	scanner := bufio.NewScanner(r)
	blocks := make(map[string][]block)

	var (
		inChain bool
		tChrom  string
		qChrom  string
		qSize   int64
		qRev    bool
		t, q    int64
		lineNum int
	)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			inChain = false
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == "chain" {
			if len(fields) < 12 {
				return nil, fmt.Errorf("chain line %d: expected 12 fields, got %d", lineNum, len(fields))
			}
			nums, err := parseInts(fields[5], fields[8], fields[10])
			if err != nil {
				return nil, fmt.Errorf("chain line %d: %w", lineNum, err)
			}
			if fields[4] != "+" {
				return nil, fmt.Errorf("chain line %d: unsupported target strand %q", lineNum, fields[4])
			}
			tChrom = datamodel.NormalizeChromosome(fields[2])
			qChrom = datamodel.NormalizeChromosome(fields[7])
			t, qSize, q = nums[0], nums[1], nums[2]
			qRev = fields[9] == "-"
			inChain = true
			continue
		}
		if !inChain {
			return nil, fmt.Errorf("chain line %d: alignment data outside a chain", lineNum)
		}
		nums, err := parseInts(fields...)
		if err != nil || (len(nums) != 1 && len(nums) != 3) {
			return nil, fmt.Errorf("chain line %d: malformed alignment block %q", lineNum, line)
		}
		size := nums[0]
		blocks[tChrom] = append(blocks[tChrom], block{
			start:  t,
			end:    t + size,
			qChrom: qChrom,
			qStart: q,
			qSize:  qSize,
			qRev:   qRev,
		})
		if len(nums) == 1 {
			inChain = false
			continue
		}
		t += size + nums[1]
		q += size + nums[2]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan chain file: %w", err)
	}

	c := &Chain{byChrom: make(map[string]*index, len(blocks))}
	for chrom, bs := range blocks {
		c.byChrom[chrom] = buildIndex(bs)
	}
	return c, nil
}

func parseInts(fields ...string) ([]int64, error) {
	out := make([]int64, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// LiftOver maps a 1-based position. Positions covered by no block, or by
// blocks that disagree, have no equivalent.
func (c *Chain) LiftOver(chromosome string, position int64) (Result, bool) {
	idx, ok := c.byChrom[datamodel.NormalizeChromosome(chromosome)]
	if !ok || position < 1 {
		return Result{}, false
	}
	hits := idx.find(position - 1)
	if len(hits) != 1 {
		return Result{}, false
	}
	b := hits[0]
	q := b.qStart + (position - 1 - b.start)
	if b.qRev {
		q = b.qSize - 1 - q
	}
	return Result{Chromosome: b.qChrom, Position: q + 1, Reverse: b.qRev}, true
}
