// Package transcripts holds the gene models used to turn protein, codon and
// exon annotations into genomic coordinates.
package transcripts

import "sort"

// Transcript is a gene isoform. Exons are kept in ascending genomic order
// regardless of strand; Rank carries the transcript-order exon number.
type Transcript struct {
	ID          string
	Gene        string
	Chrom       string
	Start       int64 // 1-based, inclusive
	End         int64 // 1-based, inclusive
	Strand      int8  // +1 or -1
	Canonical   bool
	Exons       []Exon
	CDSStart    int64 // genomic, 0 if non-coding
	CDSEnd      int64 // genomic, 0 if non-coding
	CDSSequence string
}

// Exon is a single exon of a transcript.
type Exon struct {
	Rank  int
	Start int64
	End   int64
}

// IsProteinCoding returns true if the transcript has a coding sequence.
func (t *Transcript) IsProteinCoding() bool {
	return t.CDSStart > 0 && t.CDSEnd > 0
}

// IsReverseStrand returns true if the transcript is on the reverse strand.
func (t *Transcript) IsReverseStrand() bool {
	return t.Strand == -1
}

// Contains returns true if pos is within the transcript boundaries.
func (t *Transcript) Contains(pos int64) bool {
	return pos >= t.Start && pos <= t.End
}

// SortExons orders exons by genomic start and fills in missing ranks in
// transcript order.
func (t *Transcript) SortExons() {
	sort.Slice(t.Exons, func(i, j int) bool { return t.Exons[i].Start < t.Exons[j].Start })
	n := len(t.Exons)
	for i := range t.Exons {
		if t.Exons[i].Rank > 0 {
			continue
		}
		if t.IsReverseStrand() {
			t.Exons[i].Rank = n - i
		} else {
			t.Exons[i].Rank = i + 1
		}
	}
}

// Exon returns the exon with the given rank.
func (t *Transcript) Exon(rank int) (Exon, bool) {
	for _, e := range t.Exons {
		if e.Rank == rank {
			return e, true
		}
	}
	return Exon{}, false
}

// codingSegments returns the coding part of each exon in transcript order.
func (t *Transcript) codingSegments() [][2]int64 {
	if !t.IsProteinCoding() {
		return nil
	}
	var segs [][2]int64
	for _, e := range t.Exons {
		start, end := max(e.Start, t.CDSStart), min(e.End, t.CDSEnd)
		if start > end {
			continue
		}
		segs = append(segs, [2]int64{start, end})
	}
	if t.IsReverseStrand() {
		for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
			segs[i], segs[j] = segs[j], segs[i]
		}
	}
	return segs
}

// CDSLength returns the number of coding bases.
func (t *Transcript) CDSLength() int64 {
	var n int64
	for _, s := range t.codingSegments() {
		n += s[1] - s[0] + 1
	}
	return n
}

// CDSToGenomic converts a 1-based CDS position to a genomic position.
// Returns 0 if the position is outside the coding sequence.
func (t *Transcript) CDSToGenomic(cdsPos int64) int64 {
	if cdsPos < 1 {
		return 0
	}
	var cumulative int64
	for _, s := range t.codingSegments() {
		segLen := s[1] - s[0] + 1
		if cumulative+segLen >= cdsPos {
			offset := cdsPos - cumulative - 1
			if t.IsReverseStrand() {
				return s[1] - offset
			}
			return s[0] + offset
		}
		cumulative += segLen
	}
	return 0
}

// Codon returns the reference codon for a 1-based codon number, or "" when
// the sequence is not loaded or too short.
func (t *Transcript) Codon(number int64) string {
	start := (number - 1) * 3
	if number < 1 || start+3 > int64(len(t.CDSSequence)) {
		return ""
	}
	return t.CDSSequence[start : start+3]
}

// CodonSpan returns the genomic interval covering a codon. A codon split by
// an intron spans the intron as well.
func (t *Transcript) CodonSpan(number int64) (start, end int64, ok bool) {
	if number < 1 {
		return 0, 0, false
	}
	first := t.CDSToGenomic((number-1)*3 + 1)
	last := t.CDSToGenomic(number * 3)
	if first == 0 || last == 0 {
		return 0, 0, false
	}
	return min(first, last), max(first, last), true
}
