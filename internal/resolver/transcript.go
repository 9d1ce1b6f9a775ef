package resolver

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/inodb/vibe-serve/internal/datamodel"
	"github.com/inodb/vibe-serve/internal/transcripts"
)

// SpliceBuffer is the number of intronic bases added on each side of an exon
// range so splice-site variants fall inside it.
const SpliceBuffer = 5

var reProteinChange = regexp.MustCompile(`^([ACDEFGHIKLMNPQRSTVWY])(\d+)([ACDEFGHIKLMNPQRSTVWY*=])$`)

// Transcript resolves annotations against gene models. Protein changes are
// limited to single amino acid substitutions, nonsense and synonymous
// changes; anything else is reported as ErrUnresolvable.
type Transcript struct {
	cache *transcripts.Cache
}

// NewTranscript creates a resolver backed by c.
func NewTranscript(c *transcripts.Cache) *Transcript {
	return &Transcript{cache: c}
}

// transcript picks the requested transcript, or the canonical one of gene.
func (r *Transcript) transcript(gene, id string) (*transcripts.Transcript, error) {
	if id != "" {
		if t := r.cache.Get(id); t != nil && t.IsProteinCoding() {
			return t, nil
		}
	}
	if t := r.cache.Canonical(gene); t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("no protein-coding transcript for gene %q: %w", gene, ErrUnresolvable)
}

// Resolve maps a protein change such as "G12C" to every single-base genomic
// variant that produces it.
func (r *Transcript) Resolve(gene, transcript, protein string) ([]datamodel.Variant, error) {
	m := reProteinChange.FindStringSubmatch(protein)
	if m == nil {
		return nil, fmt.Errorf("protein change %q: %w", protein, ErrUnresolvable)
	}
	pos, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("protein position %q: %w", m[2], ErrUnresolvable)
	}
	refAA, altAA := m[1][0], m[3][0]
	if altAA == '=' {
		altAA = refAA
	}

	t, err := r.transcript(gene, transcript)
	if err != nil {
		return nil, err
	}
	refCodon := t.Codon(pos)
	if len(refCodon) != 3 {
		return nil, fmt.Errorf("codon %d out of range for %s: %w", pos, t.ID, ErrUnresolvable)
	}
	if got := translate(refCodon); got != refAA {
		return nil, fmt.Errorf("reference amino acid mismatch at %d in %s: expected %c, got %c: %w",
			pos, t.ID, refAA, got, ErrUnresolvable)
	}

	cdsStart := (pos-1)*3 + 1
	var variants []datamodel.Variant
	for i := 0; i < 3; i++ {
		for _, base := range []byte("ACGT") {
			if base == refCodon[i] || translate(mutate(refCodon, i, base)) != altAA {
				continue
			}
			genomic := t.CDSToGenomic(cdsStart + int64(i))
			if genomic == 0 {
				continue
			}
			ref, alt := refCodon[i], base
			if t.IsReverseStrand() {
				ref, alt = complement(ref), complement(alt)
			}
			variants = append(variants, datamodel.Variant{
				Chromosome: t.Chrom,
				Position:   genomic,
				Ref:        string(ref),
				Alt:        string(alt),
			})
		}
	}
	return variants, nil
}

// CodonRange returns the genomic interval of a codon.
func (r *Transcript) CodonRange(gene, transcript string, codon int) (datamodel.RangeAnnotation, error) {
	t, err := r.transcript(gene, transcript)
	if err != nil {
		return datamodel.RangeAnnotation{}, err
	}
	start, end, ok := t.CodonSpan(int64(codon))
	if !ok {
		return datamodel.RangeAnnotation{}, fmt.Errorf("codon %d out of range for %s: %w", codon, t.ID, ErrUnresolvable)
	}
	return datamodel.RangeAnnotation{
		Gene:       t.Gene,
		Transcript: t.ID,
		Chromosome: t.Chrom,
		Start:      start,
		End:        end,
		Rank:       codon,
	}, nil
}

// ExonRange returns the genomic interval of an exon widened by SpliceBuffer.
func (r *Transcript) ExonRange(gene, transcript string, exon int) (datamodel.RangeAnnotation, error) {
	t, err := r.transcript(gene, transcript)
	if err != nil {
		return datamodel.RangeAnnotation{}, err
	}
	e, ok := t.Exon(exon)
	if !ok {
		return datamodel.RangeAnnotation{}, fmt.Errorf("exon %d not in %s: %w", exon, t.ID, ErrUnresolvable)
	}
	return datamodel.RangeAnnotation{
		Gene:       t.Gene,
		Transcript: t.ID,
		Chromosome: t.Chrom,
		Start:      max(1, e.Start-SpliceBuffer),
		End:        e.End + SpliceBuffer,
		Rank:       exon,
	}, nil
}
