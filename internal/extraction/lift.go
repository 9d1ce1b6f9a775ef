package extraction

import (
	"go.uber.org/zap"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

// liftVariant converts v to the target build when the source reports another
// build.
func (b *builder) liftVariant(v datamodel.Variant) (datamodel.Variant, bool) {
	if !b.x.src.needsLift() {
		return v, true
	}
	res, ok := b.x.src.Lift.LiftOver(v.Chromosome, v.Position)
	if !ok {
		b.x.logger.Warn("liftover failed",
			zap.String("gene", b.gene),
			zap.String("variant", v.String()))
		return datamodel.Variant{}, false
	}
	lifted := datamodel.Variant{Chromosome: res.Chromosome, Position: res.Position, Ref: v.Ref, Alt: v.Alt}
	if res.Reverse {
		lifted.Ref = reverseComplement(v.Ref)
		lifted.Alt = reverseComplement(v.Alt)
		// The lifted position is that of the last base on the target strand.
		lifted.Position -= int64(len(v.Ref)) - 1
	}
	return lifted, true
}

// liftRange converts both ends of ra. Ranges whose ends land on different
// chromosomes are dropped.
func (b *builder) liftRange(ra datamodel.RangeAnnotation) (datamodel.RangeAnnotation, bool) {
	if !b.x.src.needsLift() {
		return ra, true
	}
	start, ok1 := b.x.src.Lift.LiftOver(ra.Chromosome, ra.Start)
	end, ok2 := b.x.src.Lift.LiftOver(ra.Chromosome, ra.End)
	if !ok1 || !ok2 || start.Chromosome != end.Chromosome {
		b.x.logger.Warn("range liftover failed",
			zap.String("gene", ra.Gene),
			zap.String("chromosome", ra.Chromosome),
			zap.Int64("start", ra.Start),
			zap.Int64("end", ra.End))
		return datamodel.RangeAnnotation{}, false
	}
	ra.Chromosome = start.Chromosome
	ra.Start, ra.End = min(start.Position, end.Position), max(start.Position, end.Position)
	return ra, true
}

func reverseComplement(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		var c byte
		switch seq[len(seq)-1-i] {
		case 'A':
			c = 'T'
		case 'T':
			c = 'A'
		case 'C':
			c = 'G'
		case 'G':
			c = 'C'
		default:
			c = 'N'
		}
		out[i] = c
	}
	return string(out)
}
