package extraction

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/vibe-serve/internal/classification"
	"github.com/inodb/vibe-serve/internal/datamodel"
)

var reDigits = regexp.MustCompile(`\d+`)

// builder turns one classified entry into records.
type builder struct {
	x     *Extractor
	entry Entry
	gene  string
	event string
	out   datamodel.ExtractionResult
}

func (b *builder) sources() datamodel.Sources {
	return datamodel.NewSources(b.x.src.Knowledgebase)
}

func (b *builder) geneRole() datamodel.GeneRole {
	if r := b.entry.GeneRole; r != "" && r != datamodel.GeneRoleUnknown {
		return r
	}
	if b.x.src.GeneRoles != nil {
		return b.x.src.GeneRoles.Role(b.gene)
	}
	return datamodel.GeneRoleUnknown
}

func (b *builder) proteinEffect() datamodel.ProteinEffect {
	if b.entry.ProteinEffect == "" {
		return datamodel.ProteinEffectUnknown
	}
	return b.entry.ProteinEffect
}

// evidence returns a private copy of the entry's evidence attributed to the
// source, or nil.
func (b *builder) evidence() *datamodel.Evidence {
	if b.entry.Evidence == nil {
		return nil
	}
	ev := *b.entry.Evidence
	ev.Source = b.x.src.Knowledgebase
	if ev.SourceEvent == "" {
		ev.SourceEvent = strings.TrimSpace(b.entry.Gene + " " + b.entry.Event)
	}
	ev.SourceURLs = slices.Clone(ev.SourceURLs)
	ev.EvidenceURLs = slices.Clone(ev.EvidenceURLs)
	ev.Treatment.DrugClasses = slices.Clone(ev.Treatment.DrugClasses)
	ev.BlacklistCancerTypes = slices.Clone(ev.BlacklistCancerTypes)
	return &ev
}

func (b *builder) unresolved(reason string, err error) bool {
	fields := []zap.Field{
		zap.String("gene", b.gene),
		zap.String("event", b.entry.Event),
		zap.String("reason", reason),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	b.x.logger.Warn("could not resolve entry", fields...)
	return false
}

// build adds the records for typ and reports whether the entry resolved.
func (b *builder) build(typ classification.EventType) bool {
	cfg := &b.x.src.Config
	switch typ {
	case classification.Hotspot:
		return b.hotspots()
	case classification.Codon:
		return b.codon()
	case classification.Exon:
		return b.exons()
	case classification.FusionPairAndExon:
		span, _ := cfg.ExonSpan(b.gene, b.event)
		b.fusion(b.gene, b.gene, span.Up, span.Down)
	case classification.FusionPair:
		up, down, _ := cfg.FusionGenes(b.gene, b.event)
		b.fusion(up, down, 0, 0)
	case classification.PromiscuousFusion:
		b.knownGene()
		b.actionableGene(datamodel.GeneEventFusion)
	case classification.GeneLevel:
		ev, ok := cfg.GeneLevelEvent(b.gene, b.event)
		if !ok {
			ev = datamodel.GeneEventAnyMutation
		}
		b.knownGene()
		b.actionableGene(ev)
	case classification.Amplification:
		b.copyNumber(datamodel.CopyNumberAmplification)
		b.actionableGene(datamodel.GeneEventAmplification)
	case classification.Deletion:
		b.copyNumber(datamodel.CopyNumberDeletion)
		b.actionableGene(datamodel.GeneEventDeletion)
	case classification.OverExpression:
		b.actionableGene(datamodel.GeneEventOverExpression)
	case classification.UnderExpression:
		b.actionableGene(datamodel.GeneEventUnderExpression)
	case classification.WildType:
		b.actionableGene(datamodel.GeneEventWildType)
	case classification.Characteristic:
		b.characteristic()
	case classification.ImmunoHLA:
		b.hla()
	}
	return true
}

func (b *builder) hotspots() bool {
	protein := classification.ProteinAnnotation(b.gene, b.event)
	variants, err := b.x.src.Proteins.Resolve(b.gene, b.entry.Transcript, protein)
	if err != nil {
		return b.unresolved("protein resolution failed", err)
	}
	if len(variants) == 0 {
		return b.unresolved("protein annotation resolved to no variants", nil)
	}
	ev := b.evidence()
	added := 0
	for _, v := range variants {
		v, ok := b.liftVariant(v)
		if !ok {
			continue
		}
		added++
		b.out.KnownHotspots = append(b.out.KnownHotspots, datamodel.KnownHotspot{
			Gene:              b.gene,
			Transcript:        b.entry.Transcript,
			ProteinAnnotation: protein,
			Chromosome:        v.Chromosome,
			Position:          v.Position,
			Ref:               v.Ref,
			Alt:               v.Alt,
			GeneRole:          b.geneRole(),
			ProteinEffect:     b.proteinEffect(),
			Sources:           b.sources(),
		})
		if ev != nil {
			b.out.ActionableHotspots = append(b.out.ActionableHotspots, datamodel.ActionableHotspot{
				Chromosome: v.Chromosome,
				Position:   v.Position,
				Ref:        v.Ref,
				Alt:        v.Alt,
				Evidence:   *ev,
			})
		}
	}
	if added == 0 {
		return b.unresolved("liftover failed for every variant", nil)
	}
	return true
}

func (b *builder) codon() bool {
	digits := reDigits.FindString(classification.ProteinAnnotation(b.gene, b.event))
	rank, err := strconv.Atoi(digits)
	if err != nil {
		return b.unresolved("codon number", err)
	}
	ra, err := b.x.src.Ranges.CodonRange(b.gene, b.entry.Transcript, rank)
	if err != nil {
		return b.unresolved("codon resolution failed", err)
	}
	ra.MutationType = classification.MutationType(b.event)
	ra, ok := b.liftRange(ra)
	if !ok {
		return b.unresolved("liftover failed", nil)
	}
	b.out.KnownCodons = append(b.out.KnownCodons, datamodel.KnownCodon{
		RangeAnnotation: ra,
		GeneRole:        b.geneRole(),
		ProteinEffect:   b.proteinEffect(),
		Sources:         b.sources(),
	})
	if ev := b.evidence(); ev != nil {
		b.out.ActionableRanges = append(b.out.ActionableRanges, datamodel.ActionableRange{
			RangeAnnotation: ra,
			RangeType:       datamodel.RangeTypeCodon,
			Evidence:        *ev,
		})
	}
	return true
}

// exons resolves every exon rank of the event. Ranks describe one criterion,
// so nothing is added unless all of them resolve.
func (b *builder) exons() bool {
	ranks := classification.ExonRanks(b.event)
	if len(ranks) == 0 {
		return b.unresolved("no exon number", nil)
	}
	mt := classification.MutationType(b.event)
	ev := b.evidence()
	known := make([]datamodel.KnownExon, 0, len(ranks))
	var actionable []datamodel.ActionableRange
	for _, rank := range ranks {
		ra, err := b.x.src.Ranges.ExonRange(b.gene, b.entry.Transcript, rank)
		if err != nil {
			return b.unresolved(fmt.Sprintf("exon %d resolution failed", rank), err)
		}
		ra.MutationType = mt
		ra, ok := b.liftRange(ra)
		if !ok {
			return b.unresolved(fmt.Sprintf("exon %d liftover failed", rank), nil)
		}
		known = append(known, datamodel.KnownExon{
			RangeAnnotation: ra,
			GeneRole:        b.geneRole(),
			ProteinEffect:   b.proteinEffect(),
			Sources:         b.sources(),
		})
		if ev != nil {
			actionable = append(actionable, datamodel.ActionableRange{
				RangeAnnotation: ra,
				RangeType:       datamodel.RangeTypeExon,
				Evidence:        *ev,
			})
		}
	}
	b.out.KnownExons = append(b.out.KnownExons, known...)
	b.out.ActionableRanges = append(b.out.ActionableRanges, actionable...)
	return true
}

func (b *builder) fusion(up, down string, exonUp, exonDown int) {
	b.out.KnownFusionPairs = append(b.out.KnownFusionPairs, datamodel.KnownFusionPair{
		GeneUp:        up,
		MinExonUp:     exonUp,
		MaxExonUp:     exonUp,
		GeneDown:      down,
		MinExonDown:   exonDown,
		MaxExonDown:   exonDown,
		ProteinEffect: b.proteinEffect(),
		Sources:       b.sources(),
	})
	if ev := b.evidence(); ev != nil {
		b.out.ActionableFusions = append(b.out.ActionableFusions, datamodel.ActionableFusion{
			GeneUp:      up,
			MinExonUp:   exonUp,
			MaxExonUp:   exonUp,
			GeneDown:    down,
			MinExonDown: exonDown,
			MaxExonDown: exonDown,
			Evidence:    *ev,
		})
	}
}

func (b *builder) knownGene() {
	b.out.KnownGenes = append(b.out.KnownGenes, datamodel.KnownGene{
		Gene:     b.gene,
		GeneRole: b.geneRole(),
		Sources:  b.sources(),
	})
}

func (b *builder) copyNumber(t datamodel.CopyNumberType) {
	b.out.KnownCopyNumbers = append(b.out.KnownCopyNumbers, datamodel.KnownCopyNumber{
		Gene:          b.gene,
		Type:          t,
		GeneRole:      b.geneRole(),
		ProteinEffect: b.proteinEffect(),
		Sources:       b.sources(),
	})
}

func (b *builder) actionableGene(event datamodel.GeneEvent) {
	if ev := b.evidence(); ev != nil {
		b.out.ActionableGenes = append(b.out.ActionableGenes, datamodel.ActionableGene{
			Gene:     b.gene,
			Event:    event,
			Evidence: *ev,
		})
	}
}

func (b *builder) characteristic() {
	ev := b.evidence()
	if ev == nil {
		return
	}
	typ, cmp, cutoff, _ := b.x.src.Config.Characteristic(b.gene, b.event)
	b.out.ActionableCharacteristics = append(b.out.ActionableCharacteristics, datamodel.ActionableCharacteristic{
		Type:       typ,
		Comparator: cmp,
		Cutoff:     cutoff,
		Evidence:   *ev,
	})
}

func (b *builder) hla() {
	ev := b.evidence()
	if ev == nil {
		return
	}
	allele := strings.ToUpper(strings.TrimSpace(b.event))
	if strings.HasPrefix(allele, "*") {
		allele = strings.ToUpper(b.gene) + allele
	}
	b.out.ActionableHLA = append(b.out.ActionableHLA, datamodel.ActionableHLA{HLAType: allele, Evidence: *ev})
}
