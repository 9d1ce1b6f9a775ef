package extraction

import (
	"fmt"

	"github.com/inodb/vibe-serve/internal/classification"
	"github.com/inodb/vibe-serve/internal/datamodel"
)

var hotspotOnly = []classification.EventType{classification.Hotspot}

// DefaultSource returns the extraction settings of a knowledgebase. Callers
// attach resolvers, gene roles and the liftover before use.
func DefaultSource(kb datamodel.Knowledgebase) (Source, error) {
	src := Source{
		Knowledgebase: kb,
		Config:        classification.DefaultConfig(),
		Gene:          RequireGene,
	}
	switch kb {
	case datamodel.KnowledgebaseCKB:
		src.Preprocess = classification.Chain(classification.StripProteinPrefix, classification.TruncateFrameshift)
		src.Gene = OptionalGene
	case datamodel.KnowledgebaseCIViC:
		src.Preprocess = classification.Chain(classification.ThreeLetterToSingle, classification.TruncateFrameshift)
		src.Gene = OptionalGene
	case datamodel.KnowledgebaseDoCM:
		src.Preprocess = classification.ThreeLetterToSingle
		src.Handles = hotspotOnly
	case datamodel.KnowledgebaseIClusion:
		src.Preprocess = classification.StripProteinPrefix
		src.Gene = OptionalGene
	case datamodel.KnowledgebaseHartwigCurated:
		src.Preprocess = classification.StripProteinPrefix
		src.Handles = hotspotOnly
	default:
		return Source{}, fmt.Errorf("no extraction settings for knowledgebase %q", kb)
	}
	return src, nil
}
