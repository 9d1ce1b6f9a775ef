package extraction

import (
	"github.com/inodb/vibe-serve/internal/classification"
	"github.com/inodb/vibe-serve/internal/datamodel"
	"github.com/inodb/vibe-serve/internal/liftover"
	"github.com/inodb/vibe-serve/internal/resolver"
)

// GeneRoleLookup provides default gene roles.
type GeneRoleLookup interface {
	Role(gene string) datamodel.GeneRole
}

// Source configures extraction for one knowledgebase.
type Source struct {
	Knowledgebase datamodel.Knowledgebase
	Config        classification.Config
	Preprocess    classification.Preprocessor
	Gene          GeneFunc

	// Handles lists the event types this source turns into records. Other
	// types are counted and dropped. Nil handles every type.
	Handles []classification.EventType

	Proteins  resolver.ProteinResolver
	Ranges    resolver.RangeResolver
	GeneRoles GeneRoleLookup

	// ResolvedBuild is the build Proteins and Ranges return positions in,
	// the knowledgebase's own build when unset. Target is the build records
	// are reported in. Positions are lifted with Lift when the two differ.
	ResolvedBuild datamodel.RefGenome
	Target        datamodel.RefGenome
	Lift          liftover.LiftOver
}

func (s *Source) handles(t classification.EventType) bool {
	if s.Handles == nil {
		return true
	}
	for _, h := range s.Handles {
		if h == t {
			return true
		}
	}
	return false
}

func (s *Source) needsLift() bool {
	return s.Target != s.ResolvedBuild
}

// withDefaults fills unset collaborators so extraction never dereferences a
// nil field.
func (s Source) withDefaults() Source {
	if s.Preprocess == nil {
		s.Preprocess = classification.Identity
	}
	if s.Gene == nil {
		s.Gene = RequireGene
	}
	if s.Proteins == nil {
		s.Proteins = resolver.Dummy{}
	}
	if s.Ranges == nil {
		s.Ranges = resolver.Dummy{}
	}
	if s.ResolvedBuild == "" {
		s.ResolvedBuild = s.Knowledgebase.RefGenome()
	}
	if s.Target == "" {
		s.Target = s.ResolvedBuild
	}
	if s.Lift == nil {
		s.Lift = liftover.Noop{}
	}
	if s.Config.MaxInframeLength == 0 {
		s.Config = classification.DefaultConfig()
	}
	return s
}
