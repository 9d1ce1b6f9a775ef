package consolidation

import (
	"slices"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

// Keyed is a record with an identity key.
type Keyed interface {
	Key() string
}

// URLConsolidator gives ConsolidateURLs access to the URL set of an event.
type URLConsolidator[T any] interface {
	URLs(event T) []string
	// StripURLs returns event with an empty URL set.
	StripURLs(event T) T
	// WithURLs returns event with its URL set replaced by urls.
	WithURLs(event T, urls []string) T
}

// ConsolidateURLs merges events that are equal once their URLs are removed.
// The merged event carries the sorted union of the group's URLs.
func ConsolidateURLs[T Keyed](events []T, c URLConsolidator[T]) []T {
	return consolidate(events,
		func(e T) string { return c.StripURLs(e).Key() },
		func(a, b T) T {
			merged := append(slices.Clone(c.URLs(a)), c.URLs(b)...)
			slices.Sort(merged)
			return c.WithURLs(a, slices.Compact(merged))
		})
}

// evidenceURLs consolidates the evidence URLs of an actionable event type.
type evidenceURLs[T any] struct {
	evidence func(*T) *datamodel.Evidence
}

func (e evidenceURLs[T]) URLs(event T) []string {
	return e.evidence(&event).EvidenceURLs
}

func (e evidenceURLs[T]) StripURLs(event T) T {
	e.evidence(&event).EvidenceURLs = nil
	return event
}

func (e evidenceURLs[T]) WithURLs(event T, urls []string) T {
	e.evidence(&event).EvidenceURLs = urls
	return event
}

// URL consolidators of the actionable event types.
var (
	HotspotURLs URLConsolidator[datamodel.ActionableHotspot] = evidenceURLs[datamodel.ActionableHotspot]{
		func(a *datamodel.ActionableHotspot) *datamodel.Evidence { return &a.Evidence },
	}
	RangeURLs URLConsolidator[datamodel.ActionableRange] = evidenceURLs[datamodel.ActionableRange]{
		func(a *datamodel.ActionableRange) *datamodel.Evidence { return &a.Evidence },
	}
	GeneURLs URLConsolidator[datamodel.ActionableGene] = evidenceURLs[datamodel.ActionableGene]{
		func(a *datamodel.ActionableGene) *datamodel.Evidence { return &a.Evidence },
	}
	FusionURLs URLConsolidator[datamodel.ActionableFusion] = evidenceURLs[datamodel.ActionableFusion]{
		func(a *datamodel.ActionableFusion) *datamodel.Evidence { return &a.Evidence },
	}
	CharacteristicURLs URLConsolidator[datamodel.ActionableCharacteristic] = evidenceURLs[datamodel.ActionableCharacteristic]{
		func(a *datamodel.ActionableCharacteristic) *datamodel.Evidence { return &a.Evidence },
	}
	HLAURLs URLConsolidator[datamodel.ActionableHLA] = evidenceURLs[datamodel.ActionableHLA]{
		func(a *datamodel.ActionableHLA) *datamodel.Evidence { return &a.Evidence },
	}
)
