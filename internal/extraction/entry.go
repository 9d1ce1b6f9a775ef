// Package extraction classifies curated knowledgebase entries and turns them
// into known and actionable event records.
package extraction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/inodb/vibe-serve/internal/curation"
	"github.com/inodb/vibe-serve/internal/datamodel"
)

// Entry is one knowledgebase record after parsing.
type Entry struct {
	Line       int // source line, 0 if unknown
	Gene       string
	Transcript string
	Event      string

	// Components lists the parts of a composite entry ("BRAF V600E + MEK1
	// K57N"). Entries with more than one component are COMBINED.
	Components []Component

	GeneRole      datamodel.GeneRole
	ProteinEffect datamodel.ProteinEffect

	// Evidence is nil for entries that only report a known event.
	Evidence *datamodel.Evidence
}

// Component is one part of a composite entry.
type Component struct {
	Gene  string
	Event string
}

// CurationKey returns the key curation rules match on.
func CurationKey(e Entry) curation.Key {
	return curation.Key{Gene: e.Gene, Transcript: e.Transcript, Event: e.Event}
}

// Rewrite applies a curation replacement to e. Components are split again
// from the rewritten gene and event.
func Rewrite(e Entry, r curation.Replacement) Entry {
	if r.Gene == "" && r.Event == "" {
		return e
	}
	if r.Gene != "" {
		e.Gene = r.Gene
	}
	if r.Event != "" {
		e.Event = r.Event
	}
	e.Components = SplitComponents(e.Gene, e.Event)
	return e
}

// ErrMalformedEntry is wrapped by every MalformedEntryError.
var ErrMalformedEntry = errors.New("malformed entry")

// MalformedEntryError reports an entry that violates the input contract, such
// as a missing gene where one is required. It aborts extraction of a source.
type MalformedEntryError struct {
	Source datamodel.Knowledgebase
	Index  int
	Line   int
	Field  string
	Reason string
}

func (e *MalformedEntryError) Error() string {
	loc := fmt.Sprintf("entry %d", e.Index)
	if e.Line > 0 {
		loc = fmt.Sprintf("line %d", e.Line)
	}
	return fmt.Sprintf("%s %s: %s: %s", e.Source, loc, e.Field, e.Reason)
}

func (e *MalformedEntryError) Unwrap() error {
	return ErrMalformedEntry
}

// GeneFunc returns the gene of an entry, or an error when the entry is
// malformed.
type GeneFunc func(Entry) (string, error)

// RequireGene rejects entries without a gene.
func RequireGene(e Entry) (string, error) {
	g := strings.TrimSpace(e.Gene)
	if g == "" || g == "-" {
		return "", errors.New("gene is required")
	}
	return g, nil
}

// OptionalGene accepts entries without a gene, which knowledgebases use for
// tumor characteristics. "-" is read as absent.
func OptionalGene(e Entry) (string, error) {
	g := strings.TrimSpace(e.Gene)
	if g == "-" {
		return "", nil
	}
	return g, nil
}
