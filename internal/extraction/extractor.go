package extraction

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/vibe-serve/internal/classification"
	"github.com/inodb/vibe-serve/internal/datamodel"
)

// Stats summarizes one extraction run.
type Stats struct {
	Entries    int
	Types      map[classification.EventType]int
	Unhandled  int // classified, but the source does not extract the type
	Unresolved int // no genomic position could be derived
}

// Unknown returns the number of entries classified as UNKNOWN.
func (s Stats) Unknown() int {
	return s.Types[classification.Unknown]
}

// Extractor runs the shared extraction pipeline for one knowledgebase.
type Extractor struct {
	src        Source
	classifier *classification.Classifier
	workers    int
	logger     *zap.Logger
}

// New creates an extractor for src. Unset collaborators get offline
// defaults: no resolution, no liftover.
func New(src Source) *Extractor {
	src = src.withDefaults()
	return &Extractor{
		src:        src,
		classifier: classification.New(src.Config),
		logger:     zap.NewNop(),
	}
}

// SetLogger sets the logger for the extractor and its classifier.
func (x *Extractor) SetLogger(l *zap.Logger) {
	x.logger = l.With(zap.String("source", string(x.src.Knowledgebase)))
	x.classifier.SetLogger(x.logger)
}

// SetWorkers sets the number of parallel workers. 0 uses one per CPU.
func (x *Extractor) SetWorkers(n int) {
	x.workers = n
}

// Classifier returns the classifier used for this source.
func (x *Extractor) Classifier() *classification.Classifier {
	return x.classifier
}

// Extract classifies and resolves entries. Entries that cannot be classified
// or resolved are skipped with a log message. A malformed entry aborts the
// run with a *MalformedEntryError.
func (x *Extractor) Extract(entries []Entry) (datamodel.ExtractionResult, Stats, error) {
	stats := Stats{Entries: len(entries), Types: make(map[classification.EventType]int)}
	result := datamodel.ExtractionResult{RefGenome: x.src.Target}

	items := make([]workItem, len(entries))
	for i, e := range entries {
		gene, err := x.validate(e)
		if err != nil {
			var mErr *MalformedEntryError
			if errors.As(err, &mErr) {
				mErr.Index = i
			}
			return datamodel.ExtractionResult{}, stats, err
		}
		items[i] = workItem{seq: i, entry: e, gene: gene}
	}

	ch := make(chan workItem, len(items))
	for _, it := range items {
		ch <- it
	}
	close(ch)

	p := newProgress(len(entries), string(x.src.Knowledgebase), x.logger)
	orderedCollect(x.parallelExtract(ch, x.workers, p), func(r workResult) {
		stats.Types[r.typ]++
		if !r.handled {
			stats.Unhandled++
		}
		if r.unresolved {
			stats.Unresolved++
		}
		result.Append(r.records)
	})

	x.logger.Info("extraction complete",
		zap.Int("entries", stats.Entries),
		zap.Int("unknown", stats.Unknown()),
		zap.Int("unhandled", stats.Unhandled),
		zap.Int("unresolved", stats.Unresolved),
		zap.Int("known", result.KnownCount()),
		zap.Int("actionable", result.ActionableCount()))
	return result, stats, nil
}

func (x *Extractor) validate(e Entry) (string, error) {
	malformed := func(field, reason string) error {
		return &MalformedEntryError{Source: x.src.Knowledgebase, Line: e.Line, Field: field, Reason: reason}
	}
	gene, err := x.src.Gene(e)
	if err != nil {
		return "", malformed("gene", err.Error())
	}
	if strings.TrimSpace(e.Event) == "" && len(e.Components) == 0 {
		return "", malformed("event", "event is required")
	}
	for _, c := range e.Components {
		if strings.TrimSpace(c.Event) == "" {
			return "", malformed("event", "composite entry has an empty component")
		}
	}
	return gene, nil
}

// extractEntry classifies one entry and resolves it into records.
func (x *Extractor) extractEntry(item workItem) workResult {
	e := item.entry
	r := workResult{seq: item.seq, handled: true}
	if len(e.Components) > 1 {
		r.typ = classification.Combined
		r.handled = x.src.handles(classification.Combined)
		return r
	}

	event := x.src.Preprocess(e.Event)
	r.typ = x.classifier.Classify(item.gene, event)
	if !x.src.handles(r.typ) {
		r.handled = false
		x.logger.Debug("event type not extracted",
			zap.String("gene", item.gene),
			zap.String("event", e.Event),
			zap.String("type", string(r.typ)))
		return r
	}

	b := builder{x: x, entry: e, gene: item.gene, event: event}
	r.unresolved = !b.build(r.typ)
	r.records = b.out
	return r
}
