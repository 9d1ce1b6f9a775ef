// Package curation filters and remaps knowledgebase entries before they are
// classified, and audits which curation rules were actually used.
package curation

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Key identifies an entry for curation. Transcript may be empty, in which
// case the rule applies to every transcript of the gene.
type Key struct {
	Gene       string `yaml:"gene"`
	Transcript string `yaml:"transcript,omitempty"`
	Event      string `yaml:"event"`
}

func (k Key) String() string {
	if k.Transcript == "" {
		return k.Gene + " " + k.Event
	}
	return k.Gene + " (" + k.Transcript + ") " + k.Event
}

func (k Key) withoutTranscript() Key {
	return Key{Gene: k.Gene, Event: k.Event}
}

func (k Key) less(o Key) bool {
	if k.Gene != o.Gene {
		return k.Gene < o.Gene
	}
	if k.Event != o.Event {
		return k.Event < o.Event
	}
	return k.Transcript < o.Transcript
}

// Replacement rewrites the gene and/or event of a remapped entry. Empty
// fields are left as they are.
type Replacement struct {
	Gene  string `yaml:"gene,omitempty"`
	Event string `yaml:"event,omitempty"`
}

// Audit records every key evaluated by one or more Curate calls. It is owned
// by the caller and safe for concurrent use.
type Audit struct {
	mu        sync.Mutex
	evaluated map[Key]struct{}
}

// NewAudit returns an empty audit.
func NewAudit() *Audit {
	return &Audit{evaluated: make(map[Key]struct{})}
}

func (a *Audit) record(k Key) {
	a.mu.Lock()
	a.evaluated[k] = struct{}{}
	a.mu.Unlock()
}

// Evaluated reports whether k was evaluated.
func (a *Audit) Evaluated(k Key) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.evaluated[k]
	return ok
}

// Len returns the number of distinct keys evaluated.
func (a *Audit) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.evaluated)
}

// Curator drops and rewrites entries of type E according to its rules.
type Curator[E any] struct {
	filters map[Key]struct{}
	remaps  map[Key]Replacement
	key     func(E) Key
	rewrite func(E, Replacement) E
	logger  *zap.Logger
}

// New creates a curator for rules. key extracts the curation key of an entry
// and rewrite applies a replacement to it.
func New[E any](rules Rules, key func(E) Key, rewrite func(E, Replacement) E) *Curator[E] {
	c := &Curator[E]{
		filters: make(map[Key]struct{}, len(rules.Filters)),
		remaps:  make(map[Key]Replacement, len(rules.Remaps)),
		key:     key,
		rewrite: rewrite,
		logger:  zap.NewNop(),
	}
	for _, k := range rules.Filters {
		c.filters[canonical(k)] = struct{}{}
	}
	for _, r := range rules.Remaps {
		c.remaps[canonical(r.Key)] = r.To
	}
	return c
}

// SetLogger sets the logger for curation actions and unused-rule warnings.
func (c *Curator[E]) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Curate filters and remaps entries. Every evaluated key is recorded in
// audit; a nil audit starts a new one. The audit is returned so it can be
// passed to further calls and finally to ReportUnused.
func (c *Curator[E]) Curate(entries []E, audit *Audit) ([]E, *Audit) {
	if audit == nil {
		audit = NewAudit()
	}
	out := make([]E, 0, len(entries))
	for _, e := range entries {
		k := canonical(c.key(e))
		audit.record(k)
		if k.Transcript != "" {
			audit.record(k.withoutTranscript())
		}

		if c.filtered(k) {
			c.logger.Debug("filtered entry", zap.Stringer("key", k))
			continue
		}
		if r, ok := c.remap(k); ok {
			c.logger.Debug("remapped entry",
				zap.Stringer("key", k),
				zap.String("gene", r.Gene),
				zap.String("event", r.Event))
			e = c.rewrite(e, r)
		}
		out = append(out, e)
	}
	return out, audit
}

func (c *Curator[E]) filtered(k Key) bool {
	if _, ok := c.filters[k]; ok {
		return true
	}
	_, ok := c.filters[k.withoutTranscript()]
	return ok
}

func (c *Curator[E]) remap(k Key) (Replacement, bool) {
	if r, ok := c.remaps[k]; ok {
		return r, true
	}
	r, ok := c.remaps[k.withoutTranscript()]
	return r, ok
}

// ReportUnused logs a warning for every filter or remap rule whose key was
// never evaluated in audit and returns those keys, sorted and without
// duplicates. A key used by both a filter and a remap is warned about once
// per rule. A nil audit counts every rule as unused.
func (c *Curator[E]) ReportUnused(audit *Audit) []Key {
	if audit == nil {
		audit = NewAudit()
	}
	kinds := make(map[Key][]string)
	for k := range c.filters {
		if !audit.Evaluated(k) {
			kinds[k] = append(kinds[k], "filter")
		}
	}
	for k := range c.remaps {
		if !audit.Evaluated(k) {
			kinds[k] = append(kinds[k], "remap")
		}
	}
	unused := make([]Key, 0, len(kinds))
	for k := range kinds {
		unused = append(unused, k)
	}
	sort.Slice(unused, func(i, j int) bool { return unused[i].less(unused[j]) })
	for _, k := range unused {
		for _, kind := range kinds[k] {
			c.logger.Warn("curation rule never used",
				zap.String("rule", kind),
				zap.Stringer("key", k))
		}
	}
	if len(unused) == 0 {
		return nil
	}
	return unused
}

// canonical trims surrounding whitespace and upper-cases the gene so rules
// and entries compare regardless of source formatting.
func canonical(k Key) Key {
	return Key{
		Gene:       strings.ToUpper(strings.TrimSpace(k.Gene)),
		Transcript: strings.TrimSpace(k.Transcript),
		Event:      strings.TrimSpace(k.Event),
	}
}
