package transcripts

import (
	"sort"
	"strings"
)

// Cache indexes transcripts by ID and gene.
type Cache struct {
	byID   map[string]*Transcript
	byGene map[string][]*Transcript
}

// New creates a new empty cache.
func New() *Cache {
	return &Cache{
		byID:   make(map[string]*Transcript),
		byGene: make(map[string][]*Transcript),
	}
}

// Add adds a transcript, replacing any earlier transcript with the same ID.
func (c *Cache) Add(t *Transcript) {
	id := stripVersion(t.ID)
	if old, ok := c.byID[id]; ok {
		c.removeFromGene(old)
	}
	c.byID[id] = t
	gene := strings.ToUpper(t.Gene)
	c.byGene[gene] = append(c.byGene[gene], t)
}

func (c *Cache) removeFromGene(t *Transcript) {
	gene := strings.ToUpper(t.Gene)
	list := c.byGene[gene]
	for i, v := range list {
		if v == t {
			c.byGene[gene] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Get returns the transcript with the given ID, ignoring any version suffix.
func (c *Cache) Get(id string) *Transcript {
	return c.byID[stripVersion(id)]
}

// ByGene returns all transcripts of a gene.
func (c *Cache) ByGene(gene string) []*Transcript {
	return c.byGene[strings.ToUpper(strings.TrimSpace(gene))]
}

// Canonical returns the canonical protein-coding transcript of a gene,
// falling back to the longest protein-coding transcript.
func (c *Cache) Canonical(gene string) *Transcript {
	var best *Transcript
	for _, t := range c.ByGene(gene) {
		if !t.IsProteinCoding() {
			continue
		}
		if t.Canonical {
			return t
		}
		if best == nil || t.CDSLength() > best.CDSLength() || t.CDSLength() == best.CDSLength() && t.ID < best.ID {
			best = t
		}
	}
	return best
}

// Len returns the number of transcripts.
func (c *Cache) Len() int {
	return len(c.byID)
}

// Genes returns the sorted gene symbols in the cache.
func (c *Cache) Genes() []string {
	genes := make([]string, 0, len(c.byGene))
	for g, list := range c.byGene {
		if len(list) > 0 {
			genes = append(genes, g)
		}
	}
	sort.Strings(genes)
	return genes
}

// ApplyCanonical marks the override transcript of each listed gene as
// canonical and clears the flag on its other transcripts. Genes whose
// override transcript is not loaded are left untouched.
func (c *Cache) ApplyCanonical(overrides CanonicalOverrides) int {
	applied := 0
	for gene, id := range overrides {
		target := c.Get(id)
		if target == nil || !strings.EqualFold(target.Gene, gene) {
			continue
		}
		for _, t := range c.ByGene(gene) {
			t.Canonical = t == target
		}
		applied++
	}
	return applied
}

func stripVersion(id string) string {
	if idx := strings.IndexByte(id, '.'); idx >= 0 {
		return id[:idx]
	}
	return id
}
