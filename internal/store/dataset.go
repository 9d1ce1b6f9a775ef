package store

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

const metaRefGenome = "ref_genome"

func joinList(vs []string) string {
	return strings.Join(vs, ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func cancerTypes(cts []datamodel.CancerType) string {
	parts := make([]string, len(cts))
	for i, ct := range cts {
		parts[i] = ct.Name + "|" + ct.DOID
	}
	return strings.Join(parts, ";")
}

func evidenceValues(e datamodel.Evidence) []driver.Value {
	return []driver.Value{
		string(e.Source), e.SourceEvent, joinList(e.SourceURLs),
		e.Treatment.Name, joinList(e.Treatment.DrugClasses),
		e.ApplicableCancerType.Name, e.ApplicableCancerType.DOID,
		cancerTypes(e.BlacklistCancerTypes),
		string(e.Level), string(e.Direction), joinList(e.EvidenceURLs),
	}
}

func rangeValues(r datamodel.RangeAnnotation) []driver.Value {
	return []driver.Value{
		r.Gene, r.Transcript, r.Chromosome, r.Start, r.End, string(r.MutationType), int64(r.Rank),
	}
}

// WriteResult replaces the stored dataset with r.
func (s *Store) WriteResult(r datamodel.ExtractionResult) error {
	if err := s.Clear(); err != nil {
		return err
	}
	if _, err := s.db.Exec("INSERT INTO dataset_meta VALUES (?, ?)", metaRefGenome, string(r.RefGenome)); err != nil {
		return fmt.Errorf("write dataset metadata: %w", err)
	}

	writes := []struct {
		table string
		n     int
		row   func(i int) []driver.Value
	}{
		{TableKnownHotspots, len(r.KnownHotspots), func(i int) []driver.Value {
			h := r.KnownHotspots[i]
			return []driver.Value{h.Gene, h.Transcript, h.ProteinAnnotation, h.Chromosome, h.Position,
				h.Ref, h.Alt, string(h.GeneRole), string(h.ProteinEffect), h.Sources.String()}
		}},
		{TableKnownCodons, len(r.KnownCodons), func(i int) []driver.Value {
			c := r.KnownCodons[i]
			return append(rangeValues(c.RangeAnnotation),
				string(c.GeneRole), string(c.ProteinEffect), c.Sources.String())
		}},
		{TableKnownExons, len(r.KnownExons), func(i int) []driver.Value {
			e := r.KnownExons[i]
			return append(rangeValues(e.RangeAnnotation),
				string(e.GeneRole), string(e.ProteinEffect), e.Sources.String())
		}},
		{TableKnownFusionPairs, len(r.KnownFusionPairs), func(i int) []driver.Value {
			f := r.KnownFusionPairs[i]
			return []driver.Value{f.GeneUp, int64(f.MinExonUp), int64(f.MaxExonUp),
				f.GeneDown, int64(f.MinExonDown), int64(f.MaxExonDown),
				string(f.ProteinEffect), f.Sources.String()}
		}},
		{TableKnownCopyNumbers, len(r.KnownCopyNumbers), func(i int) []driver.Value {
			c := r.KnownCopyNumbers[i]
			return []driver.Value{c.Gene, string(c.Type), string(c.GeneRole), string(c.ProteinEffect), c.Sources.String()}
		}},
		{TableKnownGenes, len(r.KnownGenes), func(i int) []driver.Value {
			g := r.KnownGenes[i]
			return []driver.Value{g.Gene, string(g.GeneRole), g.Sources.String()}
		}},
		{TableActionableHotspots, len(r.ActionableHotspots), func(i int) []driver.Value {
			a := r.ActionableHotspots[i]
			return append([]driver.Value{a.Chromosome, a.Position, a.Ref, a.Alt}, evidenceValues(a.Evidence)...)
		}},
		{TableActionableRanges, len(r.ActionableRanges), func(i int) []driver.Value {
			a := r.ActionableRanges[i]
			row := append(rangeValues(a.RangeAnnotation), string(a.RangeType))
			return append(row, evidenceValues(a.Evidence)...)
		}},
		{TableActionableGenes, len(r.ActionableGenes), func(i int) []driver.Value {
			a := r.ActionableGenes[i]
			return append([]driver.Value{a.Gene, string(a.Event)}, evidenceValues(a.Evidence)...)
		}},
		{TableActionableFusions, len(r.ActionableFusions), func(i int) []driver.Value {
			a := r.ActionableFusions[i]
			return append([]driver.Value{a.GeneUp, int64(a.MinExonUp), int64(a.MaxExonUp),
				a.GeneDown, int64(a.MinExonDown), int64(a.MaxExonDown)}, evidenceValues(a.Evidence)...)
		}},
		{TableActionableCharacteristics, len(r.ActionableCharacteristics), func(i int) []driver.Value {
			a := r.ActionableCharacteristics[i]
			return append([]driver.Value{string(a.Type), string(a.Comparator), a.Cutoff}, evidenceValues(a.Evidence)...)
		}},
		{TableActionableHLA, len(r.ActionableHLA), func(i int) []driver.Value {
			a := r.ActionableHLA[i]
			return append([]driver.Value{a.HLAType}, evidenceValues(a.Evidence)...)
		}},
	}
	for _, w := range writes {
		if err := s.appendRows(w.table, w.n, w.row); err != nil {
			return err
		}
	}
	return nil
}

// RefGenome returns the reference genome of the stored dataset.
func (s *Store) RefGenome() (datamodel.RefGenome, error) {
	var v string
	err := s.db.QueryRow("SELECT meta_value FROM dataset_meta WHERE meta_key = ?", metaRefGenome).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read dataset metadata: %w", err)
	}
	return datamodel.RefGenome(v), nil
}

// KnownHotspots returns the stored hotspots of gene, or all hotspots when
// gene is empty.
func (s *Store) KnownHotspots(gene string) ([]datamodel.KnownHotspot, error) {
	rows, err := s.db.Query(`SELECT
		gene, transcript, protein_annotation, chrom, pos, ref, alt,
		gene_role, protein_effect, sources
		FROM known_hotspots
		WHERE ? = '' OR gene = ?
		ORDER BY chrom, pos, ref, alt`, gene, gene)
	if err != nil {
		return nil, fmt.Errorf("query hotspots: %w", err)
	}
	defer rows.Close()

	var out []datamodel.KnownHotspot
	for rows.Next() {
		var h datamodel.KnownHotspot
		var role, effect, sources string
		if err := rows.Scan(&h.Gene, &h.Transcript, &h.ProteinAnnotation, &h.Chromosome, &h.Position,
			&h.Ref, &h.Alt, &role, &effect, &sources); err != nil {
			return nil, fmt.Errorf("scan hotspot: %w", err)
		}
		h.GeneRole = datamodel.GeneRole(role)
		h.ProteinEffect = datamodel.ProteinEffect(effect)
		for _, kb := range splitList(sources) {
			h.Sources = append(h.Sources, datamodel.Knowledgebase(kb))
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hotspots: %w", err)
	}
	return out, nil
}
