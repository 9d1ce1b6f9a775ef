// Package store persists the consolidated dataset in DuckDB and loads gene
// models from TSV through DuckDB's CSV reader.
package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	goduckdb "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding the dataset tables.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

const evidenceColumns = `
		source VARCHAR,
		source_event VARCHAR,
		source_urls VARCHAR,
		treatment VARCHAR,
		drug_classes VARCHAR,
		cancer_type VARCHAR,
		doid VARCHAR,
		blacklist_cancer_types VARCHAR,
		level VARCHAR,
		direction VARCHAR,
		evidence_urls VARCHAR`

const rangeColumns = `
		gene VARCHAR,
		transcript VARCHAR,
		chrom VARCHAR,
		start_pos BIGINT,
		end_pos BIGINT,
		mutation_type VARCHAR,
		range_rank BIGINT`

// Table names, in the order they are written.
const (
	TableKnownHotspots             = "known_hotspots"
	TableKnownCodons               = "known_codons"
	TableKnownExons                = "known_exons"
	TableKnownFusionPairs          = "known_fusion_pairs"
	TableKnownCopyNumbers          = "known_copy_numbers"
	TableKnownGenes                = "known_genes"
	TableActionableHotspots        = "actionable_hotspots"
	TableActionableRanges          = "actionable_ranges"
	TableActionableGenes           = "actionable_genes"
	TableActionableFusions         = "actionable_fusions"
	TableActionableCharacteristics = "actionable_characteristics"
	TableActionableHLA             = "actionable_hla"
)

var schema = []struct {
	table string
	ddl   string
}{
	{TableKnownHotspots, `
		gene VARCHAR,
		transcript VARCHAR,
		protein_annotation VARCHAR,
		chrom VARCHAR,
		pos BIGINT,
		ref VARCHAR,
		alt VARCHAR,
		gene_role VARCHAR,
		protein_effect VARCHAR,
		sources VARCHAR`},
	{TableKnownCodons, rangeColumns + `,
		gene_role VARCHAR,
		protein_effect VARCHAR,
		sources VARCHAR`},
	{TableKnownExons, rangeColumns + `,
		gene_role VARCHAR,
		protein_effect VARCHAR,
		sources VARCHAR`},
	{TableKnownFusionPairs, `
		gene_up VARCHAR,
		min_exon_up BIGINT,
		max_exon_up BIGINT,
		gene_down VARCHAR,
		min_exon_down BIGINT,
		max_exon_down BIGINT,
		protein_effect VARCHAR,
		sources VARCHAR`},
	{TableKnownCopyNumbers, `
		gene VARCHAR,
		copy_number_type VARCHAR,
		gene_role VARCHAR,
		protein_effect VARCHAR,
		sources VARCHAR`},
	{TableKnownGenes, `
		gene VARCHAR,
		gene_role VARCHAR,
		sources VARCHAR`},
	{TableActionableHotspots, `
		chrom VARCHAR,
		pos BIGINT,
		ref VARCHAR,
		alt VARCHAR,` + evidenceColumns},
	{TableActionableRanges, rangeColumns + `,
		range_type VARCHAR,` + evidenceColumns},
	{TableActionableGenes, `
		gene VARCHAR,
		event VARCHAR,` + evidenceColumns},
	{TableActionableFusions, `
		gene_up VARCHAR,
		min_exon_up BIGINT,
		max_exon_up BIGINT,
		gene_down VARCHAR,
		min_exon_down BIGINT,
		max_exon_down BIGINT,` + evidenceColumns},
	{TableActionableCharacteristics, `
		characteristic_type VARCHAR,
		comparator VARCHAR,
		cutoff DOUBLE,` + evidenceColumns},
	{TableActionableHLA, `
		hla_type VARCHAR,` + evidenceColumns},
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS dataset_meta (
		meta_key VARCHAR PRIMARY KEY,
		meta_value VARCHAR
	)`); err != nil {
		return err
	}
	for _, t := range schema {
		if _, err := s.db.Exec(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s\n\t)", t.table, t.ddl)); err != nil {
			return fmt.Errorf("create %s: %w", t.table, err)
		}
	}
	return nil
}

// Tables returns the dataset table names.
func Tables() []string {
	names := make([]string, len(schema))
	for i, t := range schema {
		names[i] = t.table
	}
	return names
}

// appendRows writes rows into table with the Appender API.
func (s *Store) appendRows(table string, n int, row func(i int) []driver.Value) error {
	if n == 0 {
		return nil
	}
	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", table)
		return err
	}); err != nil {
		return fmt.Errorf("create appender for %s: %w", table, err)
	}
	defer appender.Close()

	for i := range n {
		if err := appender.AppendRow(row(i)...); err != nil {
			return fmt.Errorf("append %s row: %w", table, err)
		}
	}
	return appender.Flush()
}

// Counts returns the number of rows in each dataset table.
func (s *Store) Counts() (map[string]int64, error) {
	counts := make(map[string]int64, len(schema))
	for _, t := range schema {
		var n int64
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + t.table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", t.table, err)
		}
		counts[t.table] = n
	}
	return counts, nil
}

// Clear removes the stored dataset.
func (s *Store) Clear() error {
	for _, t := range schema {
		if _, err := s.db.Exec("DELETE FROM " + t.table); err != nil {
			return fmt.Errorf("clear %s: %w", t.table, err)
		}
	}
	_, err := s.db.Exec("DELETE FROM dataset_meta")
	return err
}
