package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inodb/vibe-serve/internal/datamodel"
	"github.com/inodb/vibe-serve/internal/transcripts"
)

// LoadTranscripts bulk-loads a gene model TSV with DuckDB's read_csv,
// replacing any previously loaded models. The file has a header and the
// columns:
//
//	transcript_id  gene  chrom  start  end  strand  canonical  cds_start  cds_end  exon_starts  exon_ends  cds_sequence
//
// Exon starts and ends are comma-separated genomic coordinates.
func (s *Store) LoadTranscripts(path string) (int64, error) {
	query := fmt.Sprintf(`CREATE OR REPLACE TABLE transcripts AS
		SELECT * FROM read_csv('%s', delim='\t', header=true,
			columns={
				'transcript_id': 'VARCHAR',
				'gene': 'VARCHAR',
				'chrom': 'VARCHAR',
				'start_pos': 'BIGINT',
				'end_pos': 'BIGINT',
				'strand': 'VARCHAR',
				'canonical': 'BOOLEAN',
				'cds_start': 'BIGINT',
				'cds_end': 'BIGINT',
				'exon_starts': 'VARCHAR',
				'exon_ends': 'VARCHAR',
				'cds_sequence': 'VARCHAR'
			})`, strings.ReplaceAll(path, "'", "''"))
	if _, err := s.db.Exec(query); err != nil {
		return 0, fmt.Errorf("loading transcripts: %w", err)
	}

	var n int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM transcripts").Scan(&n); err != nil {
		return 0, fmt.Errorf("count transcripts: %w", err)
	}
	return n, nil
}

// Transcripts builds the in-memory transcript index from the loaded models.
func (s *Store) Transcripts() (*transcripts.Cache, error) {
	rows, err := s.db.Query(`SELECT
		transcript_id, gene, chrom, start_pos, end_pos, strand,
		COALESCE(canonical, false), COALESCE(cds_start, 0), COALESCE(cds_end, 0),
		COALESCE(exon_starts, ''), COALESCE(exon_ends, ''), COALESCE(cds_sequence, '')
		FROM transcripts`)
	if err != nil {
		return nil, fmt.Errorf("query transcripts: %w", err)
	}
	defer rows.Close()

	c := transcripts.New()
	for rows.Next() {
		var t transcripts.Transcript
		var strand, starts, ends string
		if err := rows.Scan(&t.ID, &t.Gene, &t.Chrom, &t.Start, &t.End, &strand,
			&t.Canonical, &t.CDSStart, &t.CDSEnd, &starts, &ends, &t.CDSSequence); err != nil {
			return nil, fmt.Errorf("scan transcript: %w", err)
		}
		t.Chrom = datamodel.NormalizeChromosome(t.Chrom)
		t.CDSSequence = strings.ToUpper(t.CDSSequence)
		switch strand {
		case "+", "1", "+1":
			t.Strand = 1
		case "-", "-1":
			t.Strand = -1
		default:
			return nil, fmt.Errorf("transcript %s: invalid strand %q", t.ID, strand)
		}
		if t.Exons, err = parseExons(starts, ends); err != nil {
			return nil, fmt.Errorf("transcript %s: %w", t.ID, err)
		}
		t.SortExons()
		c.Add(&t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcripts: %w", err)
	}
	return c, nil
}

func parseExons(starts, ends string) ([]transcripts.Exon, error) {
	ss := strings.Split(strings.TrimSuffix(starts, ","), ",")
	es := strings.Split(strings.TrimSuffix(ends, ","), ",")
	if len(ss) != len(es) {
		return nil, fmt.Errorf("%d exon starts but %d exon ends", len(ss), len(es))
	}
	if len(ss) == 1 && ss[0] == "" {
		return nil, nil
	}
	exons := make([]transcripts.Exon, len(ss))
	for i := range ss {
		start, err := strconv.ParseInt(strings.TrimSpace(ss[i]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("exon start %q: %w", ss[i], err)
		}
		end, err := strconv.ParseInt(strings.TrimSpace(es[i]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("exon end %q: %w", es[i], err)
		}
		exons[i] = transcripts.Exon{Start: start, End: end}
	}
	return exons, nil
}
