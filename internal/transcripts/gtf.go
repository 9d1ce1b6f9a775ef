package transcripts

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

type gtfFeature struct {
	chrom   string
	kind    string
	start   int64
	end     int64
	strand  int8
	attrs   map[string]string
	tags    []string
	exonNum int
}

// ParseGTF reads GENCODE GTF records and returns the transcripts they
// describe. When genes is non-empty only transcripts of those genes are kept.
func ParseGTF(r io.Reader, genes map[string]bool) ([]*Transcript, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	byID := make(map[string]*Transcript)
	var order []string
	cds := make(map[string][2]int64)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		feat, ok := parseGTFLine(line)
		if !ok {
			continue
		}
		id := stripVersion(feat.attrs["transcript_id"])
		if id == "" {
			continue
		}
		if len(genes) > 0 && !genes[strings.ToUpper(feat.attrs["gene_name"])] {
			continue
		}

		switch feat.kind {
		case "transcript":
			if _, seen := byID[id]; !seen {
				order = append(order, id)
			}
			byID[id] = &Transcript{
				ID:        id,
				Gene:      feat.attrs["gene_name"],
				Chrom:     feat.chrom,
				Start:     feat.start,
				End:       feat.end,
				Strand:    feat.strand,
				Canonical: hasTag(feat.tags, "Ensembl_canonical"),
			}
		case "exon":
			if t, ok := byID[id]; ok {
				t.Exons = append(t.Exons, Exon{Rank: feat.exonNum, Start: feat.start, End: feat.end})
			}
		case "CDS", "start_codon", "stop_codon":
			span, seen := cds[id]
			if !seen || feat.start < span[0] {
				span[0] = feat.start
			}
			if feat.end > span[1] {
				span[1] = feat.end
			}
			cds[id] = span
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GTF: %w", err)
	}

	out := make([]*Transcript, 0, len(order))
	for _, id := range order {
		t := byID[id]
		if len(t.Exons) == 0 {
			continue
		}
		if span, ok := cds[id]; ok {
			t.CDSStart, t.CDSEnd = span[0], span[1]
		}
		t.SortExons()
		out = append(out, t)
	}
	return out, nil
}

func parseGTFLine(line string) (gtfFeature, bool) {
	fields := strings.Split(line, "\t")
	if len(fields) < 9 {
		return gtfFeature{}, false
	}
	start, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return gtfFeature{}, false
	}
	end, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return gtfFeature{}, false
	}
	attrs, tags := parseAttributes(fields[8])
	feat := gtfFeature{
		chrom:  datamodel.NormalizeChromosome(fields[0]),
		kind:   fields[2],
		start:  start,
		end:    end,
		strand: 1,
		attrs:  attrs,
		tags:   tags,
	}
	if fields[6] == "-" {
		feat.strand = -1
	}
	feat.exonNum, _ = strconv.Atoi(attrs["exon_number"])
	return feat, true
}

// parseAttributes parses the GTF attribute column. Repeated "tag" keys are
// collected separately since a record may carry several.
func parseAttributes(s string) (map[string]string, []string) {
	attrs := make(map[string]string)
	var tags []string
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		key, value, ok := strings.Cut(part, " ")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		if key == "tag" {
			tags = append(tags, value)
			continue
		}
		attrs[key] = value
	}
	return attrs, tags
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
