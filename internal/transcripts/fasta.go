package transcripts

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseFASTA reads GENCODE protein-coding transcript sequences and returns
// the CDS portion of each, keyed by unversioned transcript ID. Headers without
// a CDS range keep the whole sequence.
//
// GENCODE headers look like:
// >ENST00000311936.8|ENSG00000133703.14|...|KRAS-201|KRAS|5430|UTR5:1-190|CDS:191-760|UTR3:761-5430|
func ParseFASTA(r io.Reader) (map[string]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	seqs := make(map[string]string)
	var (
		id       string
		cdsRange [2]int
		hasCDS   bool
		seq      strings.Builder
	)
	flush := func() {
		if id == "" || seq.Len() == 0 {
			return
		}
		s := seq.String()
		if hasCDS && cdsRange[0] >= 1 && cdsRange[1] <= len(s) && cdsRange[0] < cdsRange[1] {
			s = s[cdsRange[0]-1 : cdsRange[1]]
		}
		seqs[id] = strings.ToUpper(s)
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ">") {
			flush()
			id = headerID(line)
			cdsRange[0], cdsRange[1], hasCDS = parseCDSRange(line)
			seq.Reset()
			continue
		}
		seq.WriteString(strings.TrimSpace(line))
	}
	flush()
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan FASTA: %w", err)
	}
	return seqs, nil
}

func headerID(header string) string {
	header = strings.TrimPrefix(header, ">")
	if idx := strings.IndexAny(header, "| "); idx != -1 {
		header = header[:idx]
	}
	return stripVersion(header)
}

func parseCDSRange(header string) (start, end int, ok bool) {
	for _, field := range strings.Split(header, "|") {
		rest, found := strings.CutPrefix(strings.TrimSpace(field), "CDS:")
		if !found {
			continue
		}
		lo, hi, found := strings.Cut(rest, "-")
		if !found {
			return 0, 0, false
		}
		s, err1 := strconv.Atoi(lo)
		e, err2 := strconv.Atoi(hi)
		if err1 != nil || err2 != nil {
			return 0, 0, false
		}
		return s, e, true
	}
	return 0, 0, false
}

// AttachSequences sets the CDS sequence of every cached transcript found in
// seqs and returns how many were attached.
func (c *Cache) AttachSequences(seqs map[string]string) int {
	n := 0
	for id, t := range c.byID {
		if s, ok := seqs[id]; ok {
			t.CDSSequence = s
			n++
		}
	}
	return n
}
