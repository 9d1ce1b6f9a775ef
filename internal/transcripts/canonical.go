package transcripts

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// CanonicalOverrides maps gene symbol to canonical transcript ID.
type CanonicalOverrides map[string]string

// ParseCanonicalOverrides reads a Genome Nexus canonical transcript table:
// hgnc_symbol in the first column and the canonical transcript in the fifth.
// The first line is a header.
func ParseCanonicalOverrides(r io.Reader) (CanonicalOverrides, error) {
	overrides := make(CanonicalOverrides)
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return overrides, scanner.Err()
	}
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < 5 {
			continue
		}
		gene, transcript := fields[0], fields[4]
		if gene == "" || transcript == "" || transcript == "nan" {
			continue
		}
		overrides[strings.ToUpper(gene)] = stripVersion(transcript)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan canonical overrides: %w", err)
	}
	return overrides, nil
}
