package transcripts

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

// Files names the gene model inputs. FASTA and Canonical are optional.
type Files struct {
	GTF       string
	FASTA     string
	Canonical string
}

// Load builds a cache from GENCODE files, keeping only the listed genes when
// genes is non-empty.
func Load(files Files, genes map[string]bool) (*Cache, error) {
	c := New()
	if err := withReader(files.GTF, func(r io.Reader) error {
		ts, err := ParseGTF(r, genes)
		if err != nil {
			return err
		}
		for _, t := range ts {
			c.Add(t)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load GTF: %w", err)
	}

	if files.Canonical != "" {
		if err := withReader(files.Canonical, func(r io.Reader) error {
			overrides, err := ParseCanonicalOverrides(r)
			if err != nil {
				return err
			}
			c.ApplyCanonical(overrides)
			return nil
		}); err != nil {
			return nil, fmt.Errorf("load canonical overrides: %w", err)
		}
	}

	if files.FASTA != "" {
		if err := withReader(files.FASTA, func(r io.Reader) error {
			seqs, err := ParseFASTA(r)
			if err != nil {
				return err
			}
			c.AttachSequences(seqs)
			return nil
		}); err != nil {
			return nil, fmt.Errorf("load FASTA: %w", err)
		}
	}
	return c, nil
}

// withReader opens path, transparently decompressing gzip input.
func withReader(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var r io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	return fn(r)
}
