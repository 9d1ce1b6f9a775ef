// Package entries reads knowledgebase entry files: tab-separated, optionally
// gzipped, with a header naming the columns.
package entries

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/inodb/vibe-serve/internal/datamodel"
	"github.com/inodb/vibe-serve/internal/extraction"
)

// Column names.
const (
	ColGene                 = "gene"
	ColTranscript           = "transcript"
	ColEvent                = "event"
	ColProteinEffect        = "protein_effect"
	ColGeneRole             = "gene_role"
	ColTreatment            = "treatment"
	ColDrugClasses          = "drug_classes"
	ColCancerType           = "cancer_type"
	ColDOID                 = "doid"
	ColBlacklistCancerTypes = "blacklist_cancer_types"
	ColLevel                = "level"
	ColDirection            = "direction"
	ColSourceURLs           = "source_urls"
	ColEvidenceURLs         = "evidence_urls"
)

// ColumnIndices holds the index of every known column, -1 when absent.
type ColumnIndices struct {
	Gene                 int
	Transcript           int
	Event                int
	ProteinEffect        int
	GeneRole             int
	Treatment            int
	DrugClasses          int
	CancerType           int
	DOID                 int
	BlacklistCancerTypes int
	Level                int
	Direction            int
	SourceURLs           int
	EvidenceURLs         int
}

// Parser reads entries from a TSV file.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	columns    ColumnIndices
}

// NewParser opens path, which may be gzipped. "-" reads standard input.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open entry file: %w", err)
	}

	p := &Parser{file: file}
	br := bufio.NewReader(file)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(br)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = br
	}

	if err := p.parseHeader(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// NewParserFromReader creates a parser reading plain TSV from r.
func NewParserFromReader(r io.Reader) (*Parser, error) {
	p := &Parser{reader: bufio.NewReader(r)}
	if err := p.parseHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

// ReadAll reads every entry of the file at path.
func ReadAll(path string) ([]extraction.Entry, error) {
	p, err := NewParser(path)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	var out []extraction.Entry
	for {
		e, err := p.Next()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if e == nil {
			return out, nil
		}
		out = append(out, *e)
	}
}

// readLine returns the next non-empty, non-comment line, or io.EOF.
func (p *Parser) readLine() (string, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		p.lineNumber++
		line = strings.TrimRight(line, "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, nil
	}
}

func (p *Parser) parseHeader() error {
	line, err := p.readLine()
	if err == io.EOF {
		return &ParseError{Line: p.lineNumber, Message: "no header line found"}
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	p.columns = ColumnIndices{
		Gene: -1, Transcript: -1, Event: -1, ProteinEffect: -1, GeneRole: -1,
		Treatment: -1, DrugClasses: -1, CancerType: -1, DOID: -1, BlacklistCancerTypes: -1,
		Level: -1, Direction: -1, SourceURLs: -1, EvidenceURLs: -1,
	}
	for i, col := range strings.Split(line, "\t") {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case ColGene:
			p.columns.Gene = i
		case ColTranscript:
			p.columns.Transcript = i
		case ColEvent:
			p.columns.Event = i
		case ColProteinEffect:
			p.columns.ProteinEffect = i
		case ColGeneRole:
			p.columns.GeneRole = i
		case ColTreatment:
			p.columns.Treatment = i
		case ColDrugClasses:
			p.columns.DrugClasses = i
		case ColCancerType:
			p.columns.CancerType = i
		case ColDOID:
			p.columns.DOID = i
		case ColBlacklistCancerTypes:
			p.columns.BlacklistCancerTypes = i
		case ColLevel:
			p.columns.Level = i
		case ColDirection:
			p.columns.Direction = i
		case ColSourceURLs:
			p.columns.SourceURLs = i
		case ColEvidenceURLs:
			p.columns.EvidenceURLs = i
		}
	}

	if p.columns.Gene == -1 {
		return &ParseError{Line: p.lineNumber, Message: "required column 'gene' not found in header"}
	}
	if p.columns.Event == -1 {
		return &ParseError{Line: p.lineNumber, Message: "required column 'event' not found in header"}
	}
	if p.columns.Treatment >= 0 && p.columns.Level == -1 {
		return &ParseError{Line: p.lineNumber, Message: "column 'treatment' requires column 'level'"}
	}
	return nil
}

// Next reads the next entry. Returns nil, nil at end of input.
func (p *Parser) Next() (*extraction.Entry, error) {
	line, err := p.readLine()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read entry line: %w", err)
	}
	return p.parseLine(line)
}

func (p *Parser) parseLine(line string) (*extraction.Entry, error) {
	fields := strings.Split(line, "\t")
	field := func(i int) string {
		if i < 0 || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	minCols := max(p.columns.Gene, p.columns.Event)
	if len(fields) <= minCols {
		return nil, p.errorf("expected at least %d columns, found %d", minCols+1, len(fields))
	}

	e := &extraction.Entry{
		Line:       p.lineNumber,
		Gene:       field(p.columns.Gene),
		Transcript: field(p.columns.Transcript),
		Event:      field(p.columns.Event),
	}
	e.Components = extraction.SplitComponents(e.Gene, e.Event)

	var err error
	if e.ProteinEffect, err = datamodel.ParseProteinEffect(field(p.columns.ProteinEffect)); err != nil {
		return nil, p.errorf("%v", err)
	}
	if e.GeneRole, err = datamodel.ParseGeneRole(field(p.columns.GeneRole)); err != nil {
		return nil, p.errorf("%v", err)
	}

	treatment := field(p.columns.Treatment)
	if treatment == "" {
		return e, nil
	}
	level, err := parseLevel(field(p.columns.Level))
	if err != nil {
		return nil, p.errorf("%v", err)
	}
	direction, err := parseDirection(field(p.columns.Direction))
	if err != nil {
		return nil, p.errorf("%v", err)
	}
	blacklist, err := parseCancerTypes(field(p.columns.BlacklistCancerTypes))
	if err != nil {
		return nil, p.errorf("%v", err)
	}
	e.Evidence = &datamodel.Evidence{
		SourceURLs: splitList(field(p.columns.SourceURLs)),
		Treatment: datamodel.Treatment{
			Name:        treatment,
			DrugClasses: splitList(field(p.columns.DrugClasses)),
		},
		ApplicableCancerType: datamodel.CancerType{
			Name: field(p.columns.CancerType),
			DOID: field(p.columns.DOID),
		},
		BlacklistCancerTypes: blacklist,
		Level:                level,
		Direction:            direction,
		EvidenceURLs:         splitList(field(p.columns.EvidenceURLs)),
	}
	return e, nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{Line: p.lineNumber, Message: fmt.Sprintf(format, args...)}
}

// Columns returns the parsed column indices.
func (p *Parser) Columns() ColumnIndices {
	return p.columns
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError represents an error in an entry file with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("entry parse error at line %d: %s", e.Line, e.Message)
}
