// Package generoles loads default gene roles from the OncoKB cancer gene list.
package generoles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

// Roles maps an upper-case gene symbol to its role.
type Roles map[string]datamodel.GeneRole

// Role returns the role of gene, or UNKNOWN when the gene is not listed.
func (r Roles) Role(gene string) datamodel.GeneRole {
	if role, ok := r[strings.ToUpper(strings.TrimSpace(gene))]; ok {
		return role
	}
	return datamodel.GeneRoleUnknown
}

// Genes returns the set of listed genes.
func (r Roles) Genes() map[string]bool {
	genes := make(map[string]bool, len(r))
	for g := range r {
		genes[g] = true
	}
	return genes
}

// Load reads an OncoKB cancerGeneList.tsv file.
func Load(path string) (Roles, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cancer gene list: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a cancer gene list. The header must name "Hugo Symbol" and
// "Gene Type" columns; gene types are ONCOGENE, TSG, "ONCOGENE,TSG" or empty.
func Parse(r io.Reader) (Roles, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading cancer gene list: %w", err)
		}
		return nil, fmt.Errorf("cancer gene list: empty file")
	}

	hugoIdx, typeIdx := -1, -1
	for i, col := range strings.Split(scanner.Text(), "\t") {
		switch strings.TrimSpace(col) {
		case "Hugo Symbol":
			hugoIdx = i
		case "Gene Type":
			typeIdx = i
		}
	}
	if hugoIdx < 0 {
		return nil, fmt.Errorf("cancer gene list: missing 'Hugo Symbol' column")
	}
	if typeIdx < 0 {
		return nil, fmt.Errorf("cancer gene list: missing 'Gene Type' column")
	}

	roles := make(Roles)
	line := 1
	for scanner.Scan() {
		line++
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) <= hugoIdx || len(fields) <= typeIdx {
			continue
		}
		gene := strings.ToUpper(strings.TrimSpace(fields[hugoIdx]))
		if gene == "" {
			continue
		}
		role, err := datamodel.ParseGeneRole(fields[typeIdx])
		if err != nil {
			return nil, fmt.Errorf("cancer gene list line %d: %w", line, err)
		}
		roles[gene] = datamodel.MergeGeneRole(roles[gene], role)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading cancer gene list: %w", err)
	}
	return roles, nil
}
