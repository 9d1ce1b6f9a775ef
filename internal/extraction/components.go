package extraction

import (
	"regexp"
	"strings"
)

// componentSeparator splits composite events such as "BRAF V600E + MEK1 K57N".
const componentSeparator = " + "

var reProteinStart = regexp.MustCompile(`^[A-Z*]\d`)

// SplitComponents splits a composite event. A part that starts with a gene
// symbol followed by a protein change ("MEK1 K57N") names its own gene; other
// parts belong to gene. Single events return nil.
func SplitComponents(gene, event string) []Component {
	if !strings.Contains(event, componentSeparator) {
		return nil
	}
	var out []Component
	for _, part := range strings.Split(event, componentSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c := Component{Gene: gene, Event: part}
		if first, rest, ok := strings.Cut(part, " "); ok {
			rest = strings.TrimSpace(rest)
			if strings.EqualFold(first, gene) || reProteinStart.MatchString(rest) {
				c = Component{Gene: first, Event: rest}
			}
		}
		out = append(out, c)
	}
	if len(out) < 2 {
		return nil
	}
	return out
}
