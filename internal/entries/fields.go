package entries

import (
	"fmt"
	"strings"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseCancerTypes reads "Name|DOID" items separated by ";".
func parseCancerTypes(s string) ([]datamodel.CancerType, error) {
	if s == "" {
		return nil, nil
	}
	var out []datamodel.CancerType
	for _, item := range strings.Split(s, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, doid, _ := strings.Cut(item, "|")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("cancer type without name in %q", s)
		}
		out = append(out, datamodel.CancerType{Name: name, DOID: strings.TrimSpace(doid)})
	}
	return out, nil
}

func parseLevel(s string) (datamodel.EvidenceLevel, error) {
	switch l := datamodel.EvidenceLevel(strings.ToUpper(s)); l {
	case datamodel.EvidenceLevelA, datamodel.EvidenceLevelB, datamodel.EvidenceLevelC, datamodel.EvidenceLevelD:
		return l, nil
	}
	return "", fmt.Errorf("unknown evidence level %q", s)
}

func parseDirection(s string) (datamodel.EvidenceDirection, error) {
	d := datamodel.EvidenceDirection(strings.ReplaceAll(strings.ToUpper(s), " ", "_"))
	switch d {
	case datamodel.DirectionResponsive, datamodel.DirectionPredictedResponsive,
		datamodel.DirectionResistant, datamodel.DirectionPredictedResistant,
		datamodel.DirectionNoBenefit:
		return d, nil
	case "":
		return datamodel.DirectionResponsive, nil
	}
	return "", fmt.Errorf("unknown evidence direction %q", s)
}
