package classification

import (
	"strings"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

// MutationType infers which variants inside a codon or exon range an event
// refers to, e.g. "EXON 19 DELETION" gives INFRAME_DELETION. Events that do
// not narrow the mutation down give ANY.
func MutationType(event string) datamodel.MutationType {
	s := strings.ToUpper(event)
	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(s, w) {
				return true
			}
		}
		return false
	}
	switch {
	case has("SPLICE"):
		return datamodel.MutationTypeSplice
	case has("NONSENSE", "TRUNCAT", "FRAMESHIFT", "STOP GAIN"):
		return datamodel.MutationTypeNonsenseOrFrameshift
	case has("DELINS", "INDEL") || has("DEL") && has("INS"):
		return datamodel.MutationTypeInframe
	case has("INS", "DUP"):
		return datamodel.MutationTypeInframeInsertion
	case has("DEL"):
		return datamodel.MutationTypeInframeDeletion
	case has("MISSENSE"):
		return datamodel.MutationTypeMissense
	}
	return datamodel.MutationTypeAny
}
