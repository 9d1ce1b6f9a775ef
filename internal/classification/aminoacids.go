package classification

// aminoAcidThreeToSingle maps three-letter amino acid codes to single-letter codes.
var aminoAcidThreeToSingle = map[string]string{
	"Ala": "A", "Arg": "R", "Asn": "N", "Asp": "D", "Cys": "C",
	"Gln": "Q", "Glu": "E", "Gly": "G", "His": "H", "Ile": "I",
	"Leu": "L", "Lys": "K", "Met": "M", "Phe": "F", "Pro": "P",
	"Ser": "S", "Thr": "T", "Trp": "W", "Tyr": "Y", "Val": "V",
	"Ter": "*",
}

// aminoAcids is the regexp character class of single-letter amino acid codes.
const aminoAcids = `[ACDEFGHIKLMNPQRSTVWY]`
