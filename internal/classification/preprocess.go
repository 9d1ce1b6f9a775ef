package classification

import (
	"regexp"
	"sort"
	"strings"
)

// Preprocessor normalizes a raw protein annotation before classification and
// resolution. Every Preprocessor in this package is idempotent.
type Preprocessor func(raw string) string

// Chain applies preprocessors left to right.
func Chain(ps ...Preprocessor) Preprocessor {
	return func(s string) string {
		for _, p := range ps {
			s = p(s)
		}
		return s
	}
}

// Identity trims surrounding whitespace and otherwise returns the input.
func Identity(raw string) string {
	return strings.TrimSpace(raw)
}

// StripProteinPrefix removes leading "p." prefixes.
func StripProteinPrefix(raw string) string {
	s := strings.TrimSpace(raw)
	for strings.HasPrefix(s, "p.") {
		s = s[2:]
	}
	return s
}

var (
	threeLetterCodes = func() string {
		codes := make([]string, 0, len(aminoAcidThreeToSingle))
		for code := range aminoAcidThreeToSingle {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		return `(?:` + strings.Join(codes, "|") + `)`
	}()
	reThreeLetter = regexp.MustCompile(threeLetterCodes)
	// A whole word in three-letter protein change notation: a code, a
	// position, then only codes, positions and change keywords.
	reThreeLetterChange = regexp.MustCompile(`^` + threeLetterCodes + `\d+(?:` + threeLetterCodes + `|\d|_|fs|del|ins|dup|ext|[*=?])*$`)
	reWord              = regexp.MustCompile(`\S+`)
)

// ThreeLetterToSingle strips the "p." prefix and collapses three-letter amino
// acid codes to single-letter codes: "p.Val600Glu" becomes "V600E". Only
// words in protein change notation are rewritten, so free text such as
// "Promoter Methylation" is left alone.
func ThreeLetterToSingle(raw string) string {
	return reWord.ReplaceAllStringFunc(StripProteinPrefix(raw), func(word string) string {
		if !reThreeLetterChange.MatchString(word) {
			return word
		}
		return reThreeLetter.ReplaceAllStringFunc(word, func(code string) string {
			return aminoAcidThreeToSingle[code]
		})
	})
}

const frameshiftStop = "fs*"

// TruncateFrameshift keeps at most two characters after a frameshift-then-stop
// marker: "P34Rfs*25X123" becomes "P34Rfs*25".
func TruncateFrameshift(raw string) string {
	s := strings.TrimSpace(raw)
	idx := strings.Index(s, frameshiftStop)
	if idx < 0 {
		return s
	}
	end := idx + len(frameshiftStop) + 2
	if end < len(s) {
		return s[:end]
	}
	return s
}
