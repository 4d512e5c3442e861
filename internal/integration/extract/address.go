package extract

import (
	"regexp"
	"strings"
)

// Extracted address text arrives with words run together (CHANDLERAZ,
// FLAMINGODR). These passes re-insert the spaces the PDF layout implied.
var (
	lowerUpper   = regexp.MustCompile(`([a-z])([A-Z])`)
	digitUpper   = regexp.MustCompile(`(\d+)([A-Z])`)
	cityStateZip = regexp.MustCompile(`([A-Z]+)([A-Z]{2})(\d{5})`)
	multiSpace   = regexp.MustCompile(`\s+`)

	streetSuffixes = []string{"LN", "RD", "ST", "AVE", "DR", "CT", "PL", "WAY", "TER", "CIR", "BLVD"}

	suffixSplitters = func() []*regexp.Regexp {
		out := make([]*regexp.Regexp, len(streetSuffixes))
		for i, suffix := range streetSuffixes {
			out[i] = regexp.MustCompile(`([A-Z]+)(` + suffix + `)\b`)
		}
		return out
	}()
)

// demergeAddress splits an address string whose layout spacing was lost
// during text extraction.
func demergeAddress(raw string) string {
	addr := lowerUpper.ReplaceAllString(raw, "$1 $2")
	addr = digitUpper.ReplaceAllString(addr, "$1 $2")
	addr = cityStateZip.ReplaceAllString(addr, "$1 $2 $3")
	for _, re := range suffixSplitters {
		addr = re.ReplaceAllString(addr, "$1 $2")
	}
	return strings.TrimSpace(multiSpace.ReplaceAllString(addr, " "))
}
