package parsing

import (
	"regexp"
	"strings"
)

// Part-number detector patterns (spec §4.1). Matched against the raw
// (not accent-folded) uppercased query so letter casing and separators
// are preserved for the emitted Intent.partNumber.
var (
	oemPattern        = regexp.MustCompile(`^[A-Z]{1,4}[-./]?\d{3,}[-.\w]*$`)
	numericSepPattern = regexp.MustCompile(`^\d[\d\-./]{3,}$`)
	yearOnlyPattern   = regexp.MustCompile(`^(19[89]\d|20[0-2]\d)$`)
	oilGradePattern   = regexp.MustCompile(`^[0-9]{1,2}[wW][0-9]{1,2}$`)
	compactFallback   = regexp.MustCompile(`^[A-Z0-9]{5,}$`)
)

// PartNumberMatch is a candidate part-number detection with its
// confidence (spec §4.1).
type PartNumberMatch struct {
	Value      string
	Confidence float64
}

// DetectPartNumber runs the part-number pattern ladder against the raw
// query, trying each token and the whole compacted query, and returns
// the highest-confidence match found.
func DetectPartNumber(raw string) (PartNumberMatch, bool) {
	candidate := strings.ToUpper(strings.TrimSpace(raw))
	if candidate == "" {
		return PartNumberMatch{}, false
	}

	var best PartNumberMatch

	consider := func(s string, conf float64) {
		if s == "" {
			return
		}
		if conf > best.Confidence {
			best = PartNumberMatch{Value: s, Confidence: conf}
		}
	}

	tokens := strings.Fields(candidate)
	for _, tok := range tokens {
		switch {
		case yearOnlyPattern.MatchString(tok):
			// A bare year is never a part number.
			continue
		case oemPattern.MatchString(tok) && len(tok) >= 5:
			consider(tok, 0.9)
		case numericSepPattern.MatchString(tok) && !yearOnlyPattern.MatchString(tok):
			consider(tok, 0.7)
		case oilGradePattern.MatchString(tok):
			consider(tok, 0.6)
		}
	}

	if best.Confidence == 0 {
		compact := strings.ReplaceAll(candidate, " ", "")
		if compactFallback.MatchString(compact) {
			consider(compact, 0.7)
		}
	}

	return best, best.Confidence > 0
}

// NormalizePartNumber is the index-side canonicalization: uppercase,
// strip all non-alphanumeric characters. Open Question §9 resolves this
// as the recommended rule; query and index must apply it identically.
func NormalizePartNumber(s string) string {
	upper := strings.ToUpper(s)
	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
