// Package vocab holds the closed vocabularies the parser, validator, and
// explanation templates match against: brands, categories, vehicle makes,
// and multilingual indicator lists. Lookups are case-insensitive over
// accent-stripped text (see parsing.Normalize).
package vocab

// Brands is the closed automotive-brand vocabulary (spec §3, §4.1). Keys
// are the canonical casing returned to callers; membership tests are
// matched against the accent-stripped, lower-cased form.
var Brands = []string{
	"Bosch", "Wega", "NGK", "Denso", "Mahle", "Fram", "Tecfil", "Valeo",
	"Continental", "ZF", "TRW", "Brembo", "Sachs", "Monroe", "Gates",
	"Dayco", "Varta", "Moura", "Delphi", "Federal-Mogul", "Mann-Filter",
	"Hengst", "Hella", "Magneti Marelli", "Bendix", "Akebono", "Motul",
	"Castrol", "Mobil", "Shell", "Michelin", "Pirelli", "Goodyear",
	"Cofap", "Nakata", "Iveco", "ACDelco", "Luk", "Skf", "FAG", "Timken",
}

var brandLower map[string]string

func init() {
	brandLower = make(map[string]string, len(Brands))
	for _, b := range Brands {
		brandLower[foldASCII(b)] = b
	}
}

// MatchBrand returns the canonical brand name if normalized (lower-case,
// accent-stripped) text contains a known brand, and whether one was found.
// The longest matching brand name wins so "mann-filter" is preferred over
// a shorter accidental substring.
func MatchBrand(normalized string) (string, bool) {
	best := ""
	bestLen := 0
	for lower, canon := range brandLower {
		if containsWord(normalized, lower) && len(lower) > bestLen {
			best = canon
			bestLen = len(lower)
		}
	}
	return best, best != ""
}

// IsBrand reports whether name (any casing) is a known brand.
func IsBrand(name string) bool {
	_, ok := brandLower[foldASCII(name)]
	return ok
}

func foldASCII(s string) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b[i] = c
	}
	return string(b)
}

func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return indexOf(haystack, needle) >= 0
}

func indexOf(s, substr string) int {
	n, m := len(s), len(substr)
	if m > n {
		return -1
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == substr {
			return i
		}
	}
	return -1
}
