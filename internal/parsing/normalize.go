// Package parsing implements the deterministic token parser that backs
// Stage 1 (spec §4.1): normalization, tokenization, and the pattern
// detectors for part numbers, brands, categories, vehicle context,
// position, size, and engine code.
package parsing

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var punctuationExceptDashDotSlash = regexp.MustCompile(`[^a-z0-9\s\-./]`)

// Normalize lower-cases, strips accents, collapses whitespace, and
// strips punctuation other than `-`, `.`, `/` (spec §4.1).
func Normalize(s string) string {
	s = strings.ToLower(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ = transform.String(t, s)

	s = punctuationExceptDashDotSlash.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

var tokenSplit = regexp.MustCompile(`[\s,;]+`)

// Tokenize splits normalized text on whitespace, comma, or semicolon.
func Tokenize(normalized string) []string {
	if normalized == "" {
		return nil
	}
	parts := tokenSplit.Split(normalized, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
