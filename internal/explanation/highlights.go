package explanation

import (
	"strings"

	"partsearch/internal/model"
)

const highlightWindow = 30

// Highlights returns the positional highlights for a candidate (spec
// §4.7): the Intent's part number located inside the result's
// partNumber, and a +/-30-character window around the first match of
// any search term in the description.
func Highlights(intent model.Intent, c model.Candidate, searchTerms []string) []string {
	var highlights []string

	if intent.PartNumber != "" && c.Source.PartNumber != "" {
		if idx := strings.Index(strings.ToLower(c.Source.PartNumber), strings.ToLower(intent.PartNumber)); idx >= 0 {
			highlights = append(highlights, c.Source.PartNumber)
		}
	}

	if window, ok := descriptionWindow(c.Source.Description, searchTerms); ok {
		highlights = append(highlights, window)
	}

	return highlights
}

func descriptionWindow(description string, terms []string) (string, bool) {
	lower := strings.ToLower(description)
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		idx := strings.Index(lower, term)
		if idx < 0 {
			continue
		}
		start := idx - highlightWindow
		if start < 0 {
			start = 0
		}
		end := idx + len(term) + highlightWindow
		if end > len(description) {
			end = len(description)
		}
		return description[start:end], true
	}
	return "", false
}
