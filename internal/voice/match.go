package voice

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"organo/internal/domain"
)

// Normalize lowercases text, strips diacritics and trims surrounding space.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	return strings.TrimSpace(strings.ToLower(folded))
}

// MatchIntent returns the first intent in sets owning a keyword that occurs in
// text, or in which text occurs. text is expected to be normalized already;
// keywords are normalized here. Empty text never matches.
func MatchIntent(text string, sets []domain.KeywordSet) (domain.Intent, bool) {
	if text == "" {
		return "", false
	}
	for _, set := range sets {
		for _, kw := range set.Keywords {
			if contains(text, Normalize(kw)) {
				return set.Intent, true
			}
		}
	}
	return "", false
}

// LookupTopic returns the first title that occurs in text, comparing
// normalized forms. Unlike keywords, a title never matches a text that is
// only part of it.
func LookupTopic(text string, titles []string) (string, bool) {
	if text == "" {
		return "", false
	}
	for _, title := range titles {
		if t := Normalize(title); t != "" && strings.Contains(text, t) {
			return title, true
		}
	}
	return "", false
}

func contains(text, kw string) bool {
	if kw == "" {
		return false
	}
	return strings.Contains(text, kw) || strings.Contains(kw, text)
}
