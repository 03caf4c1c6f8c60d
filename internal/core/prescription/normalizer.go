package prescription

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	// MaxQueryLength bounds the search key, in runes.
	MaxQueryLength = 50
	// MinQueryLength is the shortest normalized name worth a lookup.
	MinQueryLength = 3
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	dosageToken   = regexp.MustCompile(`(?i)\d+\s*(?:mg|g|ml|UI|µg|%)`)
	nonLetter     = regexp.MustCompile(`[^a-zA-Z` + frenchAccents + `ÉÈÊËÀÂÄÙÛÜÔÖÎÏÇ\s]`)
)

// Normalize reduces a candidate name to a search key: dosage tokens, digits
// and punctuation removed, single spaces, at most MaxQueryLength runes.
// The result may be empty. Normalize(Normalize(s)) == Normalize(s).
func Normalize(name string) string {
	s := norm.NFC.String(name)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = dosageToken.ReplaceAllString(s, "")
	s = nonLetter.ReplaceAllString(s, "")
	// Removals can leave double spaces behind.
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if utf8.RuneCountInString(s) > MaxQueryLength {
		s = strings.TrimSpace(string([]rune(s)[:MaxQueryLength]))
	}
	return s
}

// Searchable reports whether a normalized query is long enough to be sent.
func Searchable(query string) bool {
	return utf8.RuneCountInString(query) >= MinQueryLength
}
