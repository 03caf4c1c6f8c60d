package prescription

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Rule turns recognized text into candidate medication names.
// Rules are pure and independent so each can be tested on its own.
type Rule func(text string) []string

// Lowercase accented letters of French, used by the name classes below.
const (
	frenchAccents = `éèêëàâäùûüôöîïç`
	frenchLower   = `a-z` + frenchAccents
)

var (
	// Capitalized words followed by a dosage: "Doliprane 1000 mg".
	capitalizedDosage = regexp.MustCompile(`(?i)\b([A-Z][` + frenchLower + `]+(?:\s+[A-Z]?[` + frenchLower + `]+)*\s*\d+\s*(?:mg|g|ml|UI|µg))\b`)

	// Upper case names, unit optional: "AMOXICILLINE 500 mg", "DAFALGAN 500".
	upperCaseDosage = regexp.MustCompile(`\b([A-Z]{3,}(?:\s+[A-Z]+)*\s*\d+\s*(?:mg|g|ml|UI|µg)?)\b`)

	// Any word of 4+ letters with a dosage, decimal comma allowed: "Ventoline 0,1 mg".
	wordDosage = regexp.MustCompile(`(?i)\b([A-Za-z` + frenchAccents + `]{4,}\s*\d+(?:,\d+)?\s*(?:mg|g|ml|UI|µg|%))\b`)

	// Dosage, unit or galenic form somewhere in a line.
	lineDosage = regexp.MustCompile(`(?i)\d+\s*(?:mg|g|ml|UI|µg|%|cp|gél|sachet|comprimé)`)
)

// Administrative headers of a prescription. Matched as case-sensitive substrings.
var excludedLineWords = []string{
	"Dr",
	"Patient",
	"Date",
	"Adresse",
	"Téléphone",
	"SECU",
	"Médecin",
}

const (
	minLineLength = 4
	maxLineLength = 50
)

// DefaultRules is the ordered rule set applied by Extract.
var DefaultRules = []Rule{
	PatternRule(capitalizedDosage),
	PatternRule(upperCaseDosage),
	PatternRule(wordDosage),
	DosageLineRule,
}

// Extract returns the candidate medication names found in text, deduplicated
// by exact trimmed value, in first-seen order.
func Extract(text string) []string {
	return ExtractWith(text, DefaultRules...)
}

// ExtractWith applies rules in order and unions their results.
func ExtractWith(text string, rules ...Rule) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	text = norm.NFC.String(text)

	candidates := []string{}
	seen := make(map[string]struct{})
	for _, rule := range rules {
		for _, c := range rule(text) {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			candidates = append(candidates, c)
		}
	}
	return candidates
}

// PatternRule collects the first capture group of every non-overlapping match
// of re over the whole text.
//
// RE2's \b only knows ASCII word characters, so a match touching a letter such
// as "é" would be the tail or head of a longer accented word. Those are dropped
// and the search resumes one rune after the rejected start, since a valid
// match may begin inside the rejected span.
func PatternRule(re *regexp.Regexp) Rule {
	return func(text string) []string {
		var out []string
		for pos := 0; pos < len(text); {
			m := re.FindStringSubmatchIndex(text[pos:])
			if m == nil {
				break
			}
			start, end := pos+m[0], pos+m[1]
			if end == start || m[2] < 0 || !wordBoundary(text, start, end) {
				_, size := utf8.DecodeRuneInString(text[start:])
				pos = start + max(size, 1)
				continue
			}
			out = append(out, strings.TrimSpace(text[pos+m[2]:pos+m[3]]))
			pos = end
		}
		return out
	}
}

// DosageLineRule keeps short capitalized lines mentioning a dosage or form and
// returns the part before the first digit.
func DosageLineRule(text string) []string {
	var out []string
	for _, line := range splitLines(text) {
		trimmed := strings.TrimSpace(line)
		if !isMedicationLine(trimmed) {
			continue
		}
		name := trimmed
		if i := strings.IndexFunc(trimmed, isDigit); i >= 0 {
			name = trimmed[:i]
		}
		out = append(out, strings.TrimSpace(name))
	}
	return out
}

func isMedicationLine(line string) bool {
	n := utf8.RuneCountInString(line)
	if n < minLineLength || n > maxLineLength {
		return false
	}
	first, _ := utf8.DecodeRuneInString(line)
	if !unicode.IsUpper(first) {
		return false
	}
	for _, word := range excludedLineWords {
		if strings.Contains(line, word) {
			return false
		}
	}
	return lineDosage.MatchString(line)
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

func wordBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
