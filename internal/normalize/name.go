// Package normalize canonicalizes place and county names so every
// comparison in the matcher operates on the same form.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Parenthetical notes like "(historical)" or "(see Smithville)" carry
// catalog metadata, not name content, and are stripped before comparison.
var reParenthetical = regexp.MustCompile(`\s*\([^)]*\)\s*`)

// stripAccents decomposes characters and drops combining marks, so
// "Señora Creek" and "Senora Creek" normalize to the same form.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// BaseName removes parenthetical notes and surrounding whitespace from a
// raw place name, leaving the remaining text otherwise untouched.
func BaseName(raw string) string {
	return strings.TrimSpace(reParenthetical.ReplaceAllString(raw, " "))
}

// Name produces the canonical comparison form of a place or county name:
// parentheticals stripped, accents removed, lowercased, punctuation
// replaced by spaces, whitespace collapsed. All index keys and strategy
// comparisons use this form.
func Name(raw string) string {
	s := BaseName(raw)
	if s == "" {
		return ""
	}

	if stripped, _, err := transform.String(stripAccents, s); err == nil {
		s = stripped
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens splits a canonical name into its words.
func Tokens(name string) []string {
	return strings.Fields(name)
}

// FirstWord returns the leading word of a canonical name, or "" for an
// empty name.
func FirstWord(name string) string {
	if i := strings.IndexByte(name, ' '); i >= 0 {
		return name[:i]
	}
	return name
}

// WordCount returns the number of words in a canonical name.
func WordCount(name string) int {
	return len(strings.Fields(name))
}
