// Package textnorm cleans free text lifted out of scanned or generated documents.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const edgePunctuation = ".|,_*/\\+-\"':;=!?#%&@()[]{}<>~`"

func isEdgeNoise(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(edgePunctuation, r)
}

// Normalize strips leading and trailing whitespace and punctuation noise.
// Interior characters are never touched. Input made only of noise yields "".
func Normalize(text string) string {
	return strings.TrimFunc(text, isEdgeNoise)
}

// CollapseSpaces replaces every run of whitespace with a single space and trims the ends.
func CollapseSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Fold uppercases text, strips diacritics and collapses whitespace, so that
// "José  Pérez" and "JOSE PEREZ" compare equal.
func Fold(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	return CollapseSpaces(strings.ToUpper(folded))
}
