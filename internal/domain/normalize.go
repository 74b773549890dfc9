package domain

import (
	"strings"
	"unicode"
)

// NormalizeText prepares text for comparison and cache keys: trims, lowercases
// and collapses every whitespace run into one space. Diacritics, hyphens, and
// apostrophes are preserved.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// NormalizeWord normalizes a word clicked in running text. Punctuation and
// quotes around the word are dropped; inner hyphens and apostrophes stay.
func NormalizeWord(word string) string {
	return strings.TrimFunc(NormalizeText(word), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
