package lookup

import (
	"strings"
	"unicode"
)

// extractSentence returns the first sentence of text containing word,
// compared case-insensitively, or "" when none does.
func extractSentence(word, text string) string {
	if word == "" || strings.TrimSpace(text) == "" {
		return ""
	}

	needle := strings.ToLower(word)
	for _, s := range splitSentences(text) {
		if strings.Contains(strings.ToLower(s), needle) {
			return s
		}
	}
	return ""
}

// splitSentences breaks text after runs of . ! or ? that are followed by
// whitespace or the end of text. Terminators stay with their sentence.
func splitSentences(text string) []string {
	var (
		out   []string
		start int
	)

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		j := i
		for j+1 < len(runes) && isTerminator(runes[j+1]) {
			j++
		}
		if j+1 < len(runes) && !unicode.IsSpace(runes[j+1]) {
			i = j
			continue
		}
		if s := strings.TrimSpace(string(runes[start : j+1])); s != "" {
			out = append(out, s)
		}
		start = j + 1
		i = j
	}

	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, s)
	}
	return out
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
