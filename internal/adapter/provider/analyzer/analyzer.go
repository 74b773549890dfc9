// Package analyzer is a dictionary-free, rule-based English word analyzer.
// It combines closed word lists, an irregular verb table and suffix
// heuristics to guess part of speech, verb tense and lemma for a single word.
package analyzer

import (
	"strings"
	"unicode"

	"github.com/heartmarshall/myenglish-progress/internal/provider"
)

// Analyzer is safe for concurrent use. The zero value is ready.
type Analyzer struct{}

// New returns an Analyzer.
func New() *Analyzer { return &Analyzer{} }

// baseOf maps irregular past and participle forms to their base.
var baseOf = func() map[string]string {
	m := make(map[string]string, len(irregularVerbs)*2)
	for base, forms := range irregularVerbs {
		for _, f := range forms {
			if f != base {
				m[f] = base
			}
		}
	}
	for _, f := range []string{"am", "is", "are", "was", "were", "been", "being"} {
		m[f] = "be"
	}
	m["has"], m["having"] = "have", "have"
	m["does"], m["doing"], m["done"] = "do", "do", "do"
	return m
}()

// Analyze classifies word. Matching is case-insensitive; the returned Word
// keeps the input as given.
func (a *Analyzer) Analyze(word string) provider.WordAnalysis {
	w := strings.ToLower(strings.TrimSpace(word))
	pos, root := classify(w)
	if root == "" {
		root = word
	}

	out := provider.WordAnalysis{
		Word:        word,
		POS:         pos,
		IsModal:     has(modals, w),
		IsAuxiliary: has(auxiliaries, w),
		Root:        root,
	}
	if pos == provider.POSVerb {
		t := tense(w, root)
		out.Tense = &t
	}
	return out
}

func classify(w string) (pos, lemma string) {
	switch {
	case w == "":
		return provider.POSUnknown, ""
	case isNumeric(w):
		return provider.POSNumber, w
	case has(modals, w):
		return provider.POSVerb, w
	}

	if base, ok := baseOf[w]; ok {
		return provider.POSVerb, base
	}
	if p, ok := closedClass[w]; ok {
		return p, w
	}
	if isVerbBase(w) {
		return provider.POSVerb, w
	}

	if stem, ok := cutSuffix(w, "ing"); ok {
		return provider.POSVerb, verbStem(stem)
	}
	// -eed is usually part of the root (need, speed) unless the stem plus
	// e is a known verb (agreed).
	if stem, ok := cutSuffix(w, "ed"); ok && (!strings.HasSuffix(stem, "e") || isVerbBase(stem+"e")) {
		return provider.POSVerb, verbStem(stem)
	}

	if hasAnySuffix(w, adverbSuffixes) {
		return provider.POSAdverb, w
	}
	if hasAnySuffix(w, verbSuffixes) {
		return provider.POSVerb, w
	}
	if hasAnySuffix(w, adjectiveSuffixes) {
		return provider.POSAdjective, w
	}
	if hasAnySuffix(w, nounSuffixes) {
		return provider.POSNoun, w
	}

	if stem := singular(w); stem != w {
		if isVerbBase(stem) {
			return provider.POSVerb, stem
		}
		return provider.POSNoun, stem
	}

	return provider.POSNoun, w
}

// tense labels an inflected verb form given its lemma. Checks run in a fixed
// order, so irregular pasts that equal their base still report Past.
func tense(w, lemma string) string {
	switch {
	case strings.HasSuffix(w, "ing") && w != lemma:
		return provider.TenseGerund
	case strings.HasSuffix(w, "ed") && w != lemma:
		return provider.TensePast
	case has(irregularPast, w):
		return provider.TensePast
	case (strings.HasSuffix(w, "en") || strings.HasSuffix(w, "ed")) && w != lemma:
		return provider.TenseParticiple
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && w != lemma:
		return provider.TensePresent
	case w == lemma:
		return provider.TenseBase
	}
	return provider.TensePresent
}

// cutSuffix strips suffix when what remains looks like a word: at least
// two letters with a vowel.
func cutSuffix(w, suffix string) (string, bool) {
	stem, ok := strings.CutSuffix(w, suffix)
	if !ok || len(stem) < 2 || !strings.ContainsAny(stem, "aeiouy") {
		return "", false
	}
	return stem, true
}

// verbStem recovers the base form from a stem left after removing -ing or
// -ed: known verbs first, then spelling rules.
func verbStem(stem string) string {
	candidates := []string{stem, stem + "e", undouble(stem)}
	if s, ok := strings.CutSuffix(stem, "i"); ok {
		candidates = append(candidates, s+"y")
	}
	if len(stem) == 2 && stem[1] == 'y' {
		candidates = append(candidates, stem[:1]+"ie")
	}
	for _, c := range candidates {
		if isVerbBase(c) {
			return c
		}
	}

	switch {
	case strings.HasSuffix(stem, "i"):
		return stem[:len(stem)-1] + "y"
	case undouble(stem) != stem:
		return undouble(stem)
	case needsE(stem):
		return stem + "e"
	}
	return stem
}

// undouble removes a doubled final consonant (running -> run). Doubled
// l, s, f and z are kept (falling, passing).
func undouble(s string) string {
	n := len(s)
	if n < 3 || s[n-1] != s[n-2] || isVowel(s[n-1]) || strings.IndexByte("lsfz", s[n-1]) >= 0 {
		return s
	}
	return s[:n-1]
}

func needsE(stem string) bool {
	if strings.HasSuffix(stem, "v") || strings.HasSuffix(stem, "c") ||
		strings.HasSuffix(stem, "dg") || strings.HasSuffix(stem, "iz") || strings.HasSuffix(stem, "us") {
		return true
	}
	// short consonant-vowel-consonant stems: mak(e), hop(e)
	n := len(stem)
	return n == 3 && !isVowel(stem[0]) && isVowel(stem[1]) && !isVowel(stem[2]) &&
		strings.IndexByte("wxy", stem[2]) < 0
}

// singular strips a plural or third-person -s. Words ending in -ss, -us or
// -is are returned unchanged.
func singular(w string) string {
	if len(w) < 4 || !strings.HasSuffix(w, "s") ||
		strings.HasSuffix(w, "ss") || strings.HasSuffix(w, "us") || strings.HasSuffix(w, "is") {
		return w
	}
	if s, ok := strings.CutSuffix(w, "ies"); ok {
		return s + "y"
	}
	if s, ok := strings.CutSuffix(w, "es"); ok {
		for _, end := range []string{"s", "x", "z", "ch", "sh", "o"} {
			if strings.HasSuffix(s, end) {
				return s
			}
		}
	}
	return w[:len(w)-1]
}

func isVerbBase(w string) bool {
	if _, ok := irregularVerbs[w]; ok {
		return true
	}
	return has(regularVerbs, w) || has(auxiliaries, w)
}

func hasAnySuffix(w string, suffixes []string) bool {
	for _, s := range suffixes {
		if len(w) > len(s)+2 && strings.HasSuffix(w, s) {
			return true
		}
	}
	return false
}

func isNumeric(w string) bool {
	digits := 0
	for _, r := range w {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',' || r == '-':
		default:
			return false
		}
	}
	return digits > 0
}

func isVowel(b byte) bool { return strings.IndexByte("aeiou", b) >= 0 }

func has(m map[string]struct{}, w string) bool {
	_, ok := m[w]
	return ok
}
