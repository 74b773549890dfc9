// Package provider holds the result types returned by external lookup
// adapters: dictionaries, translators and linguistic analyzers.
package provider

// DictionaryResult is the structured result from a dictionary API provider.
type DictionaryResult struct {
	Word     string        `json:"word"`
	Phonetic *string       `json:"phonetic,omitempty"`
	AudioURL *string       `json:"audioUrl,omitempty"`
	Senses   []SenseResult `json:"senses"`
}

// SenseResult represents a single word sense from an external dictionary.
type SenseResult struct {
	Definition   string   `json:"definition"`
	PartOfSpeech *string  `json:"partOfSpeech,omitempty"`
	Example      *string  `json:"example,omitempty"`
	Synonyms     []string `json:"synonyms,omitempty"`
}

// Part-of-speech labels produced by analyzers.
const (
	POSNoun         = "Noun"
	POSVerb         = "Verb"
	POSAdjective    = "Adjective"
	POSAdverb       = "Adverb"
	POSPreposition  = "Preposition"
	POSPronoun      = "Pronoun"
	POSDeterminer   = "Determiner"
	POSConjunction  = "Conjunction"
	POSNumber       = "Number"
	POSInterjection = "Interjection"
	POSUnknown      = "Unknown"
)

// Verb tense labels produced by analyzers.
const (
	TenseGerund     = "Gerund (-ing)"
	TensePast       = "Past"
	TenseParticiple = "Participle"
	TensePresent    = "Present"
	TenseBase       = "Base form"
)

// WordAnalysis is the rule-based linguistic breakdown of a single word.
// Tense is set only for verbs.
type WordAnalysis struct {
	Word        string  `json:"word"`
	POS         string  `json:"pos"`
	Tense       *string `json:"tense"`
	IsModal     bool    `json:"isModal"`
	IsAuxiliary bool    `json:"isAuxiliary"`
	Root        string  `json:"root"`
}
