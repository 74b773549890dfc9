package domain

import (
	"slices"
	"time"
)

// CatalogWord is one entry of the curated word list learners pick words
// from. ID is the wordId its progress record is stored under.
type CatalogWord struct {
	ID               string    `json:"id"`
	Word             string    `json:"word"`
	CEFRLevel        CEFRLevel `json:"cefrLevel"`
	PartOfSpeech     string    `json:"partOfSpeech,omitempty"`
	Frequency        string    `json:"frequency,omitempty"`
	Categories       []string  `json:"categories,omitempty"`
	BasicDefinition  string    `json:"basicDefinition,omitempty"`
	BasicTranslation string    `json:"basicTranslation,omitempty"`
}

// HasCategory reports whether the word is tagged with category.
func (w CatalogWord) HasCategory(category string) bool {
	return slices.Contains(w.Categories, category)
}

// CatalogMetadata describes where a word list came from.
type CatalogMetadata struct {
	Version     string     `json:"version,omitempty"`
	TotalWords  int        `json:"totalWords,omitempty"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
	Source      string     `json:"source,omitempty"`
}

// CatalogStats counts catalog words per level and per category. A word
// with several categories is counted once in each.
type CatalogStats struct {
	TotalWords     int               `json:"totalWords"`
	LevelCounts    map[CEFRLevel]int `json:"levelCounts"`
	CategoryCounts map[string]int    `json:"categoryCounts"`
	Metadata       CatalogMetadata   `json:"metadata"`
}

// Story is a graded reading text the learner clicks words in.
type Story struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Level     CEFRLevel `json:"level"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}
