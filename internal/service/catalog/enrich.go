package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
	"github.com/heartmarshall/myenglish-progress/internal/provider"
)

// Result sources.
const (
	SourceCache = "cache"
	SourceFresh = "fresh"
)

const (
	maxDefinitions = 3
	maxExamples    = 3
	maxSynonyms    = 5
)

// Example is a dictionary example sentence with its translation. Translation
// is nil when the translator is unavailable or failed.
type Example struct {
	English     string  `json:"english"`
	Translation *string `json:"translation"`
}

// Enrichment is the study-card detail of one word. Level and CatalogID are
// set when the word is in the catalog.
type Enrichment struct {
	Word             string           `json:"word"`
	CatalogID        string           `json:"catalogId,omitempty"`
	Level            domain.CEFRLevel `json:"cefrLevel,omitempty"`
	Phonetic         *string          `json:"phonetic,omitempty"`
	AudioURL         *string          `json:"audioUrl,omitempty"`
	PartOfSpeech     string           `json:"partOfSpeech,omitempty"`
	Definitions      []string         `json:"definitions"`
	ExampleSentences []Example        `json:"exampleSentences"`
	Synonyms         []string         `json:"synonyms"`
	Timestamp        time.Time        `json:"timestamp"`
	Source           string           `json:"source,omitempty"`
}

func enrichKey(word string) string { return "enrich:" + word }

// Enrich returns the cached enrichment of the normalized word or builds one
// from the dictionary. Example translation failures degrade the result.
// A word the dictionary does not know is domain.ErrNotFound.
func (s *Service) Enrich(ctx context.Context, word string) (*Enrichment, error) {
	word = domain.NormalizeWord(word)
	switch {
	case word == "":
		return nil, domain.NewValidationError("word", "required")
	case len(word) > maxSearchLength:
		return nil, domain.NewValidationError("word", "max 256 characters")
	}

	var hit Enrichment
	if s.load(ctx, enrichKey(word), &hit) {
		s.log.DebugContext(ctx, "enrichment cache hit", slog.String("word", word))
		hit.Source = SourceCache
		return &hit, nil
	}

	if s.dict == nil {
		return nil, fmt.Errorf("enrich %q: dictionary: %w", word, provider.ErrNotConfigured)
	}
	entry, err := s.dict.FetchEntry(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("enrich %q: %w", word, err)
	}
	if entry == nil {
		return nil, domain.NewNotFoundError("dictionary entry", word)
	}

	e := s.build(ctx, word, entry)

	if cw, err := s.GetWordByText(ctx, word); err == nil {
		e.CatalogID = cw.ID
		e.Level = cw.CEFRLevel
	}

	s.save(ctx, enrichKey(word), e)

	s.log.InfoContext(ctx, "word enriched",
		slog.String("word", word),
		slog.Int("definitions", len(e.Definitions)),
		slog.Int("examples", len(e.ExampleSentences)),
	)

	e.Source = SourceFresh
	return e, nil
}

func (s *Service) build(ctx context.Context, word string, entry *provider.DictionaryResult) *Enrichment {
	e := &Enrichment{
		Word:             word,
		Phonetic:         entry.Phonetic,
		AudioURL:         entry.AudioURL,
		Definitions:      []string{},
		ExampleSentences: []Example{},
		Synonyms:         []string{},
		Timestamp:        s.clock.Now(),
	}

	seen := map[string]struct{}{}
	for _, sense := range entry.Senses {
		if e.PartOfSpeech == "" && sense.PartOfSpeech != nil {
			e.PartOfSpeech = *sense.PartOfSpeech
		}
		if sense.Definition != "" && len(e.Definitions) < maxDefinitions {
			e.Definitions = append(e.Definitions, sense.Definition)
		}
		if sense.Example != nil && *sense.Example != "" && len(e.ExampleSentences) < maxExamples {
			e.ExampleSentences = append(e.ExampleSentences, Example{
				English:     *sense.Example,
				Translation: s.translate(ctx, *sense.Example),
			})
		}
		for _, syn := range sense.Synonyms {
			if _, dup := seen[syn]; dup || len(e.Synonyms) == maxSynonyms {
				continue
			}
			seen[syn] = struct{}{}
			e.Synonyms = append(e.Synonyms, syn)
		}
	}
	return e
}

func (s *Service) translate(ctx context.Context, text string) *string {
	if s.translator == nil {
		return nil
	}
	out, err := s.translator.Translate(ctx, text, s.sourceLang, s.targetLang)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, provider.ErrNotConfigured) {
			level = slog.LevelDebug
		}
		s.log.Log(ctx, level, "example translation skipped", slog.String("error", err.Error()))
		return nil
	}
	return &out
}

// load decodes the entry under key into dst. Misses, read failures and
// unreadable entries all report false.
func (s *Service) load(ctx context.Context, key string, dst any) bool {
	if s.kv == nil {
		return false
	}

	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.WarnContext(ctx, "cache entry unreadable", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (s *Service) save(ctx context.Context, key string, v any) {
	if s.kv == nil {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		s.log.WarnContext(ctx, "cache encode failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		s.log.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
