package lookup

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
	"github.com/heartmarshall/myenglish-progress/internal/provider"
)

// Result sources.
const (
	SourceCache = "cache"
	SourceFresh = "fresh"
)

// Analysis is the lookup result for one word. Translations are nil when the
// translator is unavailable or failed.
type Analysis struct {
	Word               string                 `json:"word"`
	NLP                provider.WordAnalysis  `json:"nlp"`
	Translation        *string                `json:"translation"`
	ContextTranslation *string                `json:"contextTranslation"`
	Sentence           string                 `json:"sentence"`
	Phonetic           *string                `json:"phonetic,omitempty"`
	Senses             []provider.SenseResult `json:"senses,omitempty"`
	Timestamp          time.Time              `json:"timestamp"`
	Source             string                 `json:"source,omitempty"`
}

// sentenceEntry is a cached context translation, shared by every word
// looked up in the same sentence.
type sentenceEntry struct {
	Sentence    string    `json:"sentence"`
	Translation string    `json:"translation"`
	Timestamp   time.Time `json:"timestamp"`
}

func cacheKey(word string) string { return "word:" + word }

// sentenceKey hashes the normalized sentence so that case and spacing
// differences share one entry.
func sentenceKey(sentence string) string {
	sum := md5.Sum([]byte(domain.NormalizeText(sentence)))
	return "sentence:" + hex.EncodeToString(sum[:])
}

// AnalyzeWord returns the cached analysis of the normalized word or builds a
// fresh one. Provider and cache failures degrade the result; only invalid
// input is an error.
func (s *Service) AnalyzeWord(ctx context.Context, in AnalyzeInput) (*Analysis, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	word := domain.NormalizeWord(in.Word)

	if cached, ok := s.cached(ctx, word); ok {
		s.log.DebugContext(ctx, "lookup cache hit", slog.String("word", word))
		cached.Source = SourceCache
		return cached, nil
	}

	sentence := strings.TrimSpace(in.Context)
	if sentence == "" {
		sentence = extractSentence(word, in.FullText)
	}

	a := &Analysis{
		Word:      word,
		NLP:       s.analyzer.Analyze(word),
		Sentence:  sentence,
		Timestamp: s.clock.Now(),
	}

	a.Translation = s.translate(ctx, word, "word")
	if sentence != "" {
		a.ContextTranslation = s.translateSentence(ctx, sentence)
	}

	if s.dict != nil {
		entry, err := s.dict.FetchEntry(ctx, word)
		switch {
		case err != nil:
			s.log.WarnContext(ctx, "dictionary lookup failed", slog.String("word", word), slog.String("error", err.Error()))
		case entry != nil:
			a.Phonetic = entry.Phonetic
			a.Senses = entry.Senses
		}
	}

	s.store(ctx, word, a)

	s.log.InfoContext(ctx, "word analyzed",
		slog.String("word", word),
		slog.String("pos", a.NLP.POS),
		slog.Bool("translated", a.Translation != nil),
		slog.Int("senses", len(a.Senses)),
	)

	a.Source = SourceFresh
	return a, nil
}

// Translate translates free text. Unlike AnalyzeWord, translator failures
// are returned to the caller.
func (s *Service) Translate(ctx context.Context, in TranslateInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	source, target := in.Source, in.Target
	if source == "" {
		source = s.sourceLang
	}
	if target == "" {
		target = s.targetLang
	}

	out, err := s.translator.Translate(ctx, strings.TrimSpace(in.Text), source, target)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	return out, nil
}

func (s *Service) translate(ctx context.Context, text, what string) *string {
	out, err := s.translator.Translate(ctx, text, s.sourceLang, s.targetLang)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, provider.ErrNotConfigured) {
			level = slog.LevelDebug
		}
		s.log.Log(ctx, level, "translation skipped", slog.String("what", what), slog.String("error", err.Error()))
		return nil
	}
	return &out
}

// translateSentence reuses a cached translation of the sentence before
// calling the translator. Only successful translations are cached.
func (s *Service) translateSentence(ctx context.Context, sentence string) *string {
	key := sentenceKey(sentence)

	var hit sentenceEntry
	if s.load(ctx, key, &hit) && hit.Translation != "" {
		s.log.DebugContext(ctx, "sentence cache hit", slog.String("key", key))
		return &hit.Translation
	}

	out := s.translate(ctx, sentence, "sentence")
	if out != nil {
		s.save(ctx, key, sentenceEntry{Sentence: sentence, Translation: *out, Timestamp: s.clock.Now()})
	}
	return out
}

func (s *Service) cached(ctx context.Context, word string) (*Analysis, bool) {
	var a Analysis
	if !s.load(ctx, cacheKey(word), &a) {
		return nil, false
	}
	return &a, true
}

func (s *Service) store(ctx context.Context, word string, a *Analysis) {
	s.save(ctx, cacheKey(word), a)
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
