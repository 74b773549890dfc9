// Package catalog serves the curated word list: filtered browsing, stats,
// dictionary enrichment of catalog words, and enrollment of catalog words
// into the learner's progress.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
	"github.com/heartmarshall/myenglish-progress/internal/provider"
	"github.com/heartmarshall/myenglish-progress/internal/service/progress"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

// wordSource returns catalog entries in list order.
type wordSource interface {
	Words(ctx context.Context) ([]domain.CatalogWord, error)
	Metadata(ctx context.Context) (domain.CatalogMetadata, error)
}

// dictionary returns nil, nil for unknown words.
type dictionary interface {
	FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error)
}

type translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// cache returns domain.ErrNotFound on a miss.
type cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type enroller interface {
	Enroll(ctx context.Context, words []progress.EnrollWord) (*progress.EnrollResult, error)
}

type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Options selects translation languages for enrichment examples. Empty
// values select EN to TR.
type Options struct {
	SourceLang string
	TargetLang string
}

// Service implements catalog browsing and enrichment. dict and kv may be
// nil: Enrich then fails with provider.ErrNotConfigured, or skips the cache.
type Service struct {
	words      wordSource
	dict       dictionary
	translator translator
	kv         cache
	progress   enroller
	clock      clock
	log        *slog.Logger

	sourceLang string
	targetLang string
}

// NewService creates a catalog service.
func NewService(
	log *slog.Logger,
	words wordSource,
	dict dictionary,
	t translator,
	kv cache,
	enroll enroller,
	opts Options,
) *Service {
	if opts.SourceLang == "" {
		opts.SourceLang = "EN"
	}
	if opts.TargetLang == "" {
		opts.TargetLang = "TR"
	}

	return &Service{
		words:      words,
		dict:       dict,
		translator: t,
		kv:         kv,
		progress:   enroll,
		clock:      systemClock{},
		log:        log.With("service", "catalog"),
		sourceLang: opts.SourceLang,
		targetLang: opts.TargetLang,
	}
}

func (s *Service) all(ctx context.Context) ([]domain.CatalogWord, error) {
	words, err := s.words.Words(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return words, nil
}
