// Package lookup analyzes words the learner clicks on: linguistic breakdown,
// translations of the word and its sentence, and dictionary senses, cached
// per word.
package lookup

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/myenglish-progress/internal/provider"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type analyzer interface {
	Analyze(word string) provider.WordAnalysis
}

type translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// dictionary returns nil, nil for unknown words.
type dictionary interface {
	FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error)
}

// cache returns domain.ErrNotFound on a miss.
type cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

const (
	defaultSourceLang = "EN"
	defaultTargetLang = "TR"
)

// Options selects translation languages. Empty values select EN to TR.
type Options struct {
	SourceLang string
	TargetLang string
}

// Service composes the lookup providers. dict and kv may be nil: the
// dictionary step or the cache is then skipped.
type Service struct {
	analyzer   analyzer
	translator translator
	dict       dictionary
	kv         cache
	clock      clock
	log        *slog.Logger

	sourceLang string
	targetLang string
}

// NewService creates a lookup service.
func NewService(
	log *slog.Logger,
	a analyzer,
	t translator,
	dict dictionary,
	kv cache,
	opts Options,
) *Service {
	if opts.SourceLang == "" {
		opts.SourceLang = defaultSourceLang
	}
	if opts.TargetLang == "" {
		opts.TargetLang = defaultTargetLang
	}

	return &Service{
		analyzer:   a,
		translator: t,
		dict:       dict,
		kv:         kv,
		clock:      systemClock{},
		log:        log.With("service", "lookup"),
		sourceLang: opts.SourceLang,
		targetLang: opts.TargetLang,
	}
}
