package progress

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

// progressStore owns the wordId to WordProgress map and the single
// SessionStats record. Get returns domain.ErrNotFound for unknown words.
// List returns records in store order: FirstSeen ascending, then WordID.
type progressStore interface {
	Get(ctx context.Context, wordID string) (*domain.WordProgress, error)
	Set(ctx context.Context, p domain.WordProgress) error
	List(ctx context.Context) ([]domain.WordProgress, error)
	GetSessionStats(ctx context.Context) (domain.SessionStats, error)
	SetSessionStats(ctx context.Context, stats domain.SessionStats) error
	LearnerID(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock returns the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Options tunes study defaults. Zero values select the built-in defaults.
type Options struct {
	Location         *time.Location
	DefaultCapacity  int
	DefaultWeakLimit int
}

const (
	defaultCapacity  = 20
	defaultWeakLimit = 10
)

// Service implements review recording and study selection over a progress store.
type Service struct {
	store progressStore
	tx    txManager
	clock Clock
	log   *slog.Logger

	loc       *time.Location
	capacity  int
	weakLimit int
}

// NewService creates a new progress service.
func NewService(
	log *slog.Logger,
	store progressStore,
	tx txManager,
	clock Clock,
	opts Options,
) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.DefaultCapacity <= 0 {
		opts.DefaultCapacity = defaultCapacity
	}
	if opts.DefaultWeakLimit <= 0 {
		opts.DefaultWeakLimit = defaultWeakLimit
	}

	return &Service{
		store:     store,
		tx:        tx,
		clock:     clock,
		log:       log.With("service", "progress"),
		loc:       opts.Location,
		capacity:  opts.DefaultCapacity,
		weakLimit: opts.DefaultWeakLimit,
	}
}

// Now returns the current time from the injected clock.
func (s *Service) Now() time.Time { return s.clock.Now() }

func (s *Service) list(ctx context.Context) ([]domain.WordProgress, error) {
	words, err := s.store.List(ctx)
	if err != nil {
		return nil, domain.NewPersistenceError("list words", err)
	}
	return words, nil
}
