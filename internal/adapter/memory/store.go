// Package memory implements a process-local progress store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

// Store keeps progress in memory. RunInTx restores the previous state when
// the callback fails. Transactions are serialized.
type Store struct {
	txMu sync.Mutex

	mu        sync.RWMutex
	learnerID string
	words     map[string]domain.WordProgress
	stats     domain.SessionStats
}

// New creates an empty Store with a fresh learner ID.
func New() *Store {
	return &Store{
		learnerID: domain.NewLearnerID(),
		words:     map[string]domain.WordProgress{},
	}
}

// Get returns a copy of the record for wordID or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, wordID string) (*domain.WordProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.words[wordID]
	if !ok {
		return nil, fmt.Errorf("word %q: %w", wordID, domain.ErrNotFound)
	}
	return &p, nil
}

// Set replaces the record for p.WordID.
func (s *Store) Set(ctx context.Context, p domain.WordProgress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.words[p.WordID] = p
	return nil
}

// List returns all records in store order.
func (s *Store) List(ctx context.Context) ([]domain.WordProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.OrderedWords(s.words), nil
}

func (s *Store) GetSessionStats(ctx context.Context) (domain.SessionStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionStats{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.stats, nil
}

func (s *Store) SetSessionStats(ctx context.Context, stats domain.SessionStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats = stats
	return nil
}

func (s *Store) LearnerID(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.learnerID, nil
}

// Clear removes all words and resets stats. The learner ID is kept.
func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = map[string]domain.WordProgress{}
	s.stats = domain.SessionStats{}
	return nil
}

// RunInTx runs fn and rolls the store back if fn returns an error or panics.
// Nested RunInTx calls deadlock.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	words := make(map[string]domain.WordProgress, len(s.words))
	for k, v := range s.words {
		words[k] = v
	}
	stats := s.stats
	s.mu.RUnlock()

	rollback := func() {
		s.mu.Lock()
		s.words = words
		s.stats = stats
		s.mu.Unlock()
	}

	defer func() {
		if r := recover(); r != nil {
			rollback()
			panic(r)
		}
	}()

	if err := fn(ctx); err != nil {
		rollback()
		return err
	}
	return nil
}
