// Package jsonfile implements a progress store backed by a single versioned
// JSON document on disk.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
	"github.com/heartmarshall/myenglish-progress/internal/progressdoc"
	"github.com/heartmarshall/myenglish-progress/pkg/fileutil"
)

type txCtxKey struct{}

// Store keeps the document in memory and rewrites the file after every
// committed change. Writes inside RunInTx are staged and flushed once on
// commit.
type Store struct {
	path string
	log  *slog.Logger

	txMu  sync.Mutex // serializes writers and transactions
	mu    sync.RWMutex
	state progressdoc.Document
}

// Open loads the document at path, creating it when absent and migrating
// older versions in place. A corrupt or unsupported document is an error;
// the file is left untouched.
func Open(path string, log *slog.Logger) (*Store, error) {
	s := &Store{
		path: path,
		log:  log.With("adapter", "jsonfile"),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.state = progressdoc.New()
		if err := s.flush(); err != nil {
			return nil, domain.NewPersistenceError("create document", err)
		}
		s.log.Info("progress document created", slog.String("path", path))
		return s, nil
	}
	if err != nil {
		return nil, domain.NewPersistenceError("read document", err)
	}

	state, from, err := progressdoc.Decode(data)
	if err != nil {
		return nil, domain.NewPersistenceError("decode document", fmt.Errorf("%s: %w", path, err))
	}
	s.state = state

	if from != "" {
		if err := s.flush(); err != nil {
			return nil, domain.NewPersistenceError("write migrated document", err)
		}
		s.log.Info("progress document migrated",
			slog.String("path", path),
			slog.String("from", from),
			slog.String("to", domain.DocumentVersion),
		)
	}

	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string { return s.path }

func (s *Store) Get(ctx context.Context, wordID string) (*domain.WordProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.state.Doc.Words[wordID]
	if !ok {
		return nil, fmt.Errorf("word %q: %w", wordID, domain.ErrNotFound)
	}
	return &p, nil
}

func (s *Store) Set(ctx context.Context, p domain.WordProgress) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.mutate(ctx, func(d *progressdoc.Document) {
		d.Doc.Words[p.WordID] = p
	})
}

// List returns all records in store order.
func (s *Store) List(ctx context.Context) ([]domain.WordProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.OrderedWords(s.state.Doc.Words), nil
}

func (s *Store) GetSessionStats(ctx context.Context) (domain.SessionStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionStats{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Doc.Stats, nil
}

func (s *Store) SetSessionStats(ctx context.Context, stats domain.SessionStats) error {
	return s.mutate(ctx, func(d *progressdoc.Document) {
		d.Doc.Stats = stats
	})
}

func (s *Store) LearnerID(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Doc.LearnerID, nil
}

// Clear drops all words and stats, including their unknown fields. The
// learner ID and unknown top-level fields survive.
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, func(d *progressdoc.Document) {
		d.Doc.Words = map[string]domain.WordProgress{}
		d.Doc.Stats = domain.SessionStats{}
		d.WordExtra = map[string]progressdoc.RawObject{}
		d.StatsExtra = nil
	})
}

// RunInTx runs fn with writes staged in memory. On success the document is
// written once; on error or panic the in-memory state is restored and the
// file is not touched. Nested calls are not supported.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.state.Clone()
	s.mu.RUnlock()

	rollback := func() {
		s.mu.Lock()
		s.state = snapshot
		s.mu.Unlock()
	}

	defer func() {
		if r := recover(); r != nil {
			rollback()
			panic(r)
		}
	}()

	if err := fn(context.WithValue(ctx, txCtxKey{}, s)); err != nil {
		rollback()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flushLocked(); err != nil {
		s.state = snapshot
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txCtxKey{}).(*Store)
	return owner == s
}

// mutate applies fn. Outside a transaction the change is written through and
// undone if the write fails.
func (s *Store) mutate(ctx context.Context, fn func(d *progressdoc.Document)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.inTx(ctx) {
		s.mu.Lock()
		fn(&s.state)
		s.mu.Unlock()
		return nil
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Clone()
	fn(&s.state)
	if err := s.flushLocked(); err != nil {
		s.state = prev
		return err
	}
	return nil
}

func (s *Store) flush() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flushLocked()
}

// flushLocked writes the document atomically. The caller holds mu.
func (s *Store) flushLocked() error {
	data, err := progressdoc.Encode(s.state)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(s.path, data)
}
