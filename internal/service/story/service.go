// Package story manages the graded reading texts shown in the reader. The
// whole collection is kept as one JSON value in a key-value store.
package story

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

// store returns domain.ErrNotFound on a miss.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

const collectionKey = "stories"

// Service implements story CRUD. Writes are serialized within the process;
// two processes sharing one store can lose each other's writes.
type Service struct {
	kv    store
	clock clock
	log   *slog.Logger
	newID func() string

	mu sync.Mutex
}

// NewService creates a story service.
func NewService(log *slog.Logger, kv store) *Service {
	return &Service{
		kv:    kv,
		clock: systemClock{},
		log:   log.With("service", "story"),
		newID: uuid.NewString,
	}
}

// List returns stories oldest first. A non-empty level keeps only that level.
func (s *Service) List(ctx context.Context, level string) ([]domain.Story, error) {
	var want domain.CEFRLevel
	if lvl := strings.ToUpper(strings.TrimSpace(level)); lvl != "" && lvl != "ALL" {
		want = domain.CEFRLevel(lvl)
		if !want.IsValid() {
			return nil, domain.NewValidationError("level", "must be one of A1, A2, B1, B2, C1, C2 or all")
		}
	}

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if want == "" {
		return all, nil
	}

	out := []domain.Story{}
	for _, st := range all {
		if st.Level == want {
			out = append(out, st)
		}
	}
	return out, nil
}

// Get returns the story with the given id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Story, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(all, id); i >= 0 {
		return &all[i], nil
	}
	return nil, domain.NewNotFoundError("story", id)
}

// Create adds a story with a fresh id.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Story, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	st := domain.Story{
		ID:        s.newID(),
		Title:     strings.TrimSpace(in.Title),
		Level:     in.level(),
		Text:      in.Text,
		CreatedAt: s.clock.Now(),
	}
	if err := s.save(ctx, append(all, st)); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "story created", slog.String("id", st.ID), slog.String("level", st.Level.String()))
	return &st, nil
}

// Update replaces title, level and text of an existing story.
func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Story, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(all, id)
	if i < 0 {
		return nil, domain.NewNotFoundError("story", id)
	}

	all[i].Title = strings.TrimSpace(in.Title)
	all[i].Level = in.level()
	all[i].Text = in.Text
	all[i].UpdatedAt = s.clock.Now()

	if err := s.save(ctx, all); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "story updated", slog.String("id", id))
	st := all[i]
	return &st, nil
}

// Delete removes a story.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(all, id)
	if i < 0 {
		return domain.NewNotFoundError("story", id)
	}

	if err := s.save(ctx, slices.Delete(all, i, i+1)); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "story deleted", slog.String("id", id))
	return nil
}

func indexOf(all []domain.Story, id string) int {
	return slices.IndexFunc(all, func(st domain.Story) bool { return st.ID == id })
}

func (s *Service) load(ctx context.Context) ([]domain.Story, error) {
	raw, err := s.kv.Get(ctx, collectionKey)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.Story{}, nil
	}
	if err != nil {
		return nil, domain.NewPersistenceError("get stories", err)
	}

	var all []domain.Story
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, domain.NewPersistenceError("decode stories", err)
	}
	if all == nil {
		all = []domain.Story{}
	}
	return all, nil
}

func (s *Service) save(ctx context.Context, all []domain.Story) error {
	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode stories: %w", err)
	}
	if err := s.kv.Set(ctx, collectionKey, raw); err != nil {
		return domain.NewPersistenceError("set stories", err)
	}
	return nil
}
