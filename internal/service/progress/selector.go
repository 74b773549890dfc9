package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

// statusWeight is the contribution of one word to overall progress.
var statusWeight = map[domain.WordStatus]int{
	domain.WordStatusMastered:  100,
	domain.WordStatusReviewing: 75,
	domain.WordStatusLearning:  40,
	domain.WordStatusNew:       0,
}

// GetWord returns the record for wordID without creating it.
func (s *Service) GetWord(ctx context.Context, wordID string) (*domain.WordProgress, error) {
	if wordID == "" {
		return nil, domain.NewValidationError("word_id", "required")
	}

	p, err := s.store.Get(ctx, wordID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewNotFoundError("word", wordID)
	}
	if err != nil {
		return nil, domain.NewPersistenceError("get word", err)
	}
	return p, nil
}

// WordsDueForReview returns records with nextReview <= now in store order.
func (s *Service) WordsDueForReview(ctx context.Context, now time.Time) ([]domain.WordProgress, error) {
	words, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	return dueWords(words, now), nil
}

func dueWords(words []domain.WordProgress, now time.Time) []domain.WordProgress {
	due := []domain.WordProgress{}
	for _, w := range words {
		if w.IsDue(now) {
			due = append(due, w)
		}
	}
	return due
}

// OverallProgress returns the rounded mean status weight, 0 for an empty store.
func (s *Service) OverallProgress(ctx context.Context) (int, error) {
	words, err := s.list(ctx)
	if err != nil {
		return 0, err
	}
	return overallProgress(words), nil
}

func overallProgress(words []domain.WordProgress) int {
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += statusWeight[w.Status]
	}
	return int(math.Round(float64(total) / float64(len(words))))
}

// WeakWords returns reviewed words ordered by incorrect ratio, highest first.
// Ties keep store order. A zero limit selects the configured default.
func (s *Service) WeakWords(ctx context.Context, limit int) ([]domain.WordProgress, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	if limit == 0 {
		limit = s.weakLimit
	}

	words, err := s.list(ctx)
	if err != nil {
		return nil, err
	}

	weak := []domain.WordProgress{}
	for _, w := range words {
		if w.ReviewCount > 0 {
			weak = append(weak, w)
		}
	}

	slices.SortStableFunc(weak, func(a, b domain.WordProgress) int {
		ra, rb := a.IncorrectRatio(), b.IncorrectRatio()
		switch {
		case ra > rb:
			return -1
		case ra < rb:
			return 1
		}
		return 0
	})

	if len(weak) > limit {
		weak = weak[:limit]
	}
	return weak, nil
}

// RecommendedStudyQueue returns all due words followed by new words up to
// capacity. A zero capacity selects the configured default.
func (s *Service) RecommendedStudyQueue(ctx context.Context, now time.Time, capacity int) ([]domain.WordProgress, error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}
	if capacity == 0 {
		capacity = s.capacity
	}

	words, err := s.list(ctx)
	if err != nil {
		return nil, err
	}

	queue := studyQueue(words, now, capacity)

	s.log.DebugContext(ctx, "study queue built",
		slog.Int("capacity", capacity),
		slog.Int("size", len(queue)),
	)

	return queue, nil
}

func studyQueue(words []domain.WordProgress, now time.Time, capacity int) []domain.WordProgress {
	due := dueWords(words, now)
	room := max(capacity-len(due), 0)

	queue := due
	for _, w := range words {
		if room == 0 {
			break
		}
		// a due new word is already queued
		if w.Status == domain.WordStatusNew && !w.IsDue(now) {
			queue = append(queue, w)
			room--
		}
	}

	if len(queue) > capacity {
		queue = queue[:capacity]
	}
	return queue
}

// RecommendedStudyCount returns the size of the default study queue at now
// without materializing it. Due new words count once, as in the queue.
func (s *Service) RecommendedStudyCount(ctx context.Context, now time.Time) (int, error) {
	words, err := s.list(ctx)
	if err != nil {
		return 0, err
	}
	return recommendedCount(words, now, s.capacity), nil
}

func recommendedCount(words []domain.WordProgress, now time.Time, capacity int) int {
	dueCount, newCount := 0, 0
	for _, w := range words {
		switch {
		case w.IsDue(now):
			dueCount++
		case w.Status == domain.WordStatusNew:
			newCount++
		}
	}
	return min(capacity, dueCount+min(newCount, max(0, capacity-dueCount)))
}

// WordsByStatus returns records with the given status in store order.
func (s *Service) WordsByStatus(ctx context.Context, status domain.WordStatus) ([]domain.WordProgress, error) {
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}

	words, err := s.list(ctx)
	if err != nil {
		return nil, err
	}

	out := []domain.WordProgress{}
	for _, w := range words {
		if w.Status == status {
			out = append(out, w)
		}
	}
	return out, nil
}

// ProgressStats summarizes session stats, status counts and due words at now.
func (s *Service) ProgressStats(ctx context.Context, now time.Time) (domain.ProgressStats, error) {
	words, err := s.list(ctx)
	if err != nil {
		return domain.ProgressStats{}, err
	}

	stats, err := s.store.GetSessionStats(ctx)
	if err != nil {
		return domain.ProgressStats{}, domain.NewPersistenceError("get session stats", err)
	}

	counts := domain.StatusCounts{}
	for _, st := range domain.AllWordStatuses {
		counts[st] = 0
	}
	due := 0
	for _, w := range words {
		counts[w.Status]++
		if w.IsDue(now) {
			due++
		}
	}

	return domain.ProgressStats{
		SessionStats:     stats,
		StatusCounts:     counts,
		TotalWords:       len(words),
		DueForReview:     due,
		RecommendedCount: recommendedCount(words, now, s.capacity),
		OverallProgress:  overallProgress(words),
	}, nil
}
