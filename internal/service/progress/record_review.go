package progress

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

// RecordReview applies one review at the clock's current time.
func (s *Service) RecordReview(ctx context.Context, input RecordReviewInput) (*domain.WordProgress, error) {
	return s.RecordReviewAt(ctx, input, s.clock.Now())
}

// RecordReviewAt applies one review at now. A missing record is created.
// The word and the session stats are written in one transaction; on any
// store failure nothing is committed and a PersistenceError is returned.
func (s *Service) RecordReviewAt(ctx context.Context, input RecordReviewInput, now time.Time) (*domain.WordProgress, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		updated domain.WordProgress
		created bool
		stats   domain.SessionStats
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.store.Get(txCtx, input.WordID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			fresh := domain.NewWordProgress(input.WordID, input.Word, now)
			current = &fresh
			created = true
		case err != nil:
			return domain.NewPersistenceError("get word", err)
		}

		updated = applyReview(*current, input, now)

		if err := s.store.Set(txCtx, updated); err != nil {
			return domain.NewPersistenceError("set word", err)
		}

		words, err := s.store.List(txCtx)
		if err != nil {
			return domain.NewPersistenceError("list words", err)
		}

		prevStats, err := s.store.GetSessionStats(txCtx)
		if err != nil {
			return domain.NewPersistenceError("get session stats", err)
		}

		stats = UpdateStreak(summarize(prevStats, words), now, s.loc)

		if err := s.store.SetSessionStats(txCtx, stats); err != nil {
			return domain.NewPersistenceError("set session stats", err)
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewPersistenceError("record review", err)
	}

	s.log.InfoContext(ctx, "review recorded",
		slog.String("word_id", updated.WordID),
		slog.String("difficulty", input.Difficulty.String()),
		slog.String("status", updated.Status.String()),
		slog.Int("score", updated.RecognitionScore),
		slog.Bool("created", created),
		slog.Int("streak", stats.CurrentStreak),
	)

	return &updated, nil
}

// applyReview returns the full replacement record for prev after one review.
func applyReview(prev domain.WordProgress, input RecordReviewInput, now time.Time) domain.WordProgress {
	res := Evaluate(prev, input.Difficulty)
	next := NextReviewDate(prev.ReviewCount, input.Difficulty, now)
	reviewed := now

	updated := prev
	if input.Word != "" {
		updated.Word = input.Word
	}
	updated.ReviewCount = res.ReviewCount
	updated.CorrectCount = res.CorrectCount
	updated.IncorrectCount = res.IncorrectCount
	updated.RecognitionScore = res.RecognitionScore
	updated.Status = res.Status
	updated.ConfidenceLevel = res.ConfidenceLevel
	updated.LastReviewed = &reviewed
	updated.NextReview = &next

	return updated
}
