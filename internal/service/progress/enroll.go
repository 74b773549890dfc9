package progress

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

// EnrollWord names a word to start tracking.
type EnrollWord struct {
	WordID string
	Word   string
}

// EnrollResult lists the ids that got a fresh record and the ids that
// already had one.
type EnrollResult struct {
	Added   []string `json:"added"`
	Skipped []string `json:"skipped"`
}

// Enroll creates a "new" record, due now, for every word without one.
// Existing records are left untouched. All writes share one transaction.
func (s *Service) Enroll(ctx context.Context, words []EnrollWord) (*EnrollResult, error) {
	if len(words) == 0 {
		return nil, domain.NewValidationError("words", "at least one word is required")
	}
	for _, w := range words {
		if strings.TrimSpace(w.WordID) == "" || len(w.WordID) > maxWordIDLength {
			return nil, domain.NewValidationError("word_id", "required, max 256 characters")
		}
	}

	now := s.clock.Now()
	res := &EnrollResult{Added: []string{}, Skipped: []string{}}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, w := range words {
			_, err := s.store.Get(txCtx, w.WordID)
			switch {
			case err == nil:
				res.Skipped = append(res.Skipped, w.WordID)
				continue
			case !errors.Is(err, domain.ErrNotFound):
				return domain.NewPersistenceError("get word", err)
			}

			if err := s.store.Set(txCtx, domain.NewWordProgress(w.WordID, w.Word, now)); err != nil {
				return domain.NewPersistenceError("set word", err)
			}
			res.Added = append(res.Added, w.WordID)
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewPersistenceError("enroll words", err)
	}

	s.log.InfoContext(ctx, "words enrolled",
		slog.Int("added", len(res.Added)),
		slog.Int("skipped", len(res.Skipped)),
	)

	return res, nil
}
