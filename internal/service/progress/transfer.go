package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
	"github.com/heartmarshall/myenglish-progress/internal/progressdoc"
)

// Reset clears all words and session stats. There is no confirmation step.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return domain.NewPersistenceError("clear store", err)
	}
	s.log.InfoContext(ctx, "progress reset")
	return nil
}

// Snapshot returns the whole store as a versioned document.
func (s *Service) Snapshot(ctx context.Context) (domain.ProgressDocument, error) {
	words, err := s.list(ctx)
	if err != nil {
		return domain.ProgressDocument{}, err
	}
	stats, err := s.store.GetSessionStats(ctx)
	if err != nil {
		return domain.ProgressDocument{}, domain.NewPersistenceError("get session stats", err)
	}
	learnerID, err := s.store.LearnerID(ctx)
	if err != nil {
		return domain.ProgressDocument{}, domain.NewPersistenceError("get learner id", err)
	}

	doc := domain.ProgressDocument{
		Version:   domain.DocumentVersion,
		LearnerID: learnerID,
		Words:     make(map[string]domain.WordProgress, len(words)),
		Stats:     stats,
	}
	for _, w := range words {
		doc.Words[w.WordID] = w
	}
	return doc, nil
}

// Export writes the store as indented JSON.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	doc, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}

	s.log.InfoContext(ctx, "progress exported", slog.Int("words", len(doc.Words)))
	return nil
}

// Import replaces the store content with the document read from r. Older
// document versions, such as 1.0 browser exports, are migrated first;
// unversioned and newer documents are rejected.
func (s *Service) Import(ctx context.Context, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read import: %w", err)
	}

	top, from, err := progressdoc.Upgrade(data)
	if err != nil {
		return 0, domain.NewValidationError("document", err.Error())
	}
	doc, err := progressdoc.ToProgressDocument(top)
	if err != nil {
		return 0, domain.NewValidationError("document", err.Error())
	}

	if err := validateDocument(doc); err != nil {
		return 0, err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.store.Clear(txCtx); err != nil {
			return domain.NewPersistenceError("clear store", err)
		}
		for _, w := range doc.Words {
			if err := s.store.Set(txCtx, w); err != nil {
				return domain.NewPersistenceError("set word", err)
			}
		}
		if err := s.store.SetSessionStats(txCtx, doc.Stats); err != nil {
			return domain.NewPersistenceError("set session stats", err)
		}
		return nil
	})
	if err != nil {
		return 0, domain.NewPersistenceError("import", err)
	}

	attrs := []any{
		slog.Int("words", len(doc.Words)),
		slog.String("learner_id", doc.LearnerID),
	}
	if from != "" {
		attrs = append(attrs, slog.String("migrated_from", from))
	}
	s.log.InfoContext(ctx, "progress imported", attrs...)
	return len(doc.Words), nil
}

func validateDocument(doc domain.ProgressDocument) error {
	var errs []domain.FieldError
	for key, w := range doc.Words {
		if err := w.Validate(); err != nil {
			errs = append(errs, domain.FieldError{Field: "words." + key, Message: err.Error()})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
