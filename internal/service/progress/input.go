package progress

import (
	"strings"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

const maxWordIDLength = 256

// RecordReviewInput holds the parameters for one review event.
type RecordReviewInput struct {
	WordID     string
	Word       string
	Difficulty domain.Difficulty
}

// Validate checks all fields and collects all errors.
func (i *RecordReviewInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.WordID) == "" {
		errs = append(errs, domain.FieldError{Field: "word_id", Message: "required"})
	} else if len(i.WordID) > maxWordIDLength {
		errs = append(errs, domain.FieldError{Field: "word_id", Message: "max 256 characters"})
	}
	if !i.Difficulty.IsValid() {
		errs = append(errs, domain.FieldError{Field: "difficulty", Message: "must be hard, medium, or easy"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateCapacity(capacity int) error {
	if capacity < 0 {
		return domain.NewValidationError("capacity", "must be non-negative")
	}
	return nil
}

func validateLimit(limit int) error {
	if limit < 0 {
		return domain.NewValidationError("limit", "must be non-negative")
	}
	return nil
}
