package lookup

import (
	"strings"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

const (
	maxWordLength = 256
	maxTextLength = 5000
)

// AnalyzeInput describes a clicked word. Context is the sentence it
// appeared in; when empty the sentence is looked up in FullText.
type AnalyzeInput struct {
	Word     string
	Context  string
	FullText string
}

func (i *AnalyzeInput) Validate() error {
	var errs []domain.FieldError

	word := domain.NormalizeWord(i.Word)
	if word == "" {
		errs = append(errs, domain.FieldError{Field: "word", Message: "required"})
	} else if len(word) > maxWordLength {
		errs = append(errs, domain.FieldError{Field: "word", Message: "max 256 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// TranslateInput is a free-text translation request. Empty languages fall
// back to the service defaults.
type TranslateInput struct {
	Text   string
	Source string
	Target string
}

func (i *TranslateInput) Validate() error {
	var errs []domain.FieldError

	text := strings.TrimSpace(i.Text)
	if text == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	} else if len(text) > maxTextLength {
		errs = append(errs, domain.FieldError{Field: "text", Message: "max 5000 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
