package story

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

const (
	maxTitleLength = 200
	maxTextLength  = 100_000
)

// Input carries the editable fields of a story.
type Input struct {
	Title string
	Level string
	Text  string
}

func (i *Input) Validate() error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if utf8.RuneCountInString(title) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}
	if !i.level().IsValid() {
		errs = append(errs, domain.FieldError{Field: "level", Message: "must be one of A1, A2, B1, B2, C1, C2"})
	}
	if strings.TrimSpace(i.Text) == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	} else if len(i.Text) > maxTextLength {
		errs = append(errs, domain.FieldError{Field: "text", Message: "max 100000 bytes"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i *Input) level() domain.CEFRLevel {
	return domain.CEFRLevel(strings.ToUpper(strings.TrimSpace(i.Level)))
}
