package catalog

import (
	"strings"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
	maxSearchLength = 256
	maxEnrollIDs    = 500
)

// filterAll matches every level or category.
const filterAll = "all"

// ListInput filters and pages the catalog. Empty or "all" Level and
// Category match everything. Search is a case-insensitive substring of the
// word. Page starts at 1; zero Page and Limit select the defaults.
type ListInput struct {
	Level    string
	Category string
	Search   string
	Page     int
	Limit    int
}

func (i *ListInput) Validate() error {
	var errs []domain.FieldError

	if lvl := i.level(); lvl != "" && !lvl.IsValid() {
		errs = append(errs, domain.FieldError{Field: "level", Message: "must be one of A1, A2, B1, B2, C1, C2 or all"})
	}
	if len(i.Search) > maxSearchLength {
		errs = append(errs, domain.FieldError{Field: "search", Message: "max 256 characters"})
	}
	if i.Page < 0 {
		errs = append(errs, domain.FieldError{Field: "page", Message: "must be non-negative"})
	}
	if i.Limit < 0 || i.Limit > maxPageSize {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be in 0..200"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// level returns the requested level, or "" for no filter.
func (i *ListInput) level() domain.CEFRLevel {
	lvl := strings.ToUpper(strings.TrimSpace(i.Level))
	if lvl == "" || strings.EqualFold(lvl, filterAll) {
		return ""
	}
	return domain.CEFRLevel(lvl)
}

func (i *ListInput) category() string {
	c := strings.TrimSpace(i.Category)
	if strings.EqualFold(c, filterAll) {
		return ""
	}
	return c
}

// EnrollInput names catalog words to start studying.
type EnrollInput struct {
	IDs []string
}

func (i *EnrollInput) Validate() error {
	switch {
	case len(i.IDs) == 0:
		return domain.NewValidationError("ids", "at least one id is required")
	case len(i.IDs) > maxEnrollIDs:
		return domain.NewValidationError("ids", "max 500 ids")
	}
	for _, id := range i.IDs {
		if strings.TrimSpace(id) == "" {
			return domain.NewValidationError("ids", "ids must not be blank")
		}
	}
	return nil
}
