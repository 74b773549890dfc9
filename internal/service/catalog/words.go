package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
	"github.com/heartmarshall/myenglish-progress/internal/service/progress"
)

// WordPage is one page of a filtered catalog listing. Total counts every
// match, not just this page.
type WordPage struct {
	Words      []domain.CatalogWord `json:"words"`
	Total      int                  `json:"total"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"totalPages"`
}

// ListWords filters the catalog by level, category and search text, then
// returns the requested page in list order. A page past the end is empty.
func (s *Service) ListWords(ctx context.Context, in ListInput) (*WordPage, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	words, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	level, category := in.level(), in.category()
	search := strings.ToLower(strings.TrimSpace(in.Search))

	matched := make([]domain.CatalogWord, 0, len(words))
	for _, w := range words {
		if level != "" && w.CEFRLevel != level {
			continue
		}
		if category != "" && !w.HasCategory(category) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(w.Word), search) {
			continue
		}
		matched = append(matched, w)
	}

	page := max(in.Page, 1)
	limit := in.Limit
	if limit == 0 {
		limit = defaultPageSize
	}

	start := min((page-1)*limit, len(matched))
	end := min(start+limit, len(matched))

	return &WordPage{
		Words:      matched[start:end],
		Total:      len(matched),
		Page:       page,
		Limit:      limit,
		TotalPages: (len(matched) + limit - 1) / limit,
	}, nil
}

// GetWord returns the catalog entry with the given id.
func (s *Service) GetWord(ctx context.Context, id string) (*domain.CatalogWord, error) {
	words, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	for _, w := range words {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, domain.NewNotFoundError("catalog word", id)
}

// GetWordByText returns the first entry whose word matches text, ignoring
// case and surrounding space.
func (s *Service) GetWordByText(ctx context.Context, text string) (*domain.CatalogWord, error) {
	words, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	want := domain.NormalizeText(text)
	for _, w := range words {
		if domain.NormalizeText(w.Word) == want {
			return &w, nil
		}
	}
	return nil, domain.NewNotFoundError("catalog word", text)
}

// Stats counts catalog words per level and per category.
func (s *Service) Stats(ctx context.Context) (domain.CatalogStats, error) {
	words, err := s.all(ctx)
	if err != nil {
		return domain.CatalogStats{}, err
	}
	meta, err := s.words.Metadata(ctx)
	if err != nil {
		return domain.CatalogStats{}, fmt.Errorf("load catalog metadata: %w", err)
	}

	stats := domain.CatalogStats{
		TotalWords:     len(words),
		LevelCounts:    map[domain.CEFRLevel]int{},
		CategoryCounts: map[string]int{},
		Metadata:       meta,
	}
	for _, w := range words {
		stats.LevelCounts[w.CEFRLevel]++
		for _, c := range w.Categories {
			stats.CategoryCounts[c]++
		}
	}
	return stats, nil
}

// Levels lists the CEFR levels in order, whether or not any word uses them.
func (s *Service) Levels() []domain.CEFRLevel {
	return slices.Clone(domain.AllCEFRLevels)
}

// Categories lists every category used by a catalog word, sorted.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	words, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	out := []string{}
	for _, w := range words {
		for _, c := range w.Categories {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out, nil
}

// Enroll starts tracking the catalog words with the given ids. Unknown ids
// fail the whole call before anything is written.
func (s *Service) Enroll(ctx context.Context, in EnrollInput) (*progress.EnrollResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	words, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.CatalogWord, len(words))
	for _, w := range words {
		byID[w.ID] = w
	}

	enroll := make([]progress.EnrollWord, 0, len(in.IDs))
	var unknown []string
	for _, id := range in.IDs {
		w, ok := byID[strings.TrimSpace(id)]
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		enroll = append(enroll, progress.EnrollWord{WordID: w.ID, Word: w.Word})
	}
	if len(unknown) > 0 {
		return nil, domain.NewValidationError("ids", "unknown catalog ids: "+strings.Join(unknown, ", "))
	}

	res, err := s.progress.Enroll(ctx, enroll)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "catalog words enrolled",
		slog.Int("requested", len(in.IDs)),
		slog.Int("added", len(res.Added)),
	)
	return res, nil
}
