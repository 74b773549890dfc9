package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
	"github.com/heartmarshall/myenglish-progress/internal/service/catalog"
)

type catalogService interface {
	ListWords(ctx context.Context, in catalog.ListInput) (*catalog.WordPage, error)
	GetWord(ctx context.Context, id string) (*domain.CatalogWord, error)
	Stats(ctx context.Context) (domain.CatalogStats, error)
	Levels() []domain.CEFRLevel
	Categories(ctx context.Context) ([]string, error)
	Enrich(ctx context.Context, word string) (*catalog.Enrichment, error)
}

// CatalogHandler serves the vocabulary browser under /api/vocabulary.
type CatalogHandler struct {
	handler
	svc catalogService
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalogService, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{handler: newHandler(log, "catalog"), svc: svc}
}

// ListWords handles GET /api/vocabulary/words?level=&category=&search=&page=&limit=.
func (h *CatalogHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var fields []FieldError
	page := queryInt(q.Get("page"), "page", &fields)
	limit := queryInt(q.Get("limit"), "limit", &fields)
	if len(fields) > 0 {
		writeError(w, http.StatusBadRequest, "validation failed", fields...)
		return
	}

	res, err := h.svc.ListWords(r.Context(), catalog.ListInput{
		Level:    q.Get("level"),
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		h.fail(w, r, "list words", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetWord handles GET /api/vocabulary/words/{id}.
func (h *CatalogHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetWord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "get word", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Stats handles GET /api/vocabulary/stats.
func (h *CatalogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Stats(r.Context())
	if err != nil {
		h.fail(w, r, "catalog stats", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Levels handles GET /api/vocabulary/levels.
func (h *CatalogHandler) Levels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Levels())
}

// Categories handles GET /api/vocabulary/categories.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Categories(r.Context())
	if err != nil {
		h.fail(w, r, "list categories", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Enrich handles POST /api/vocabulary/enrich/{word}.
func (h *CatalogHandler) Enrich(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Enrich(r.Context(), chi.URLParam(r, "word"))
	if err != nil {
		h.fail(w, r, "enrich", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// queryInt parses an optional integer parameter. Empty is zero.
func queryInt(raw, name string, fields *[]FieldError) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*fields = append(*fields, FieldError{Field: name, Message: "must be an integer"})
		return 0
	}
	return n
}
