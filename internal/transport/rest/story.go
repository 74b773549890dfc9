package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
	"github.com/heartmarshall/myenglish-progress/internal/service/story"
	"github.com/heartmarshall/myenglish-progress/internal/transport/middleware"
)

type storyService interface {
	List(ctx context.Context, level string) ([]domain.Story, error)
	Get(ctx context.Context, id string) (*domain.Story, error)
	Create(ctx context.Context, in story.Input) (*domain.Story, error)
	Update(ctx context.Context, id string, in story.Input) (*domain.Story, error)
	Delete(ctx context.Context, id string) error
}

// StoryHandler serves reading texts. Writes sit behind the admin token.
type StoryHandler struct {
	handler
	svc        storyService
	adminToken string
}

// NewStoryHandler creates a StoryHandler. An empty adminToken disables
// every write and the admin login.
func NewStoryHandler(svc storyService, adminToken string, log *slog.Logger) *StoryHandler {
	return &StoryHandler{handler: newHandler(log, "story"), svc: svc, adminToken: adminToken}
}

type storyRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Level string `json:"level" validate:"required,max=8"`
	Text  string `json:"text"  validate:"required,max=100000"`
}

func (req storyRequest) input() story.Input {
	return story.Input{Title: req.Title, Level: req.Level, Text: req.Text}
}

type verifyRequest struct {
	Password string `json:"password" validate:"required,max=256"`
}

// VerifyResponse carries the bearer token for story writes.
type VerifyResponse struct {
	Token string `json:"token"`
}

// List handles GET /api/stories?level=.
func (h *StoryHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.List(r.Context(), r.URL.Query().Get("level"))
	if err != nil {
		h.fail(w, r, "list stories", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Get handles GET /api/stories/{id}.
func (h *StoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "get story", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Create handles POST /api/stories.
func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req storyRequest
	if !h.bind(w, r, &req) {
		return
	}
	res, err := h.svc.Create(r.Context(), req.input())
	if err != nil {
		h.fail(w, r, "create story", err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// Update handles PUT /api/stories/{id}.
func (h *StoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req storyRequest
	if !h.bind(w, r, &req) {
		return
	}
	res, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		h.fail(w, r, "update story", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Delete handles DELETE /api/stories/{id}.
func (h *StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "delete story", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Verify handles POST /api/admin/verify. The admin password is the token.
func (h *StoryHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !h.bind(w, r, &req) {
		return
	}
	if !middleware.TokenMatches(h.adminToken, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid password")
		return
	}
	writeJSON(w, http.StatusOK, VerifyResponse{Token: req.Password})
}

// RequireAdmin guards the write routes.
func (h *StoryHandler) RequireAdmin() middleware.Middleware {
	return middleware.RequireToken(h.adminToken)
}
