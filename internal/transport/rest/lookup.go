package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/myenglish-progress/internal/service/lookup"
)

type lookupService interface {
	AnalyzeWord(ctx context.Context, in lookup.AnalyzeInput) (*lookup.Analysis, error)
	Translate(ctx context.Context, in lookup.TranslateInput) (string, error)
}

// LookupHandler serves the word-lookup API used by the reader frontend.
type LookupHandler struct {
	handler
	svc lookupService
}

// NewLookupHandler creates a LookupHandler.
func NewLookupHandler(svc lookupService, log *slog.Logger) *LookupHandler {
	return &LookupHandler{handler: newHandler(log, "lookup"), svc: svc}
}

type translateRequest struct {
	Text       string `json:"text"       validate:"required,max=5000"`
	TargetLang string `json:"targetLang" validate:"omitempty,min=2,max=8"`
	SourceLang string `json:"sourceLang" validate:"omitempty,min=2,max=8"`
}

// TranslateResponse is the body of a successful /api/translate call.
type TranslateResponse struct {
	Translation string `json:"translation"`
}

type analyzeRequest struct {
	Word     string `json:"word"     validate:"required,max=256"`
	Context  string `json:"context"  validate:"max=5000"`
	FullText string `json:"fullText" validate:"max=500000"`
}

// Translate handles POST /api/translate.
func (h *LookupHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if !h.bind(w, r, &req) {
		return
	}

	translation, err := h.svc.Translate(r.Context(), lookup.TranslateInput{
		Text:   req.Text,
		Source: req.SourceLang,
		Target: req.TargetLang,
	})
	if err != nil {
		h.fail(w, r, "translate", err)
		return
	}

	writeJSON(w, http.StatusOK, TranslateResponse{Translation: translation})
}

// AnalyzeWord handles POST /api/analyze-word.
func (h *LookupHandler) AnalyzeWord(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !h.bind(w, r, &req) {
		return
	}

	res, err := h.svc.AnalyzeWord(r.Context(), lookup.AnalyzeInput{
		Word:     req.Word,
		Context:  req.Context,
		FullText: req.FullText,
	})
	if err != nil {
		h.fail(w, r, "analyze word", err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
