package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/myenglish-progress/internal/config"
	"github.com/heartmarshall/myenglish-progress/internal/transport/middleware"
)

// Handlers groups the API handlers mounted by NewRouter.
type Handlers struct {
	Lookup  *LookupHandler
	Catalog *CatalogHandler
	Story   *StoryHandler
	Health  *HealthHandler
}

// NewRouter mounts the health checks at the root and the API under /api.
// The rate limiter applies to /api only.
func NewRouter(
	h Handlers,
	limiter *middleware.RateLimiter,
	cfg *config.Config,
	log *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Default(log, cfg.CORS))

	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.Limit(cfg.Server.RateLimit))
		r.Post("/translate", h.Lookup.Translate)
		r.Post("/analyze-word", h.Lookup.AnalyzeWord)

		r.Route("/vocabulary", func(r chi.Router) {
			r.Get("/words", h.Catalog.ListWords)
			r.Get("/words/{id}", h.Catalog.GetWord)
			r.Get("/levels", h.Catalog.Levels)
			r.Get("/categories", h.Catalog.Categories)
			r.Get("/stats", h.Catalog.Stats)
			r.Post("/enrich/{word}", h.Catalog.Enrich)
		})

		r.Post("/admin/verify", h.Story.Verify)
		r.Route("/stories", func(r chi.Router) {
			r.Get("/", h.Story.List)
			r.Get("/{id}", h.Story.Get)
			r.Group(func(r chi.Router) {
				r.Use(h.Story.RequireAdmin())
				r.Post("/", h.Story.Create)
				r.Put("/{id}", h.Story.Update)
				r.Delete("/{id}", h.Story.Delete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
