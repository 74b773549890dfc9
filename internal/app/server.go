package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/myenglish-progress/internal/config"
	"github.com/heartmarshall/myenglish-progress/internal/transport/middleware"
	"github.com/heartmarshall/myenglish-progress/internal/transport/rest"
)

// Handler builds the HTTP API. The returned stop func ends the rate
// limiter's cleanup goroutine.
func (a *App) Handler(cfg *config.Config) (http.Handler, func()) {
	limiter := middleware.NewRateLimiter(time.Minute)

	h := rest.NewRouter(rest.Handlers{
		Lookup:  rest.NewLookupHandler(a.Lookup, a.log),
		Catalog: rest.NewCatalogHandler(a.Catalog, a.log),
		Story:   rest.NewStoryHandler(a.Stories, cfg.Admin.Token, a.log),
		Health:  rest.NewHealthHandler(BuildVersion(), a.HealthChecks()),
	}, limiter, cfg, a.log)
	return h, limiter.Stop
}

// Serve runs the HTTP API until ctx is canceled, then drains in-flight
// requests within cfg.Server.ShutdownTimeout.
func (a *App) Serve(ctx context.Context, cfg *config.Config) error {
	ln, err := net.Listen("tcp", net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return a.serve(ctx, cfg, ln)
}

func (a *App) serve(ctx context.Context, cfg *config.Config, ln net.Listener) error {
	handler, stop := a.Handler(cfg)
	defer stop()

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
		ErrorLog:          slog.NewLogLogger(a.log.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
