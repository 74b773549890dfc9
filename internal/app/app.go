package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	catalogfile "github.com/heartmarshall/myenglish-progress/internal/adapter/catalog/jsonfile"
	"github.com/heartmarshall/myenglish-progress/internal/adapter/jsonfile"
	kvfile "github.com/heartmarshall/myenglish-progress/internal/adapter/kv/jsonfile"
	kvredis "github.com/heartmarshall/myenglish-progress/internal/adapter/kv/redis"
	"github.com/heartmarshall/myenglish-progress/internal/adapter/memory"
	"github.com/heartmarshall/myenglish-progress/internal/adapter/postgres"
	pgprogress "github.com/heartmarshall/myenglish-progress/internal/adapter/postgres/progress"
	"github.com/heartmarshall/myenglish-progress/internal/adapter/provider/analyzer"
	"github.com/heartmarshall/myenglish-progress/internal/adapter/provider/deepl"
	"github.com/heartmarshall/myenglish-progress/internal/adapter/provider/freedict"
	"github.com/heartmarshall/myenglish-progress/internal/adapter/provider/translate"
	"github.com/heartmarshall/myenglish-progress/internal/adapter/sqlite"
	sqliteprogress "github.com/heartmarshall/myenglish-progress/internal/adapter/sqlite/progress"
	"github.com/heartmarshall/myenglish-progress/internal/config"
	"github.com/heartmarshall/myenglish-progress/internal/domain"
	"github.com/heartmarshall/myenglish-progress/internal/provider"
	"github.com/heartmarshall/myenglish-progress/internal/service/catalog"
	"github.com/heartmarshall/myenglish-progress/internal/service/lookup"
	"github.com/heartmarshall/myenglish-progress/internal/service/progress"
	"github.com/heartmarshall/myenglish-progress/internal/service/story"
	"github.com/heartmarshall/myenglish-progress/internal/transport/rest"
)

type progressStore interface {
	Get(ctx context.Context, wordID string) (*domain.WordProgress, error)
	Set(ctx context.Context, p domain.WordProgress) error
	List(ctx context.Context) ([]domain.WordProgress, error)
	GetSessionStats(ctx context.Context) (domain.SessionStats, error)
	SetSessionStats(ctx context.Context, stats domain.SessionStats) error
	LearnerID(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

type dictionary interface {
	FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error)
}

type cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// App holds the wired services and the resources they own.
type App struct {
	Progress *progress.Service
	Lookup   *lookup.Service
	Catalog  *catalog.Service
	Stories  *story.Service

	log     *slog.Logger
	closers []func() error
	checks  map[string]rest.Check
}

// New builds every dependency selected by cfg. On error, resources opened
// so far are released.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *App, err error) {
	a := &App{log: logger, checks: map[string]rest.Check{}}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	store, tx, err := a.openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a.Progress = progress.NewService(logger, store, tx, progress.SystemClock{}, progress.Options{
		Location:         cfg.Study.Location,
		DefaultCapacity:  cfg.Study.DefaultCapacity,
		DefaultWeakLimit: cfg.Study.WeakLimit,
	})

	p, err := a.buildProviders(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// A nil dict or kv converts to a nil interface, which disables that step.
	a.Lookup = lookup.NewService(logger, analyzer.New(), p.translator, p.dict, p.kv, lookup.Options{
		SourceLang: cfg.Lookup.SourceLang,
		TargetLang: cfg.Lookup.TargetLang,
	})

	words, err := catalogfile.Open(cfg.Catalog.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	a.Catalog = catalog.NewService(logger, words, p.dict, p.translator, p.kv, a.Progress, catalog.Options{
		SourceLang: cfg.Lookup.SourceLang,
		TargetLang: cfg.Lookup.TargetLang,
	})

	stories, err := kvfile.Open(cfg.Stories.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("open stories: %w", err)
	}
	a.closers = append(a.closers, stories.Close)
	a.Stories = story.NewService(logger, stories)

	logger.InfoContext(ctx, "application ready",
		slog.String("version", BuildVersion()),
		slog.String("store", cfg.Store.Backend),
		slog.String("cache", cfg.Lookup.Cache),
	)

	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) (progressStore, txManager, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		s := memory.New()
		return s, s, nil

	case config.BackendFile:
		s, err := jsonfile.Open(cfg.Store.Path, a.log)
		if err != nil {
			return nil, nil, fmt.Errorf("open progress file: %w", err)
		}
		return s, s, nil

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		a.checks["store"] = pool.Ping

		if err := postgres.Migrate(ctx, pool, a.log); err != nil {
			return nil, nil, err
		}
		return pgprogress.New(pool), postgres.NewTxManager(pool), nil

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, db.Close)
		a.checks["store"] = db.PingContext

		if err := sqlite.Migrate(ctx, db, a.log); err != nil {
			return nil, nil, err
		}
		return sqliteprogress.New(db), sqlite.NewTxManager(db), nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// providers are the lookup adapters shared by the lookup and catalog services.
type providers struct {
	translator translator
	dict       dictionary
	kv         cache
}

func (a *App) buildProviders(ctx context.Context, cfg *config.Config) (providers, error) {
	var p providers

	p.translator = translate.NewStub()
	if cfg.Lookup.DeepLAPIKey != "" {
		p.translator = deepl.NewClient(cfg.Lookup.DeepLURL, cfg.Lookup.DeepLAPIKey, a.log)
	}

	if cfg.Lookup.Dictionary {
		p.dict = freedict.NewProvider(cfg.Lookup.DictionaryURL, a.log)
	}

	switch cfg.Lookup.Cache {
	case config.CacheFile:
		c, err := kvfile.Open(cfg.Lookup.CachePath, a.log)
		if err != nil {
			return p, fmt.Errorf("open lookup cache: %w", err)
		}
		p.kv = c
	case config.CacheRedis:
		c, err := kvredis.New(ctx, cfg.Redis, a.log)
		if err != nil {
			return p, fmt.Errorf("open lookup cache: %w", err)
		}
		a.checks["cache"] = c.Ping
		p.kv = c
	}
	if p.kv != nil {
		a.closers = append(a.closers, p.kv.Close)
	}

	return p, nil
}

// HealthChecks returns health checks for the networked dependencies in use.
// File and memory backends have none.
func (a *App) HealthChecks() map[string]rest.Check {
	return a.checks
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
