package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

// chdirTemp moves the test into an empty directory so neither config.yaml
// nor .env.local are picked up from the package dir.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	return dir
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  rate_limit: 30

cors:
  allowed_origins: "http://localhost:3000"

log:
  level: "debug"
  format: "json"

store:
  backend: "sqlite"
  path: "/tmp/unused.json"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2
  health_check_period: "30s"

sqlite:
  path: "/var/lib/vocab/progress.db"
  busy_timeout: "2s"

study:
  timezone: "Europe/Istanbul"
  default_capacity: 15
  weak_limit: 5

lookup:
  deepl_api_key: "key-from-yaml"
  target_lang: "DE"
  cache: "redis"

redis:
  addr: "redis:6379"
  db: 2
  ttl: "24h"

catalog:
  path: "/srv/vocab/oxford3000.json"

admin:
  token: "correct-horse"
`

func TestLoad_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9090 {
		t.Errorf("server = %s:%d, want 127.0.0.1:9090", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("server.write_timeout = %v, want 30s (default)", cfg.Server.WriteTimeout)
	}
	if cfg.Server.RateLimit != 30 {
		t.Errorf("server.rate_limit = %d, want 30", cfg.Server.RateLimit)
	}
	if cfg.CORS.AllowedOrigins != "http://localhost:3000" || cfg.CORS.AllowedMethods != "GET,POST,PUT,DELETE,OPTIONS" {
		t.Errorf("cors = %+v", cfg.CORS)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v, want debug/json", cfg.Log)
	}
	if cfg.Store.Backend != BackendSQLite {
		t.Errorf("store.backend = %q, want sqlite", cfg.Store.Backend)
	}
	if cfg.SQLite.Path != "/var/lib/vocab/progress.db" {
		t.Errorf("sqlite.path = %q", cfg.SQLite.Path)
	}
	if cfg.SQLite.BusyTimeout != 2*time.Second {
		t.Errorf("sqlite.busy_timeout = %v, want 2s", cfg.SQLite.BusyTimeout)
	}
	if cfg.Database.MaxConns != 10 || cfg.Database.MinConns != 2 {
		t.Errorf("database conns = %d/%d, want 2/10", cfg.Database.MinConns, cfg.Database.MaxConns)
	}
	if cfg.Database.HealthCheckPeriod != 30*time.Second {
		t.Errorf("database.health_check_period = %v, want 30s", cfg.Database.HealthCheckPeriod)
	}
	if cfg.Study.DefaultCapacity != 15 || cfg.Study.WeakLimit != 5 {
		t.Errorf("study = %+v", cfg.Study)
	}
	if cfg.Study.Location == nil || cfg.Study.Location.String() != "Europe/Istanbul" {
		t.Errorf("study.location = %v, want Europe/Istanbul", cfg.Study.Location)
	}
	if cfg.Lookup.DeepLAPIKey != "key-from-yaml" || cfg.Lookup.TargetLang != "DE" {
		t.Errorf("lookup = %+v", cfg.Lookup)
	}
	if cfg.Lookup.SourceLang != "EN" {
		t.Errorf("lookup.source_lang = %q, want EN (default)", cfg.Lookup.SourceLang)
	}
	if cfg.Redis.Addr != "redis:6379" || cfg.Redis.DB != 2 || cfg.Redis.TTL != 24*time.Hour {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	if cfg.Catalog.Path != "/srv/vocab/oxford3000.json" {
		t.Errorf("catalog.path = %q", cfg.Catalog.Path)
	}
	if cfg.Stories.Path != "./data/stories.json" {
		t.Errorf("stories.path = %q, want default", cfg.Stories.Path)
	}
	if cfg.Admin.Token != "correct-horse" {
		t.Errorf("admin.token = %q", cfg.Admin.Token)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("STUDY_DEFAULT_CAPACITY", "30")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("SERVER_PORT", "3000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Study.DefaultCapacity != 30 {
		t.Errorf("study.default_capacity = %d, want 30 (ENV override)", cfg.Study.DefaultCapacity)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
}

func TestLoad_NoFile_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 || cfg.Server.RateLimit != 120 {
		t.Errorf("server defaults = %d/%d, want 8080/120", cfg.Server.Port, cfg.Server.RateLimit)
	}
	if cfg.Store.Backend != BackendFile {
		t.Errorf("store.backend = %q, want file (default)", cfg.Store.Backend)
	}
	if cfg.Store.Path != "./data/progress.json" {
		t.Errorf("store.path = %q", cfg.Store.Path)
	}
	if cfg.Study.DefaultCapacity != 20 || cfg.Study.WeakLimit != 10 {
		t.Errorf("study defaults = %d/%d, want 20/10", cfg.Study.DefaultCapacity, cfg.Study.WeakLimit)
	}
	if cfg.Study.Location != time.UTC {
		t.Errorf("study.location = %v, want UTC", cfg.Study.Location)
	}
	if cfg.Lookup.Cache != CacheFile || cfg.Lookup.TargetLang != "TR" {
		t.Errorf("lookup defaults = %+v", cfg.Lookup)
	}
	if cfg.Catalog.Path != "./data/oxford3000.json" || cfg.Admin.Token != "" {
		t.Errorf("catalog/admin defaults = %q/%q", cfg.Catalog.Path, cfg.Admin.Token)
	}
}

func TestLoad_DotEnvLocal(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	dir := chdirTemp(t)

	const key = "DEEPL_API_KEY"
	if _, set := os.LookupEnv(key); set {
		t.Skipf("%s already set in the environment", key)
	}
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	if err := os.WriteFile(filepath.Join(dir, DotEnvFile), []byte(key+"=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Lookup.DeepLAPIKey != "from-dotenv" {
		t.Errorf("lookup.deepl_api_key = %q, want from-dotenv", cfg.Lookup.DeepLAPIKey)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoadFrom_ExplicitPathIgnoresConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")
	chdirTemp(t)
	path := writeYAML(t, t.TempDir(), "server:\n  port: 7070\n")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("server.port = %d, want 7070", cfg.Server.Port)
	}
}

func TestLoadFrom_DefaultPathPickedUp(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	dir := chdirTemp(t)
	writeYAML(t, dir, "study:\n  weak_limit: 3\n")

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Study.WeakLimit != 3 {
		t.Errorf("study.weak_limit = %d, want 3 from ./config.yaml", cfg.Study.WeakLimit)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, "port must be"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "port must be"},
		{"zero write timeout", func(c *Config) { c.Server.WriteTimeout = 0 }, "timeouts"},
		{"negative rate limit", func(c *Config) { c.Server.RateLimit = -1 }, "rate_limit"},
		{"rate limit disabled", func(c *Config) { c.Server.RateLimit = 0 }, ""},
		{"backend case-insensitive", func(c *Config) { c.Store.Backend = " Memory " }, ""},
		{"unknown backend", func(c *Config) { c.Store.Backend = "mongo" }, "backend must be one of"},
		{"file without path", func(c *Config) { c.Store.Path = "" }, "path is required"},
		{"postgres without dsn", func(c *Config) { c.Store.Backend = BackendPostgres }, "database.dsn"},
		{"postgres bad pool", func(c *Config) {
			c.Store.Backend = BackendPostgres
			c.Database.DSN = "postgres://x"
			c.Database.MinConns = 5
		}, "max_conns"},
		{"sqlite without path", func(c *Config) {
			c.Store.Backend = BackendSQLite
			c.SQLite.Path = ""
		}, "sqlite.path"},
		{"zero capacity", func(c *Config) { c.Study.DefaultCapacity = 0 }, "default_capacity"},
		{"zero weak limit", func(c *Config) { c.Study.WeakLimit = 0 }, "weak_limit"},
		{"bad timezone", func(c *Config) { c.Study.Timezone = "Mars/Olympus" }, "timezone"},
		{"unknown cache", func(c *Config) { c.Lookup.Cache = "memcached" }, "cache must be one of"},
		{"file cache without path", func(c *Config) { c.Lookup.CachePath = "" }, "cache_path"},
		{"no cache needs no path", func(c *Config) {
			c.Lookup.Cache = CacheNone
			c.Lookup.CachePath = ""
		}, ""},
		{"empty target lang", func(c *Config) { c.Lookup.TargetLang = " " }, "target_lang"},
		{"redis without addr", func(c *Config) {
			c.Lookup.Cache = CacheRedis
			c.Redis.Addr = ""
		}, "redis.addr"},
		{"negative ttl", func(c *Config) { c.Redis.TTL = -time.Second }, "redis.ttl"},
		{"catalog without path", func(c *Config) { c.Catalog.Path = "" }, "catalog.path"},
		{"stories without path", func(c *Config) { c.Stories.Path = " " }, "stories.path"},
		{"short admin token", func(c *Config) { c.Admin.Token = "admin" }, "admin.token"},
		{"admin token set", func(c *Config) { c.Admin.Token = "correct-horse" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ResolvesLocation(t *testing.T) {
	cfg := validConfig()
	cfg.Study.Timezone = "America/New_York"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Study.Location == nil || cfg.Study.Location.String() != "America/New_York" {
		t.Errorf("location = %v", cfg.Study.Location)
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       120,
		},
		Log:   LogConfig{Level: "info", Format: "text"},
		Store: StoreConfig{Backend: BackendFile, Path: "./data/progress.json"},
		Database: DatabaseConfig{
			MaxConns: 10,
			MinConns: 1,
		},
		SQLite: SQLiteConfig{Path: "./data/progress.db", BusyTimeout: 5 * time.Second},
		Study:  StudyConfig{Timezone: "UTC", DefaultCapacity: 20, WeakLimit: 10},
		Lookup: LookupConfig{
			SourceLang: "EN",
			TargetLang: "TR",
			Cache:      CacheFile,
			CachePath:  "./data/word_cache.json",
		},
		Redis:   RedisConfig{Addr: "localhost:6379", TTL: time.Hour},
		Catalog: CatalogConfig{Path: "./data/oxford3000.json"},
		Stories: StoriesConfig{Path: "./data/stories.json"},
	}
}
