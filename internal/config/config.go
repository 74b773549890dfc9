package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
	Store    StoreConfig    `yaml:"store"`
	Database DatabaseConfig `yaml:"database"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Study    StudyConfig    `yaml:"study"`
	Lookup   LookupConfig   `yaml:"lookup"`
	Redis    RedisConfig    `yaml:"redis"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Stories  StoriesConfig  `yaml:"stories"`
	Admin    AdminConfig    `yaml:"admin"`
}

// Store backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Lookup cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// ServerConfig holds HTTP server settings for the lookup API.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// RateLimit is requests per minute per client on /api. Zero disables it.
	RateLimit int `yaml:"rate_limit" env:"SERVER_RATE_LIMIT" env-default:"120"`
}

// CORSConfig holds Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,Authorization,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// StoreConfig selects where progress is kept.
type StoreConfig struct {
	Backend string `yaml:"backend" env:"STORE_BACKEND" env-default:"file"`
	Path    string `yaml:"path"    env:"STORE_PATH"    env-default:"./data/progress.json"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN               string        `yaml:"dsn"                 env:"DATABASE_DSN"`
	MaxConns          int32         `yaml:"max_conns"           env:"DATABASE_MAX_CONNS"           env-default:"10"`
	MinConns          int32         `yaml:"min_conns"           env:"DATABASE_MIN_CONNS"           env-default:"1"`
	MaxConnLifetime   time.Duration `yaml:"max_conn_lifetime"   env:"DATABASE_MAX_CONN_LIFETIME"   env-default:"1h"`
	MaxConnIdleTime   time.Duration `yaml:"max_conn_idle_time"  env:"DATABASE_MAX_CONN_IDLE_TIME"  env-default:"30m"`
	HealthCheckPeriod time.Duration `yaml:"health_check_period" env:"DATABASE_HEALTH_CHECK_PERIOD" env-default:"1m"`
}

// SQLiteConfig holds SQLite settings.
type SQLiteConfig struct {
	Path        string        `yaml:"path"         env:"SQLITE_PATH"         env-default:"./data/progress.db"`
	BusyTimeout time.Duration `yaml:"busy_timeout" env:"SQLITE_BUSY_TIMEOUT" env-default:"5s"`
}

// StudyConfig holds study-session defaults.
type StudyConfig struct {
	Timezone        string `yaml:"timezone"         env:"STUDY_TIMEZONE"         env-default:"UTC"`
	DefaultCapacity int    `yaml:"default_capacity" env:"STUDY_DEFAULT_CAPACITY" env-default:"20"`
	WeakLimit       int    `yaml:"weak_limit"       env:"STUDY_WEAK_LIMIT"       env-default:"10"`

	// Location is resolved from Timezone during validation.
	Location *time.Location `yaml:"-" env:"-"`
}

// LookupConfig holds word-lookup provider settings.
type LookupConfig struct {
	DictionaryURL string `yaml:"dictionary_url" env:"LOOKUP_DICTIONARY_URL"`
	Dictionary    bool   `yaml:"dictionary"     env:"LOOKUP_DICTIONARY"     env-default:"true"`
	DeepLAPIKey   string `yaml:"deepl_api_key"  env:"DEEPL_API_KEY"`
	DeepLURL      string `yaml:"deepl_url"      env:"DEEPL_API_URL"`
	SourceLang    string `yaml:"source_lang"    env:"LOOKUP_SOURCE_LANG"    env-default:"EN"`
	TargetLang    string `yaml:"target_lang"    env:"LOOKUP_TARGET_LANG"    env-default:"TR"`
	Cache         string `yaml:"cache"          env:"LOOKUP_CACHE"          env-default:"file"`
	CachePath     string `yaml:"cache_path"     env:"LOOKUP_CACHE_PATH"     env-default:"./data/word_cache.json"`
}

// RedisConfig holds Redis settings for the lookup cache.
type RedisConfig struct {
	Addr      string        `yaml:"addr"       env:"REDIS_ADDR"       env-default:"localhost:6379"`
	Password  string        `yaml:"password"   env:"REDIS_PASSWORD"`
	DB        int           `yaml:"db"         env:"REDIS_DB"         env-default:"0"`
	TTL       time.Duration `yaml:"ttl"        env:"REDIS_TTL"        env-default:"720h"`
	KeyPrefix string        `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"vocab:"`
}

// CatalogConfig locates the curated word list.
type CatalogConfig struct {
	Path string `yaml:"path" env:"CATALOG_PATH" env-default:"./data/oxford3000.json"`
}

// StoriesConfig locates the story collection. It is a separate file from
// the lookup cache so that cache expiry never touches stories.
type StoriesConfig struct {
	Path string `yaml:"path" env:"STORIES_PATH" env-default:"./data/stories.json"`
}

// AdminConfig holds the bearer token for story writes. Empty disables them.
type AdminConfig struct {
	Token string `yaml:"token" env:"ADMIN_PASSWORD"`
}
