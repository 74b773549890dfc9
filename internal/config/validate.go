package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const minAdminTokenLength = 8

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Server.validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := c.Store.validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	switch c.Store.Backend {
	case BackendPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required for the postgres backend")
		}
		if c.Database.MaxConns < 1 || c.Database.MinConns > c.Database.MaxConns {
			return fmt.Errorf("database: need 1 <= max_conns and min_conns <= max_conns (got %d/%d)",
				c.Database.MinConns, c.Database.MaxConns)
		}
	case BackendSQLite:
		if strings.TrimSpace(c.SQLite.Path) == "" {
			return fmt.Errorf("sqlite.path is required for the sqlite backend")
		}
	}

	if err := c.Study.validate(); err != nil {
		return fmt.Errorf("study: %w", err)
	}

	if err := c.Lookup.validate(); err != nil {
		return fmt.Errorf("lookup: %w", err)
	}

	if c.Lookup.Cache == CacheRedis && strings.TrimSpace(c.Redis.Addr) == "" {
		return fmt.Errorf("redis.addr is required for the redis cache")
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("redis.ttl must be >= 0 (got %s)", c.Redis.TTL)
	}

	if strings.TrimSpace(c.Catalog.Path) == "" {
		return fmt.Errorf("catalog.path is required")
	}
	if strings.TrimSpace(c.Stories.Path) == "" {
		return fmt.Errorf("stories.path is required")
	}
	if t := c.Admin.Token; t != "" && len(t) < minAdminTokenLength {
		return fmt.Errorf("admin.token must be at least %d characters", minAdminTokenLength)
	}

	return nil
}

func (s *ServerConfig) validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("port must be in 1..65535 (got %d)", s.Port)
	}
	if s.ReadTimeout <= 0 || s.WriteTimeout <= 0 || s.ShutdownTimeout <= 0 {
		return fmt.Errorf("read, write and shutdown timeouts must be > 0")
	}
	if s.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be >= 0 (got %d)", s.RateLimit)
	}
	return nil
}

func (s *StoreConfig) validate() error {
	s.Backend = strings.ToLower(strings.TrimSpace(s.Backend))
	if !slices.Contains([]string{BackendFile, BackendMemory, BackendPostgres, BackendSQLite}, s.Backend) {
		return fmt.Errorf("backend must be one of file, memory, postgres, sqlite (got %q)", s.Backend)
	}
	if s.Backend == BackendFile && strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("path is required for the file backend")
	}
	return nil
}

func (s *StudyConfig) validate() error {
	if s.DefaultCapacity < 1 {
		return fmt.Errorf("default_capacity must be >= 1 (got %d)", s.DefaultCapacity)
	}
	if s.WeakLimit < 1 {
		return fmt.Errorf("weak_limit must be >= 1 (got %d)", s.WeakLimit)
	}

	loc, err := time.LoadLocation(strings.TrimSpace(s.Timezone))
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	s.Location = loc

	return nil
}

func (l *LookupConfig) validate() error {
	l.Cache = strings.ToLower(strings.TrimSpace(l.Cache))
	if !slices.Contains([]string{CacheFile, CacheRedis, CacheNone}, l.Cache) {
		return fmt.Errorf("cache must be one of file, redis, none (got %q)", l.Cache)
	}
	if l.Cache == CacheFile && strings.TrimSpace(l.CachePath) == "" {
		return fmt.Errorf("cache_path is required for the file cache")
	}
	if strings.TrimSpace(l.TargetLang) == "" {
		return fmt.Errorf("target_lang is required")
	}
	return nil
}
