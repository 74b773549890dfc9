// Package jsonfile is a key-value cache persisted as one JSON object on
// disk, keyed by cache key. Values must be valid JSON.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"sync"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
	"github.com/heartmarshall/myenglish-progress/pkg/fileutil"
)

// Cache is safe for concurrent use within one process.
type Cache struct {
	path string
	log  *slog.Logger

	mu      sync.RWMutex
	entries map[string]json.RawMessage
}

// Open loads the cache file at path. A missing file yields an empty cache;
// an unreadable one is discarded with a warning and rebuilt on the next Set.
func Open(path string, log *slog.Logger) (*Cache, error) {
	c := &Cache{
		path:    path,
		log:     log.With("adapter", "kv.jsonfile"),
		entries: map[string]json.RawMessage{},
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}

	if err := json.Unmarshal(data, &c.entries); err != nil || c.entries == nil {
		c.log.Warn("cache file unreadable, starting empty", slog.String("path", path))
		c.entries = map[string]json.RawMessage{}
	}

	return c, nil
}

// Get returns the value stored under key or domain.ErrNotFound.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.entries[key]
	if !ok {
		return nil, fmt.Errorf("cache key %q: %w", key, domain.ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

// Set stores value under key and rewrites the file.
func (c *Cache) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("cache key %q: value is not valid JSON", key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := maps.Clone(c.entries)
	next[key] = append(json.RawMessage(nil), value...)

	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := fileutil.WriteFileAtomic(c.path, data); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}

	c.entries = next
	return nil
}

// Len reports the number of cached keys.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) Close() error { return nil }
