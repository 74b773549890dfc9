// Package jsonfile serves the vocabulary catalog from a read-only JSON word
// list of the form {"words": [...], "metadata": {...}}.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

type wordList struct {
	Words    []domain.CatalogWord   `json:"words"`
	Metadata domain.CatalogMetadata `json:"metadata"`
}

// Store holds the word list loaded at Open. It is never written back and
// is safe for concurrent use.
type Store struct {
	words []domain.CatalogWord
	meta  domain.CatalogMetadata
}

// Open loads the word list at path. A missing file yields an empty catalog.
// Entries without an id or word, and repeated ids, are skipped with a warning.
func Open(path string, log *slog.Logger) (*Store, error) {
	log = log.With("adapter", "catalog.jsonfile")

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("word list not found, catalog is empty", slog.String("path", path))
		return &Store{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}

	var list wordList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode word list %s: %w", path, err)
	}

	s := &Store{meta: list.Metadata, words: make([]domain.CatalogWord, 0, len(list.Words))}
	seen := make(map[string]struct{}, len(list.Words))
	skipped := 0
	for _, w := range list.Words {
		w.ID = strings.TrimSpace(w.ID)
		w.Word = strings.TrimSpace(w.Word)
		if w.ID == "" || w.Word == "" {
			skipped++
			continue
		}
		if _, dup := seen[w.ID]; dup {
			skipped++
			continue
		}
		seen[w.ID] = struct{}{}
		s.words = append(s.words, w)
	}

	if skipped > 0 {
		log.Warn("word list entries skipped", slog.String("path", path), slog.Int("skipped", skipped))
	}
	log.Info("word list loaded", slog.String("path", path), slog.Int("words", len(s.words)))

	return s, nil
}

// Words returns every entry in file order.
func (s *Store) Words(ctx context.Context) ([]domain.CatalogWord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.words), nil
}

// Metadata returns the list's metadata block as read.
func (s *Store) Metadata(ctx context.Context) (domain.CatalogMetadata, error) {
	if err := ctx.Err(); err != nil {
		return domain.CatalogMetadata{}, err
	}
	return s.meta, nil
}
