package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
	"github.com/heartmarshall/myenglish-progress/internal/provider"
	"github.com/heartmarshall/myenglish-progress/internal/service/progress"
)

type wordSourceMock struct {
	WordsFunc    func(ctx context.Context) ([]domain.CatalogWord, error)
	MetadataFunc func(ctx context.Context) (domain.CatalogMetadata, error)
}

func (m *wordSourceMock) Words(ctx context.Context) ([]domain.CatalogWord, error) {
	if m.WordsFunc == nil {
		panic("wordSourceMock.WordsFunc: method is nil but wordSource.Words was just called")
	}
	return m.WordsFunc(ctx)
}

func (m *wordSourceMock) Metadata(ctx context.Context) (domain.CatalogMetadata, error) {
	if m.MetadataFunc == nil {
		return domain.CatalogMetadata{}, nil
	}
	return m.MetadataFunc(ctx)
}

func staticWords(words ...domain.CatalogWord) *wordSourceMock {
	return &wordSourceMock{WordsFunc: func(context.Context) ([]domain.CatalogWord, error) {
		return append([]domain.CatalogWord(nil), words...), nil
	}}
}

type dictionaryMock struct {
	FetchEntryFunc func(ctx context.Context, word string) (*provider.DictionaryResult, error)

	mu    sync.Mutex
	calls []string
}

func (m *dictionaryMock) FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error) {
	if m.FetchEntryFunc == nil {
		panic("dictionaryMock.FetchEntryFunc: method is nil but dictionary.FetchEntry was just called")
	}
	m.mu.Lock()
	m.calls = append(m.calls, word)
	m.mu.Unlock()
	return m.FetchEntryFunc(ctx, word)
}

func (m *dictionaryMock) FetchEntryCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type translatorMock struct {
	TranslateFunc func(ctx context.Context, text, source, target string) (string, error)
}

func (m *translatorMock) Translate(ctx context.Context, text, source, target string) (string, error) {
	if m.TranslateFunc == nil {
		panic("translatorMock.TranslateFunc: method is nil but translator.Translate was just called")
	}
	return m.TranslateFunc(ctx, text, source, target)
}

type enrollerMock struct {
	EnrollFunc func(ctx context.Context, words []progress.EnrollWord) (*progress.EnrollResult, error)

	mu    sync.Mutex
	calls [][]progress.EnrollWord
}

func (m *enrollerMock) Enroll(ctx context.Context, words []progress.EnrollWord) (*progress.EnrollResult, error) {
	if m.EnrollFunc == nil {
		panic("enrollerMock.EnrollFunc: method is nil but enroller.Enroll was just called")
	}
	m.mu.Lock()
	m.calls = append(m.calls, words)
	m.mu.Unlock()
	return m.EnrollFunc(ctx, words)
}

func (m *enrollerMock) EnrollCalls() [][]progress.EnrollWord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
