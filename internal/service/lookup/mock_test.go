package lookup

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
	"github.com/heartmarshall/myenglish-progress/internal/provider"
)

type analyzerMock struct {
	AnalyzeFunc func(word string) provider.WordAnalysis
}

func (m *analyzerMock) Analyze(word string) provider.WordAnalysis {
	if m.AnalyzeFunc == nil {
		return provider.WordAnalysis{Word: word, POS: provider.POSNoun, Root: word}
	}
	return m.AnalyzeFunc(word)
}

type translateCall struct {
	Text, Source, Target string
}

type translatorMock struct {
	TranslateFunc func(ctx context.Context, text, source, target string) (string, error)

	mu    sync.Mutex
	calls []translateCall
}

func (m *translatorMock) Translate(ctx context.Context, text, source, target string) (string, error) {
	if m.TranslateFunc == nil {
		panic("translatorMock.TranslateFunc: method is nil but translator.Translate was just called")
	}
	m.mu.Lock()
	m.calls = append(m.calls, translateCall{text, source, target})
	m.mu.Unlock()
	return m.TranslateFunc(ctx, text, source, target)
}

func (m *translatorMock) TranslateCalls() []translateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type dictionaryMock struct {
	FetchEntryFunc func(ctx context.Context, word string) (*provider.DictionaryResult, error)
}

func (m *dictionaryMock) FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error) {
	if m.FetchEntryFunc == nil {
		panic("dictionaryMock.FetchEntryFunc: method is nil but dictionary.FetchEntry was just called")
	}
	return m.FetchEntryFunc(ctx, word)
}

// memCache is an in-memory cache with optional failure injection.
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	setErr  error
	setKeys []string
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setKeys = append(c.setKeys, key)
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
