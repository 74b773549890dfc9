package progress

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

// progressStoreMock is a moq-style mock of progressStore.
type progressStoreMock struct {
	GetFunc             func(ctx context.Context, wordID string) (*domain.WordProgress, error)
	SetFunc             func(ctx context.Context, p domain.WordProgress) error
	ListFunc            func(ctx context.Context) ([]domain.WordProgress, error)
	GetSessionStatsFunc func(ctx context.Context) (domain.SessionStats, error)
	SetSessionStatsFunc func(ctx context.Context, stats domain.SessionStats) error
	LearnerIDFunc       func(ctx context.Context) (string, error)
	ClearFunc           func(ctx context.Context) error

	mu    sync.Mutex
	calls struct {
		Get             []string
		Set             []domain.WordProgress
		List            int
		GetSessionStats int
		SetSessionStats []domain.SessionStats
		LearnerID       int
		Clear           int
	}
}

func (m *progressStoreMock) Get(ctx context.Context, wordID string) (*domain.WordProgress, error) {
	if m.GetFunc == nil {
		panic("progressStoreMock.GetFunc: method is nil but progressStore.Get was just called")
	}
	m.mu.Lock()
	m.calls.Get = append(m.calls.Get, wordID)
	m.mu.Unlock()
	return m.GetFunc(ctx, wordID)
}

func (m *progressStoreMock) GetCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Get
}

func (m *progressStoreMock) Set(ctx context.Context, p domain.WordProgress) error {
	if m.SetFunc == nil {
		panic("progressStoreMock.SetFunc: method is nil but progressStore.Set was just called")
	}
	m.mu.Lock()
	m.calls.Set = append(m.calls.Set, p)
	m.mu.Unlock()
	return m.SetFunc(ctx, p)
}

func (m *progressStoreMock) SetCalls() []domain.WordProgress {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Set
}

func (m *progressStoreMock) List(ctx context.Context) ([]domain.WordProgress, error) {
	if m.ListFunc == nil {
		panic("progressStoreMock.ListFunc: method is nil but progressStore.List was just called")
	}
	m.mu.Lock()
	m.calls.List++
	m.mu.Unlock()
	return m.ListFunc(ctx)
}

func (m *progressStoreMock) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.List
}

func (m *progressStoreMock) GetSessionStats(ctx context.Context) (domain.SessionStats, error) {
	if m.GetSessionStatsFunc == nil {
		panic("progressStoreMock.GetSessionStatsFunc: method is nil but progressStore.GetSessionStats was just called")
	}
	m.mu.Lock()
	m.calls.GetSessionStats++
	m.mu.Unlock()
	return m.GetSessionStatsFunc(ctx)
}

func (m *progressStoreMock) SetSessionStats(ctx context.Context, stats domain.SessionStats) error {
	if m.SetSessionStatsFunc == nil {
		panic("progressStoreMock.SetSessionStatsFunc: method is nil but progressStore.SetSessionStats was just called")
	}
	m.mu.Lock()
	m.calls.SetSessionStats = append(m.calls.SetSessionStats, stats)
	m.mu.Unlock()
	return m.SetSessionStatsFunc(ctx, stats)
}

func (m *progressStoreMock) SetSessionStatsCalls() []domain.SessionStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.SetSessionStats
}

func (m *progressStoreMock) LearnerID(ctx context.Context) (string, error) {
	if m.LearnerIDFunc == nil {
		panic("progressStoreMock.LearnerIDFunc: method is nil but progressStore.LearnerID was just called")
	}
	m.mu.Lock()
	m.calls.LearnerID++
	m.mu.Unlock()
	return m.LearnerIDFunc(ctx)
}

func (m *progressStoreMock) Clear(ctx context.Context) error {
	if m.ClearFunc == nil {
		panic("progressStoreMock.ClearFunc: method is nil but progressStore.Clear was just called")
	}
	m.mu.Lock()
	m.calls.Clear++
	m.mu.Unlock()
	return m.ClearFunc(ctx)
}

func (m *progressStoreMock) ClearCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Clear
}

// txManagerMock is a moq-style mock of txManager.
type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(context.Context) error) error

	mu    sync.Mutex
	calls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	if m.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.RunInTxFunc(ctx, fn)
}

func (m *txManagerMock) RunInTxCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func passthroughTx() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	}
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
