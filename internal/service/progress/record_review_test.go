package progress

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/myenglish-progress/internal/adapter/memory"
	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMemoryService(now time.Time) (*Service, *memory.Store) {
	st := memory.New()
	return NewService(newTestLogger(), st, st, fixedClock{now}, Options{}), st
}

var t0 = time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)

// ---------------------------------------------------------------------------
// RecordReview
// ---------------------------------------------------------------------------

func TestService_RecordReview_FreshWordHard(t *testing.T) {
	t.Parallel()

	svc, st := newMemoryService(t0)
	ctx := context.Background()

	got, err := svc.RecordReview(ctx, RecordReviewInput{WordID: "w1", Word: "ephemeral", Difficulty: domain.DifficultyHard})
	require.NoError(t, err)

	assert.Equal(t, "w1", got.WordID)
	assert.Equal(t, "ephemeral", got.Word)
	assert.Equal(t, 1, got.ReviewCount)
	assert.Equal(t, 1, got.IncorrectCount)
	assert.Equal(t, 0, got.CorrectCount)
	assert.Equal(t, 0, got.RecognitionScore)
	assert.Equal(t, domain.WordStatusLearning, got.Status)
	assert.Equal(t, 0, got.ConfidenceLevel)
	assert.Equal(t, t0, got.FirstSeen)
	require.NotNil(t, got.LastReviewed)
	assert.Equal(t, t0, *got.LastReviewed)
	require.NotNil(t, got.NextReview)
	assert.Equal(t, t0.AddDate(0, 0, 1), *got.NextReview)

	stored, err := st.Get(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, *got, *stored)

	stats, err := st.GetSessionStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalWordsStudied)
	assert.Equal(t, 1, stats.TotalReviews)
	assert.Equal(t, 1, stats.CurrentStreak)
	require.NotNil(t, stats.LastStudyDate)
	assert.Equal(t, t0, *stats.LastStudyDate)
}

func TestService_RecordReviewAt_SecondReviewEasy(t *testing.T) {
	t.Parallel()

	svc, _ := newMemoryService(t0)
	ctx := context.Background()

	_, err := svc.RecordReviewAt(ctx, RecordReviewInput{WordID: "w1", Word: "w", Difficulty: domain.DifficultyHard}, t0)
	require.NoError(t, err)

	t1 := t0.AddDate(0, 0, 1)
	got, err := svc.RecordReviewAt(ctx, RecordReviewInput{WordID: "w1", Difficulty: domain.DifficultyEasy}, t1)
	require.NoError(t, err)

	assert.Equal(t, 2, got.ReviewCount)
	assert.Equal(t, 1, got.CorrectCount)
	assert.Equal(t, 1, got.IncorrectCount)
	assert.Equal(t, 15, got.RecognitionScore)
	assert.Equal(t, domain.WordStatusLearning, got.Status)
	assert.Equal(t, 1, got.ConfidenceLevel)
	assert.Equal(t, t1.AddDate(0, 0, 7), *got.NextReview)
	assert.Equal(t, t0, got.FirstSeen, "firstSeen is immutable")
	assert.Equal(t, "w", got.Word, "empty word keeps the stored surface form")

	stats, err := svc.store.GetSessionStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CurrentStreak)
	assert.Equal(t, 2, stats.TotalReviews)
	assert.Equal(t, 1, stats.TotalWordsStudied)
}

func TestService_RecordReview_StreakResetsAfterGap(t *testing.T) {
	t.Parallel()

	svc, st := newMemoryService(t0)
	ctx := context.Background()

	require.NoError(t, st.SetSessionStats(ctx, domain.SessionStats{
		CurrentStreak: 6,
		LastStudyDate: ptr(t0.AddDate(0, 0, -2)),
	}))

	_, err := svc.RecordReview(ctx, RecordReviewInput{WordID: "w1", Difficulty: domain.DifficultyMedium})
	require.NoError(t, err)

	stats, _ := st.GetSessionStats(ctx)
	assert.Equal(t, 1, stats.CurrentStreak)
}

func TestService_RecordReview_StreakIncrementsFromYesterday(t *testing.T) {
	t.Parallel()

	svc, st := newMemoryService(t0)
	ctx := context.Background()

	require.NoError(t, st.SetSessionStats(ctx, domain.SessionStats{
		CurrentStreak: 6,
		LastStudyDate: ptr(t0.AddDate(0, 0, -1)),
	}))

	_, err := svc.RecordReview(ctx, RecordReviewInput{WordID: "w1", Difficulty: domain.DifficultyMedium})
	require.NoError(t, err)

	stats, _ := st.GetSessionStats(ctx)
	assert.Equal(t, 7, stats.CurrentStreak)
}

func TestService_RecordReview_ValidationBeforeIO(t *testing.T) {
	t.Parallel()

	store := &progressStoreMock{}
	tx := passthroughTx()
	svc := NewService(newTestLogger(), store, tx, fixedClock{t0}, Options{})

	tests := []struct {
		name  string
		input RecordReviewInput
	}{
		{"empty word id", RecordReviewInput{WordID: " ", Difficulty: domain.DifficultyEasy}},
		{"unknown difficulty", RecordReviewInput{WordID: "w1", Difficulty: "again"}},
		{"missing difficulty", RecordReviewInput{WordID: "w1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordReview(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
		})
	}

	assert.Zero(t, tx.RunInTxCalls())
}

func TestService_RecordReview_SetFailure(t *testing.T) {
	t.Parallel()

	diskErr := errors.New("disk full")
	store := &progressStoreMock{
		GetFunc: func(ctx context.Context, wordID string) (*domain.WordProgress, error) {
			return nil, domain.ErrNotFound
		},
		SetFunc: func(ctx context.Context, p domain.WordProgress) error {
			return diskErr
		},
	}
	svc := NewService(newTestLogger(), store, passthroughTx(), fixedClock{t0}, Options{})

	_, err := svc.RecordReview(context.Background(), RecordReviewInput{WordID: "w1", Difficulty: domain.DifficultyEasy})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPersistence))
	assert.True(t, errors.Is(err, diskErr))

	var pe *domain.PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "set word", pe.Op)
	assert.Len(t, store.SetCalls(), 1)
}

func TestService_RecordReview_GetFailureIsNotCreate(t *testing.T) {
	t.Parallel()

	store := &progressStoreMock{
		GetFunc: func(ctx context.Context, wordID string) (*domain.WordProgress, error) {
			return nil, errors.New("corrupt record")
		},
	}
	svc := NewService(newTestLogger(), store, passthroughTx(), fixedClock{t0}, Options{})

	_, err := svc.RecordReview(context.Background(), RecordReviewInput{WordID: "w1", Difficulty: domain.DifficultyEasy})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPersistence))
	assert.Empty(t, store.SetCalls())
}

func TestService_RecordReview_StatsFailureRollsBackWord(t *testing.T) {
	t.Parallel()

	st := memory.New()
	failing := &progressStoreMock{
		GetFunc:             st.Get,
		SetFunc:             st.Set,
		ListFunc:            st.List,
		GetSessionStatsFunc: st.GetSessionStats,
		SetSessionStatsFunc: func(ctx context.Context, stats domain.SessionStats) error {
			return errors.New("stats write failed")
		},
	}
	svc := NewService(newTestLogger(), failing, st, fixedClock{t0}, Options{})
	ctx := context.Background()

	_, err := svc.RecordReview(ctx, RecordReviewInput{WordID: "w1", Difficulty: domain.DifficultyEasy})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPersistence))

	_, err = st.Get(ctx, "w1")
	assert.True(t, errors.Is(err, domain.ErrNotFound), "word write must not be committed")
}

func TestService_RecordReview_RunsInSingleTx(t *testing.T) {
	t.Parallel()

	st := memory.New()
	tx := &txManagerMock{RunInTxFunc: st.RunInTx}
	svc := NewService(newTestLogger(), st, tx, fixedClock{t0}, Options{})

	_, err := svc.RecordReview(context.Background(), RecordReviewInput{WordID: "w1", Difficulty: domain.DifficultyEasy})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.RunInTxCalls())
}

func TestService_RecordReview_RepeatedEasyMastersWord(t *testing.T) {
	t.Parallel()

	svc, _ := newMemoryService(t0)
	ctx := context.Background()

	var got *domain.WordProgress
	now := t0
	for i := 0; i < 10; i++ {
		var err error
		got, err = svc.RecordReviewAt(ctx, RecordReviewInput{WordID: "w1", Difficulty: domain.DifficultyEasy}, now)
		require.NoError(t, err)
		now = *got.NextReview
	}

	assert.Equal(t, domain.WordStatusMastered, got.Status)
	assert.Equal(t, 5, got.ConfidenceLevel)
	assert.Equal(t, 10, got.CorrectCount)
}
