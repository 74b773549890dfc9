package progress

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

// seed writes words directly to the store with FirstSeen spaced one minute apart
// so store order follows the slice order.
func seed(t *testing.T, svc *Service, words ...domain.WordProgress) {
	t.Helper()
	ctx := context.Background()
	for i, w := range words {
		if w.FirstSeen.IsZero() {
			w.FirstSeen = t0.Add(time.Duration(i) * time.Minute)
		}
		if w.Status == "" {
			w.Status = domain.WordStatusNew
		}
		require.NoError(t, svc.store.Set(ctx, w))
	}
}

func wordIDs(words []domain.WordProgress) []string {
	ids := make([]string, len(words))
	for i, w := range words {
		ids[i] = w.WordID
	}
	return ids
}

// ---------------------------------------------------------------------------
// GetWord
// ---------------------------------------------------------------------------

func TestService_GetWord(t *testing.T) {
	t.Parallel()

	svc, _ := newMemoryService(t0)
	seed(t, svc, domain.WordProgress{WordID: "w1", Word: "lucid"})

	got, err := svc.GetWord(context.Background(), "w1")
	require.NoError(t, err)
	assert.Equal(t, "lucid", got.Word)

	_, err = svc.GetWord(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.ID)

	_, err = svc.GetWord(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_GetWord_DoesNotCreate(t *testing.T) {
	t.Parallel()

	svc, st := newMemoryService(t0)

	_, err := svc.GetWord(context.Background(), "w1")
	require.Error(t, err)

	words, err := st.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestService_GetWord_StoreFailure(t *testing.T) {
	t.Parallel()

	store := &progressStoreMock{
		GetFunc: func(ctx context.Context, wordID string) (*domain.WordProgress, error) {
			return nil, errors.New("io error")
		},
	}
	svc := NewService(newTestLogger(), store, passthroughTx(), fixedClock{t0}, Options{})

	_, err := svc.GetWord(context.Background(), "w1")
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// WordsDueForReview
// ---------------------------------------------------------------------------

func TestService_WordsDueForReview(t *testing.T) {
	t.Parallel()

	svc, _ := newMemoryService(t0)
	seed(t, svc,
		domain.WordProgress{WordID: "past", NextReview: ptr(t0.Add(-time.Hour))},
		domain.WordProgress{WordID: "exact", NextReview: ptr(t0)},
		domain.WordProgress{WordID: "future", NextReview: ptr(t0.Add(time.Second))},
		domain.WordProgress{WordID: "never"},
	)

	due, err := svc.WordsDueForReview(context.Background(), t0)
	require.NoError(t, err)
	assert.Equal(t, []string{"past", "exact"}, wordIDs(due))
}

func TestService_WordsDueForReview_Empty(t *testing.T) {
	t.Parallel()

	svc, _ := newMemoryService(t0)

	due, err := svc.WordsDueForReview(context.Background(), t0)
	require.NoError(t, err)
	assert.NotNil(t, due)
	assert.Empty(t, due)
}

// ---------------------------------------------------------------------------
// OverallProgress
// ---------------------------------------------------------------------------

func TestService_OverallProgress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		statuses []domain.WordStatus
		want     int
	}{
		{"empty", nil, 0},
		{"mastered reviewing new", []domain.WordStatus{domain.WordStatusMastered, domain.WordStatusReviewing, domain.WordStatusNew}, 58},
		{"all learning", []domain.WordStatus{domain.WordStatusLearning, domain.WordStatusLearning}, 40},
		{"half mastered", []domain.WordStatus{domain.WordStatusMastered, domain.WordStatusNew}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newMemoryService(t0)
			var words []domain.WordProgress
			for i, st := range tt.statuses {
				words = append(words, domain.WordProgress{WordID: fmt.Sprintf("w%d", i), Status: st})
			}
			seed(t, svc, words...)

			got, err := svc.OverallProgress(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ---------------------------------------------------------------------------
// WeakWords
// ---------------------------------------------------------------------------

func TestService_WeakWords(t *testing.T) {
	t.Parallel()

	svc, _ := newMemoryService(t0)
	seed(t, svc,
		domain.WordProgress{WordID: "a", Status: domain.WordStatusLearning, ReviewCount: 4, IncorrectCount: 1, CorrectCount: 3},
		domain.WordProgress{WordID: "b", Status: domain.WordStatusLearning, ReviewCount: 2, IncorrectCount: 2},
		domain.WordProgress{WordID: "unseen"},
		domain.WordProgress{WordID: "c", Status: domain.WordStatusLearning, ReviewCount: 2, IncorrectCount: 1, CorrectCount: 1},
		domain.WordProgress{WordID: "d", Status: domain.WordStatusLearning, ReviewCount: 4, IncorrectCount: 2, CorrectCount: 2},
	)

	got, err := svc.WeakWords(context.Background(), 0)
	require.NoError(t, err)
	// c and d tie at 0.5 and keep store order.
	assert.Equal(t, []string{"b", "c", "d", "a"}, wordIDs(got))

	got, err = svc.WeakWords(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, wordIDs(got))
}

func TestService_WeakWords_NegativeLimit(t *testing.T) {
	t.Parallel()

	svc, _ := newMemoryService(t0)

	_, err := svc.WeakWords(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_WeakWords_DefaultLimit(t *testing.T) {
	t.Parallel()

	st := &progressStoreMock{}
	var words []domain.WordProgress
	for i := 0; i < 15; i++ {
		words = append(words, domain.WordProgress{
			WordID:         fmt.Sprintf("w%02d", i),
			Status:         domain.WordStatusLearning,
			ReviewCount:    1,
			IncorrectCount: 1,
		})
	}
	st.ListFunc = func(ctx context.Context) ([]domain.WordProgress, error) { return words, nil }

	svc := NewService(newTestLogger(), st, passthroughTx(), fixedClock{t0}, Options{DefaultWeakLimit: 3})

	got, err := svc.WeakWords(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"w00", "w01", "w02"}, wordIDs(got))
}

// ---------------------------------------------------------------------------
// RecommendedStudyQueue
// ---------------------------------------------------------------------------

func TestService_RecommendedStudyQueue(t *testing.T) {
	t.Parallel()

	later := ptr(t0.AddDate(0, 0, 3))
	svc, _ := newMemoryService(t0)
	seed(t, svc,
		domain.WordProgress{WordID: "new-later-1", NextReview: later},
		domain.WordProgress{WordID: "due-1", Status: domain.WordStatusLearning, ReviewCount: 1, NextReview: ptr(t0.Add(-time.Hour))},
		domain.WordProgress{WordID: "new-due", NextReview: ptr(t0)},
		domain.WordProgress{WordID: "reviewing-later", Status: domain.WordStatusReviewing, ReviewCount: 3, NextReview: later},
		domain.WordProgress{WordID: "new-later-2", NextReview: later},
	)

	tests := []struct {
		name     string
		capacity int
		want     []string
	}{
		{"room for all", 10, []string{"due-1", "new-due", "new-later-1", "new-later-2"}},
		{"room for one new", 3, []string{"due-1", "new-due", "new-later-1"}},
		{"due only", 2, []string{"due-1", "new-due"}},
		{"truncates due", 1, []string{"due-1"}},
		{"default capacity", 0, []string{"due-1", "new-due", "new-later-1", "new-later-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.RecommendedStudyQueue(context.Background(), t0, tt.capacity)
			require.NoError(t, err)
			assert.Equal(t, tt.want, wordIDs(got))
		})
	}
}

func TestService_RecommendedStudyQueue_NegativeCapacity(t *testing.T) {
	t.Parallel()

	store := &progressStoreMock{}
	svc := NewService(newTestLogger(), store, passthroughTx(), fixedClock{t0}, Options{})

	_, err := svc.RecommendedStudyQueue(context.Background(), t0, -5)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, store.ListCalls())
}

func TestService_RecommendedStudyCount(t *testing.T) {
	t.Parallel()

	later := ptr(t0.AddDate(0, 0, 1))
	st := &progressStoreMock{
		ListFunc: func(ctx context.Context) ([]domain.WordProgress, error) {
			return []domain.WordProgress{
				{WordID: "d1", Status: domain.WordStatusLearning, NextReview: ptr(t0)},
				{WordID: "n1", Status: domain.WordStatusNew, NextReview: later},
				{WordID: "n2", Status: domain.WordStatusNew, NextReview: later},
				{WordID: "n3", Status: domain.WordStatusNew, NextReview: later},
			}, nil
		},
	}
	svc := NewService(newTestLogger(), st, passthroughTx(), fixedClock{t0}, Options{DefaultCapacity: 3})

	got, err := svc.RecommendedStudyCount(context.Background(), t0)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	queue, err := svc.RecommendedStudyQueue(context.Background(), t0, 0)
	require.NoError(t, err)
	assert.Len(t, queue, got)
}

// ---------------------------------------------------------------------------
// WordsByStatus / ProgressStats
// ---------------------------------------------------------------------------

func TestService_WordsByStatus(t *testing.T) {
	t.Parallel()

	svc, _ := newMemoryService(t0)
	seed(t, svc,
		domain.WordProgress{WordID: "a", Status: domain.WordStatusLearning},
		domain.WordProgress{WordID: "b"},
		domain.WordProgress{WordID: "c", Status: domain.WordStatusLearning},
	)

	got, err := svc.WordsByStatus(context.Background(), domain.WordStatusLearning)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, wordIDs(got))

	got, err = svc.WordsByStatus(context.Background(), domain.WordStatusMastered)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.WordsByStatus(context.Background(), "forgotten")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_ProgressStats(t *testing.T) {
	t.Parallel()

	svc, st := newMemoryService(t0)
	seed(t, svc,
		domain.WordProgress{WordID: "a", Status: domain.WordStatusMastered, NextReview: ptr(t0.AddDate(0, 1, 0))},
		domain.WordProgress{WordID: "b", Status: domain.WordStatusReviewing, NextReview: ptr(t0)},
		domain.WordProgress{WordID: "c", NextReview: ptr(t0)},
	)
	require.NoError(t, st.SetSessionStats(context.Background(), domain.SessionStats{TotalReviews: 12, CurrentStreak: 3}))

	got, err := svc.ProgressStats(context.Background(), t0)
	require.NoError(t, err)

	assert.Equal(t, 3, got.TotalWords)
	assert.Equal(t, 2, got.DueForReview)
	assert.Equal(t, 2, got.RecommendedCount, "due new word c counts once")
	assert.Equal(t, 58, got.OverallProgress)
	assert.Equal(t, 12, got.TotalReviews)
	assert.Equal(t, 3, got.CurrentStreak)
	assert.Equal(t, domain.StatusCounts{
		domain.WordStatusNew:       1,
		domain.WordStatusLearning:  0,
		domain.WordStatusReviewing: 1,
		domain.WordStatusMastered:  1,
	}, got.StatusCounts)
}
