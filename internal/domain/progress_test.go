package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWordProgress_DueImmediately(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	p := NewWordProgress("w1", "serendipity", now)

	assert.Equal(t, WordStatusNew, p.Status)
	assert.Equal(t, now, p.FirstSeen)
	assert.Nil(t, p.LastReviewed)
	require.NotNil(t, p.NextReview)
	assert.Equal(t, now, *p.NextReview)
	assert.True(t, p.IsDue(now))
	assert.Zero(t, p.ReviewCount)
	assert.Zero(t, p.RecognitionScore)
}

func TestWordProgress_IsDue(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	tests := []struct {
		name string
		next *time.Time
		want bool
	}{
		{"nil", nil, false},
		{"past", &past, true},
		{"exact", &now, true},
		{"future", &future, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := WordProgress{NextReview: tt.next}
			assert.Equal(t, tt.want, p.IsDue(now))
		})
	}
}

func TestWordProgress_IncorrectRatio(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, WordProgress{}.IncorrectRatio())
	assert.Equal(t, 0.5, WordProgress{ReviewCount: 4, IncorrectCount: 2}.IncorrectRatio())
}

func TestWordProgress_Validate(t *testing.T) {
	t.Parallel()

	valid := NewWordProgress("w1", "w", time.Now())
	require.NoError(t, valid.Validate())

	bad := valid
	bad.WordID = ""
	bad.Status = "archived"
	bad.RecognitionScore = 101

	err := bad.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Errors, 3)
}

func TestWordProgress_JSONFieldNames(t *testing.T) {
	t.Parallel()

	p := NewWordProgress("w1", "w", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	raw, err := json.Marshal(p)
	require.NoError(t, err)

	for _, key := range []string{
		`"wordId"`, `"word"`, `"status"`, `"firstSeen"`, `"lastReviewed":null`, `"nextReview"`,
		`"recognitionScore"`, `"reviewCount"`, `"correctCount"`, `"incorrectCount"`, `"confidenceLevel"`,
	} {
		assert.True(t, strings.Contains(string(raw), key), "missing %s in %s", key, raw)
	}
}

func TestNewProgressDocument(t *testing.T) {
	t.Parallel()

	doc := NewProgressDocument()
	assert.Equal(t, DocumentVersion, doc.Version)
	assert.True(t, strings.HasPrefix(doc.LearnerID, "local-"))
	assert.NotNil(t, doc.Words)
	assert.NotEqual(t, doc.LearnerID, NewProgressDocument().LearnerID)
}
