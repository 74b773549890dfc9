package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Score bounds for WordProgress.
const (
	MaxRecognitionScore = 100
	MaxConfidenceLevel  = 5
)

// WordProgress is the learning state of one vocabulary item.
// Status, RecognitionScore, ConfidenceLevel and NextReview are derived
// on every review and are never set independently.
type WordProgress struct {
	WordID           string     `json:"wordId"`
	Word             string     `json:"word"`
	Status           WordStatus `json:"status"`
	FirstSeen        time.Time  `json:"firstSeen"`
	LastReviewed     *time.Time `json:"lastReviewed"`
	NextReview       *time.Time `json:"nextReview"`
	RecognitionScore int        `json:"recognitionScore"`
	ReviewCount      int        `json:"reviewCount"`
	CorrectCount     int        `json:"correctCount"`
	IncorrectCount   int        `json:"incorrectCount"`
	ConfidenceLevel  int        `json:"confidenceLevel"`
}

// NewWordProgress creates a fresh record that is due immediately.
func NewWordProgress(wordID, word string, now time.Time) WordProgress {
	next := now
	return WordProgress{
		WordID:     wordID,
		Word:       word,
		Status:     WordStatusNew,
		FirstSeen:  now,
		NextReview: &next,
	}
}

// IsDue reports whether the word should be reviewed at now.
// Records without a NextReview are never due.
func (p WordProgress) IsDue(now time.Time) bool {
	return p.NextReview != nil && !p.NextReview.After(now)
}

// IncorrectRatio returns incorrectCount / max(reviewCount, 1).
func (p WordProgress) IncorrectRatio() float64 {
	return float64(p.IncorrectCount) / float64(max(p.ReviewCount, 1))
}

// Validate checks the record shape at a store boundary.
func (p WordProgress) Validate() error {
	var errs []FieldError

	if p.WordID == "" {
		errs = append(errs, FieldError{Field: "wordId", Message: "required"})
	}
	if !p.Status.IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: fmt.Sprintf("unknown status %q", p.Status)})
	}
	if p.RecognitionScore < 0 || p.RecognitionScore > MaxRecognitionScore {
		errs = append(errs, FieldError{Field: "recognitionScore", Message: "must be between 0 and 100"})
	}
	if p.ConfidenceLevel < 0 || p.ConfidenceLevel > MaxConfidenceLevel {
		errs = append(errs, FieldError{Field: "confidenceLevel", Message: "must be between 0 and 5"})
	}
	if p.ReviewCount < 0 || p.CorrectCount < 0 || p.IncorrectCount < 0 {
		errs = append(errs, FieldError{Field: "reviewCount", Message: "counters must be non-negative"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// SessionStats aggregates progress across all words.
type SessionStats struct {
	TotalWordsStudied int        `json:"totalWordsStudied"`
	TotalReviews      int        `json:"totalReviews"`
	CurrentStreak     int        `json:"currentStreak"`
	LastStudyDate     *time.Time `json:"lastStudyDate"`
}

// StatusCounts holds the number of words per status.
type StatusCounts map[WordStatus]int

// ProgressStats is a read-only summary of the whole store.
type ProgressStats struct {
	SessionStats
	StatusCounts     StatusCounts `json:"statusCounts"`
	TotalWords       int          `json:"totalWords"`
	DueForReview     int          `json:"dueForReview"`
	RecommendedCount int          `json:"recommendedCount"`
	OverallProgress  int          `json:"overallProgress"`
}

// CompareStoreOrder orders records by FirstSeen, then WordID.
func CompareStoreOrder(a, b WordProgress) int {
	if c := a.FirstSeen.Compare(b.FirstSeen); c != 0 {
		return c
	}
	return strings.Compare(a.WordID, b.WordID)
}

// OrderedWords returns the values of words in store order.
func OrderedWords(words map[string]WordProgress) []WordProgress {
	out := make([]WordProgress, 0, len(words))
	for _, w := range words {
		out = append(out, w)
	}
	slices.SortFunc(out, CompareStoreOrder)
	return out
}
