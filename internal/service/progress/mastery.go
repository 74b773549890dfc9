package progress

import (
	"math"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

const (
	easyBonus      = 5
	hardPenalty    = -10
	easyBonusFloor = 70.0

	// Exponential smoothing weights for the previous and the new score.
	previousWeight = 0.7
	currentWeight  = 0.3

	masteredScore   = 95
	masteredReviews = 5
	reviewingScore  = 80
)

// MasteryResult holds counters and derived fields after one review.
type MasteryResult struct {
	ReviewCount      int
	CorrectCount     int
	IncorrectCount   int
	RecognitionScore int
	Status           domain.WordStatus
	ConfidenceLevel  int
}

// Evaluate is a pure function. It applies one review with rating d to the
// state prev and returns the updated counters and derived fields.
func Evaluate(prev domain.WordProgress, d domain.Difficulty) MasteryResult {
	res := MasteryResult{
		ReviewCount:    prev.ReviewCount + 1,
		CorrectCount:   prev.CorrectCount,
		IncorrectCount: prev.IncorrectCount,
	}
	if d.IsCorrect() {
		res.CorrectCount++
	} else {
		res.IncorrectCount++
	}

	accuracy := 100 * float64(res.CorrectCount) / float64(max(res.ReviewCount, 1))

	adjustment := 0.0
	switch {
	case d == domain.DifficultyEasy && accuracy > easyBonusFloor:
		adjustment = easyBonus
	case d == domain.DifficultyHard:
		adjustment = hardPenalty
	}

	raw := math.Min(domain.MaxRecognitionScore, math.Max(0, accuracy+adjustment))
	smoothed := float64(prev.RecognitionScore)*previousWeight + raw*currentWeight
	res.RecognitionScore = int(math.Round(smoothed))

	res.Status = DeriveStatus(res.ReviewCount, res.RecognitionScore)
	res.ConfidenceLevel = DeriveConfidence(res.ReviewCount, res.RecognitionScore)

	return res
}

// DeriveStatus maps review count and score to a lifecycle status.
func DeriveStatus(reviewCount, score int) domain.WordStatus {
	switch {
	case reviewCount == 0:
		return domain.WordStatusNew
	case score >= masteredScore && reviewCount >= masteredReviews:
		return domain.WordStatusMastered
	case score >= reviewingScore:
		return domain.WordStatusReviewing
	default:
		return domain.WordStatusLearning
	}
}

// DeriveConfidence maps review count and score to a 0..5 level.
func DeriveConfidence(reviewCount, score int) int {
	if reviewCount < 2 {
		return 0
	}
	if reviewCount < 4 && score < 50 {
		return 1
	}

	switch {
	case score >= 95:
		return 5
	case score >= 85:
		return 4
	case score >= 70:
		return 3
	case score >= 50:
		return 2
	default:
		return 1
	}
}
