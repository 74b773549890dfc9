package domain

// Difficulty is the learner's self-assessed recall ease for one review.
type Difficulty string

const (
	DifficultyHard   Difficulty = "hard"
	DifficultyMedium Difficulty = "medium"
	DifficultyEasy   Difficulty = "easy"
)

func (d Difficulty) String() string { return string(d) }

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyHard, DifficultyMedium, DifficultyEasy:
		return true
	}
	return false
}

// IsCorrect reports whether a review with this rating counts as a correct recall.
// Only "hard" counts as incorrect.
func (d Difficulty) IsCorrect() bool { return d != DifficultyHard }

// WordStatus is the lifecycle stage of a word.
type WordStatus string

const (
	WordStatusNew       WordStatus = "new"
	WordStatusLearning  WordStatus = "learning"
	WordStatusReviewing WordStatus = "reviewing"
	WordStatusMastered  WordStatus = "mastered"
)

func (s WordStatus) String() string { return string(s) }

func (s WordStatus) IsValid() bool {
	switch s {
	case WordStatusNew, WordStatusLearning, WordStatusReviewing, WordStatusMastered:
		return true
	}
	return false
}

// AllWordStatuses lists statuses in lifecycle order.
var AllWordStatuses = []WordStatus{
	WordStatusNew, WordStatusLearning, WordStatusReviewing, WordStatusMastered,
}

// CEFRLevel is a Common European Framework proficiency band.
type CEFRLevel string

const (
	CEFRA1 CEFRLevel = "A1"
	CEFRA2 CEFRLevel = "A2"
	CEFRB1 CEFRLevel = "B1"
	CEFRB2 CEFRLevel = "B2"
	CEFRC1 CEFRLevel = "C1"
	CEFRC2 CEFRLevel = "C2"
)

func (l CEFRLevel) String() string { return string(l) }

func (l CEFRLevel) IsValid() bool {
	switch l {
	case CEFRA1, CEFRA2, CEFRB1, CEFRB2, CEFRC1, CEFRC2:
		return true
	}
	return false
}

// AllCEFRLevels lists levels from beginner to proficient.
var AllCEFRLevels = []CEFRLevel{CEFRA1, CEFRA2, CEFRB1, CEFRB2, CEFRC1, CEFRC2}
