package domain

import "github.com/google/uuid"

// DocumentVersion is the current schema version of a serialized progress document.
const DocumentVersion = "2.0"

// ProgressDocument is the versioned container used for file storage and export.
type ProgressDocument struct {
	Version   string                  `json:"version"`
	LearnerID string                  `json:"learnerId"`
	Words     map[string]WordProgress `json:"words"`
	Stats     SessionStats            `json:"stats"`
}

// NewProgressDocument returns an empty document at the current version.
func NewProgressDocument() ProgressDocument {
	return ProgressDocument{
		Version:   DocumentVersion,
		LearnerID: NewLearnerID(),
		Words:     map[string]WordProgress{},
	}
}

// NewLearnerID generates an identifier for a local learner.
func NewLearnerID() string {
	return "local-" + uuid.NewString()
}
