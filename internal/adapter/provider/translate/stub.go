package translate

import (
	"context"

	"github.com/heartmarshall/myenglish-progress/internal/provider"
)

// Stub is the translator used when no translation backend is configured.
type Stub struct{}

// NewStub creates a new no-op translation provider.
func NewStub() *Stub { return &Stub{} }

// Translate always fails with provider.ErrNotConfigured.
func (s *Stub) Translate(_ context.Context, _, _, _ string) (string, error) {
	return "", provider.ErrNotConfigured
}
