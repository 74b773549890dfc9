package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/heartmarshall/myenglish-progress/internal/provider"
)

func TestStub_Translate_NotConfigured(t *testing.T) {
	t.Parallel()

	got, err := NewStub().Translate(context.Background(), "hello", "EN", "TR")
	if !errors.Is(err, provider.ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
	if got != "" {
		t.Fatalf("expected empty translation, got %q", got)
	}
}
