package oerror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKindMatching(t *testing.T) {
	err := Newf(KindMissingDependency, "camera rig is nil")
	if !errors.Is(err, ErrMissingDependency) {
		t.Fatalf("expected %v to match ErrMissingDependency", err)
	}
	if errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("expected %v not to match ErrInvalidQuery", err)
	}

	wrapped := fmt.Errorf("controller: %w", err)
	if !errors.Is(wrapped, ErrMissingDependency) {
		t.Fatal("expected wrapped error to keep its kind")
	}
	if got := err.Error(); got != "missing dependency: camera rig is nil" {
		t.Fatalf("unexpected message %q", got)
	}
}
