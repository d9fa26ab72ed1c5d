package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorUnwrapsToSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		code     string
	}{
		{name: "not found", err: NotFound("room not found"), sentinel: ErrNotFound, code: ErrCodeNotFound},
		{name: "validation", err: Validation("name is required"), sentinel: ErrValidation, code: ErrCodeValidation},
		{name: "internal", err: Internal(errors.New("disk full")), sentinel: ErrInternal, code: ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("handler: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Fatalf("expected %v to match %v", wrapped, tt.sentinel)
			}
			if got := CodeOf(wrapped); got != tt.code {
				t.Errorf("expected code %q, got %q", tt.code, got)
			}
		})
	}
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("sqlite: database is locked")
	err := Internal(cause)

	if err.Error() != "internal server error" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to stay reachable for logging")
	}
}

func TestCodeOfPlainError(t *testing.T) {
	if got := CodeOf(errors.New("boom")); got != ErrCodeInternal {
		t.Errorf("expected %q, got %q", ErrCodeInternal, got)
	}
}
