package gencoro

import (
	"errors"
	"testing"
)

func TestExhaustedError(t *testing.T) {
	bare := &Exhausted{}
	if bare.Error() != "gencoro: coroutine exhausted" {
		t.Errorf("Expected bare message, got %q", bare.Error())
	}
	if !errors.Is(bare, ErrExhausted) {
		t.Error("Expected Exhausted to match ErrExhausted")
	}

	withValue := &Exhausted{Value: 42}
	if withValue.Error() != "gencoro: coroutine exhausted: 42" {
		t.Errorf("Expected message with value, got %q", withValue.Error())
	}

	var ex *Exhausted
	if !errors.As(withValue, &ex) || ex.Value != 42 {
		t.Errorf("Expected As to recover the final value, got %v", ex)
	}
}

func TestUsageError(t *testing.T) {
	plain := &UsageError{msg: "send before first resume"}
	if plain.Error() != "gencoro: send before first resume" {
		t.Errorf("Expected prefixed message, got %q", plain.Error())
	}
	if errors.Unwrap(plain) != nil {
		t.Errorf("Expected no cause, got %v", errors.Unwrap(plain))
	}

	caused := &UsageError{msg: "yield outside a coroutine", cause: ErrNotCoroutine}
	if !errors.Is(caused, ErrNotCoroutine) {
		t.Error("Expected UsageError to match its cause")
	}
}
