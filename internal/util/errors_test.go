package util

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrPublicMatching(t *testing.T) {
	kind := ErrPublic("thing not found")
	wrapped := fmt.Errorf("%w: extra context", kind)

	if !errors.Is(wrapped, kind) {
		t.Error("a wrapped public error must match its own kind")
	}
	if !errors.Is(wrapped, ErrPublic("")) {
		t.Error("the empty public error must match any public error")
	}
	if errors.Is(wrapped, ErrPublic("something else")) {
		t.Error("distinct public errors must not match each other")
	}
	if errors.Is(errors.New("thing not found"), ErrPublic("")) {
		t.Error("a plain error must not pass as public")
	}
}

func TestConcatErrors(t *testing.T) {
	if err := ConcatErrors(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	err := ConcatErrors([]error{
		errors.New("one"),
		nil,
		errors.New("two"),
	})
	if err == nil {
		t.Fatal("expected an error")
	}
}
