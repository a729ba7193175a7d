package tangoerr

import (
	"errors"
	"testing"
)

func TestCheckErrorMessage(t *testing.T) {
	err := &CheckError{Kind: NoStampExists, Source: "src/hello.rs", Target: "src/hello.md"}
	got := err.Error()
	if got == "" {
		t.Fatal("expected a non-empty message")
	}
	if !errors.As(error(err), new(*CheckError)) {
		t.Errorf("expected errors.As to recognize *CheckError")
	}
}

func TestIOErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := Wrap("create target", cause)
	if !errors.Is(wrapped, cause) {
		t.Errorf("expected errors.Is to find the wrapped cause")
	}
}

func TestWrapNilIsNil(t *testing.T) {
	if Wrap("noop", nil) != nil {
		t.Errorf("expected Wrap(op, nil) to return nil")
	}
}

func TestWarningsErrorMessage(t *testing.T) {
	w := &WarningsError{Warnings: []Warning{
		{Kind: EncodedURLMismatch, Path: "src/hello.md", Expect: "abc", Actual: "xyz"},
	}}
	if w.Error() == "" {
		t.Fatal("expected a non-empty warnings message")
	}
}
