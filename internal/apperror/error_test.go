package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestGetCode(t *testing.T) {
	root := errors.New("disk full")

	cases := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, ""},
		{"invalid input", InvalidInput("bad level"), CodeInvalidInput},
		{"not found", NotFound("employee not found"), CodeNotFound},
		{"wrapped persistence", fmt.Errorf("commit: %w", Persistence("insert record", root)), CodePersistence},
		{"plain error", root, CodePersistence},
	}

	for _, c := range cases {
		if got := GetCode(c.err); got != c.want {
			t.Errorf("%s: GetCode = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestWrapUnwrap(t *testing.T) {
	root := errors.New("constraint failed")
	err := Persistence("insert employee", root)

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}
	if err.Error() != "insert employee: constraint failed" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	if Message(err) != "insert employee" {
		t.Fatalf("unexpected user message: %s", Message(err))
	}
}

func TestIs(t *testing.T) {
	if !Is(NotFound("x"), CodeNotFound) {
		t.Fatalf("expected not_found")
	}
	if Is(nil, CodeNotFound) {
		t.Fatalf("nil must not match any code")
	}
}
