package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewRegisteredCode(t *testing.T) {
	tests := []struct {
		code     string
		category Category
	}{
		{"N001", CategoryRoute},
		{"N002", CategoryPage},
		{"N003", CategoryGuard},
		{"N006", CategoryRender},
		{"R001", CategoryRegistration},
		{"H001", CategoryHistory},
	}

	for _, tt := range tests {
		err := New(tt.code)
		if err.Code != tt.code {
			t.Errorf("New(%q).Code = %q", tt.code, err.Code)
		}
		if err.Category != tt.category {
			t.Errorf("New(%q).Category = %q, want %q", tt.code, err.Category, tt.category)
		}
		if err.Message == "" {
			t.Errorf("New(%q) has empty message", tt.code)
		}
		if !strings.HasPrefix(err.Error(), tt.code+": ") {
			t.Errorf("Error() = %q, want %q prefix", err.Error(), tt.code)
		}
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("X999")
	if err.Code != "X999" {
		t.Errorf("Code = %q, want X999", err.Code)
	}
	if err.Message != "Unknown error" {
		t.Errorf("Message = %q, want Unknown error", err.Message)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := New("N002").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Error() = %q, want wrapped cause included", err.Error())
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New("N004").Wrap(stderrors.New("nope")))

	if !stderrors.Is(err, New("N004")) {
		t.Error("errors.Is should match PagioError by code through wrapping")
	}
	if stderrors.Is(err, New("N001")) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"direct", New("N001"), "N001"},
		{"wrapped", fmt.Errorf("ctx: %w", New("H002")), "H002"},
		{"plain", stderrors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		if got := CodeOf(tt.err); got != tt.want {
			t.Errorf("%s: CodeOf = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "N002") != nil {
		t.Error("FromError(nil) should be nil")
	}

	pe := New("N006")
	if got := FromError(pe, "N002"); got != pe {
		t.Error("FromError should pass through an existing PagioError")
	}

	wrapped := FromError(stderrors.New("boom"), "N002")
	if wrapped.Code != "N002" {
		t.Errorf("Code = %q, want N002", wrapped.Code)
	}
	if wrapped.Wrapped == nil {
		t.Error("cause not preserved")
	}
}

func TestFormat(t *testing.T) {
	err := New("N002").
		Wrap(stderrors.New("factory exploded")).
		WithSuggestion(`Check the page factory registered for "settings"`)

	out := err.Format()
	for _, want := range []string{
		"ERROR N002 (page)",
		"Caused by: factory exploded",
		"Hint: Check the page factory",
		"Learn more: https://pagio.dev/docs/errors/N002",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestRegisterCustomCode(t *testing.T) {
	Register("A001", ErrorTemplate{
		Category: CategoryPage,
		Message:  "Custom app error",
	})
	defer delete(registry, "A001")

	err := New("A001")
	if err.Message != "Custom app error" {
		t.Errorf("Message = %q", err.Message)
	}
	if _, ok := Lookup("A001"); !ok {
		t.Error("Lookup should find registered code")
	}
}
