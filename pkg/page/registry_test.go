package page

import (
	"context"
	"testing"

	"github.com/pagio-dev/pagio/internal/errors"
)

// nopPage is a minimal page for registration tests.
type nopPage struct {
	Base
}

func nopConstructor(env Env) (Page, error) {
	return &nopPage{}, nil
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("user", Constructor(nopConstructor), Options{Route: "/user/:id"}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	reg, ok := r.Lookup("user")
	if !ok {
		t.Fatal("Lookup should find registration")
	}
	if reg.Identifier != "user" {
		t.Errorf("Identifier = %q", reg.Identifier)
	}
	if reg.Route.Pattern() != "/user/:id" {
		t.Errorf("Route = %q", reg.Route.Pattern())
	}
}

func TestRegistryRejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		factory  Factory
		opts     Options
		wantCode string
	}{
		{"empty identifier", "", Constructor(nopConstructor), Options{Route: "/"}, "R004"},
		{"nil factory", "p", Factory{}, Options{Route: "/"}, "R004"},
		{"bad route", "p", Constructor(nopConstructor), Options{Route: "/a/:x/:x"}, "R003"},
	}

	for _, tt := range tests {
		r := NewRegistry()
		err := r.Register(tt.id, tt.factory, tt.opts)
		if err == nil {
			t.Errorf("%s: Register should fail", tt.name)
			continue
		}
		if code := errors.CodeOf(err); code != tt.wantCode {
			t.Errorf("%s: code = %q, want %q", tt.name, code, tt.wantCode)
		}
	}
}

func TestRegistryDuplicateIdentifier(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("home", Constructor(nopConstructor), Options{Route: "/"}); err != nil {
		t.Fatalf("first Register error: %v", err)
	}

	err := r.Register("home", Constructor(nopConstructor), Options{Route: "/other"})
	if errors.CodeOf(err) != "R001" {
		t.Errorf("duplicate Register err = %v, want R001", err)
	}
}

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("user", Constructor(nopConstructor), Options{Route: "/user/:id"}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	m, ok := r.Resolve("/user/42")
	if !ok {
		t.Fatal("Resolve should match")
	}
	if m.Identifier != "user" || m.Params["id"] != "42" {
		t.Errorf("match = %+v", m)
	}

	if _, ok := r.Resolve("/nope"); ok {
		t.Error("Resolve should miss for unregistered path")
	}
}

func TestRegistryTeardown(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("home", Constructor(nopConstructor), Options{Route: "/"}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	r.Teardown()

	if r.Len() != 0 {
		t.Errorf("Len after Teardown = %d", r.Len())
	}
	if _, ok := r.Lookup("home"); ok {
		t.Error("Lookup should miss after Teardown")
	}
	if _, ok := r.Resolve("/"); ok {
		t.Error("Resolve should miss after Teardown")
	}
}

func TestBaseDefaults(t *testing.T) {
	var b Base
	ctx := context.Background()

	if !b.CanEnter(ctx) {
		t.Error("CanEnter default should be true")
	}
	if err := b.OnParams(ctx, nil, nil); err != nil {
		t.Errorf("OnParams default error: %v", err)
	}
	if err := b.OnEnter(ctx); err != nil {
		t.Errorf("OnEnter default error: %v", err)
	}
	if err := b.OnExit(ctx); err != nil {
		t.Errorf("OnExit default error: %v", err)
	}
	if err := b.Render(ctx, nil); err != nil {
		t.Errorf("Render default error: %v", err)
	}

	b.BindIdentity("home", "/")
	if b.Identifier() != "home" || b.RoutePattern() != "/" {
		t.Errorf("identity = %q %q", b.Identifier(), b.RoutePattern())
	}
}
