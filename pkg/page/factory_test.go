package page

import (
	"context"
	"testing"
)

func TestFactoryVariants(t *testing.T) {
	prebuilt := &nopPage{}

	tests := []struct {
		name    string
		factory Factory
	}{
		{"constructor", Constructor(nopConstructor)},
		{"instance", Instance(prebuilt)},
		{"handler", Handler(func(ctx context.Context, container Container, params, query map[string]string) error {
			return nil
		})},
	}

	for _, tt := range tests {
		if !tt.factory.valid() {
			t.Errorf("%s: factory should be valid", tt.name)
			continue
		}
		p, err := tt.factory.build(Env{Identifier: "x"})
		if err != nil {
			t.Errorf("%s: build error: %v", tt.name, err)
			continue
		}
		if p == nil {
			t.Errorf("%s: build returned nil page", tt.name)
		}
	}
}

func TestFactoryInstanceIsPassedThrough(t *testing.T) {
	prebuilt := &nopPage{}
	p, err := Instance(prebuilt).build(Env{Identifier: "x"})
	if err != nil {
		t.Fatalf("build error: %v", err)
	}
	if p != Page(prebuilt) {
		t.Error("Instance factory should return the supplied page")
	}
}

func TestFactoryZeroValueInvalid(t *testing.T) {
	var f Factory
	if f.valid() {
		t.Error("zero factory should be invalid")
	}
	if _, err := f.build(Env{}); err == nil {
		t.Error("building a zero factory should fail")
	}
}

func TestHandlerPageSeesLatestParams(t *testing.T) {
	var gotParams, gotQuery map[string]string
	f := Handler(func(ctx context.Context, container Container, params, query map[string]string) error {
		gotParams, gotQuery = params, query
		return nil
	})

	p, err := f.build(Env{Identifier: "fn"})
	if err != nil {
		t.Fatalf("build error: %v", err)
	}
	ctx := context.Background()

	if err := p.OnParams(ctx, map[string]string{"id": "1"}, map[string]string{"q": "a"}); err != nil {
		t.Fatalf("OnParams error: %v", err)
	}
	if err := p.Render(ctx, nil); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if gotParams["id"] != "1" || gotQuery["q"] != "a" {
		t.Errorf("render saw params=%v query=%v", gotParams, gotQuery)
	}

	// Same-page re-navigation delivers fresh params to the next render.
	if err := p.OnParams(ctx, map[string]string{"id": "2"}, nil); err != nil {
		t.Fatalf("OnParams error: %v", err)
	}
	if err := p.Render(ctx, nil); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if gotParams["id"] != "2" {
		t.Errorf(`second render saw id=%q, want "2"`, gotParams["id"])
	}
}
