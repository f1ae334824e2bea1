package page

import (
	"context"

	"github.com/pagio-dev/pagio/internal/errors"
)

// RenderFunc is a plain function page: it renders with the params and
// query most recently applied by navigation.
type RenderFunc func(ctx context.Context, container Container, params, query map[string]string) error

// factoryKind discriminates the factory variants.
type factoryKind int

const (
	kindNone factoryKind = iota
	kindConstructor
	kindInstance
	kindHandler
)

// Factory is the tagged variant behind page registration: a constructor,
// a pre-built instance, or a plain render function. The variant is
// resolved here, once, so navigation never branches on dynamic types.
type Factory struct {
	kind      factoryKind
	construct func(Env) (Page, error)
	instance  Page
	handler   RenderFunc
}

// Constructor registers a page built lazily on first navigation.
func Constructor(fn func(Env) (Page, error)) Factory {
	return Factory{kind: kindConstructor, construct: fn}
}

// Instance registers a pre-built page. The instance is still cached and
// identity-bound like any other page.
func Instance(p Page) Factory {
	return Factory{kind: kindInstance, instance: p}
}

// Handler registers a plain render function as a page. The function
// receives the params and query applied by the latest navigation.
func Handler(fn RenderFunc) Factory {
	return Factory{kind: kindHandler, handler: fn}
}

// valid reports whether the factory carries a variant.
func (f Factory) valid() bool {
	switch f.kind {
	case kindConstructor:
		return f.construct != nil
	case kindInstance:
		return f.instance != nil
	case kindHandler:
		return f.handler != nil
	}
	return false
}

// build produces the page instance for this factory.
// A panicking constructor is converted into an N002 error so the caller
// never observes a partial cache entry.
func (f Factory) build(env Env) (p Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			p = nil
			err = errors.New("N002").WithDetailf("factory for %q panicked: %v", env.Identifier, r)
		}
	}()

	switch f.kind {
	case kindConstructor:
		built, cerr := f.construct(env)
		if cerr != nil {
			return nil, errors.New("N002").Wrap(cerr).
				WithDetailf("factory for %q returned an error", env.Identifier)
		}
		if built == nil {
			return nil, errors.New("N002").
				WithDetailf("factory for %q returned a nil page", env.Identifier)
		}
		return built, nil

	case kindInstance:
		return f.instance, nil

	case kindHandler:
		return &funcPage{render: f.handler}, nil
	}

	return nil, errors.New("R004")
}

// funcPage adapts a RenderFunc into the Page contract. It remembers the
// last-applied params and query so the function sees what navigation
// delivered.
type funcPage struct {
	Base
	render RenderFunc
	params map[string]string
	query  map[string]string
}

func (p *funcPage) OnParams(ctx context.Context, params, query map[string]string) error {
	p.params = params
	p.query = query
	return nil
}

func (p *funcPage) Render(ctx context.Context, container Container) error {
	return p.render(ctx, container, p.params, p.query)
}
