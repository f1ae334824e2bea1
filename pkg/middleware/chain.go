package middleware

import (
	"context"

	"github.com/pagio-dev/pagio/pkg/nav"
)

// Navigator is the navigation surface middleware wraps. The orchestrator
// implements it.
type Navigator interface {
	Navigate(ctx context.Context, path string, opts ...nav.Option) *nav.Result
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(ctx context.Context, path string, opts ...nav.Option) *nav.Result

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(ctx context.Context, path string, opts ...nav.Option) *nav.Result {
	return f(ctx, path, opts...)
}

// Middleware wraps a Navigator with cross-cutting behavior.
type Middleware func(Navigator) Navigator

// Chain applies middlewares around a navigator. The first middleware is
// outermost: it sees the navigation first and its result last.
func Chain(n Navigator, mws ...Middleware) Navigator {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			n = mws[i](n)
		}
	}
	return n
}
