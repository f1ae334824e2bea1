package page

import (
	"context"
	"log/slog"
)

// Container is the opaque mount target handed to Render. The navigation
// core never interprets it; the rendering collaborator defines its
// semantics.
type Container = any

// Page is the lifecycle contract the navigation core drives.
//
// Hooks are context-aware and error-returning even when trivially
// synchronous, so the orchestrator sequences every hook under one
// contract.
type Page interface {
	// Identifier returns the stable name the page is registered under.
	Identifier() string

	// RoutePattern returns the pattern the page was registered with.
	RoutePattern() string

	// CanEnter is the page's intrinsic permission check. It runs before
	// the currently active page is exited; returning false renders the
	// denied fallback and leaves the active page undisturbed.
	CanEnter(ctx context.Context) bool

	// OnParams applies new route params and query values. It is called on
	// every navigation to the page, including same-page re-navigation.
	OnParams(ctx context.Context, params, query map[string]string) error

	// OnEnter runs when the page becomes active after not being active.
	OnEnter(ctx context.Context) error

	// OnExit runs when the active page is left. Errors are logged and
	// swallowed; a broken exit hook must not trap the user on a page.
	OnExit(ctx context.Context) error

	// Render draws the page into the container. A render error leaves the
	// previously active page authoritative.
	Render(ctx context.Context, container Container) error
}

// AppRef is the non-owning back-reference from a page to its owning
// application. The application owns the page; the page only looks the
// application up through this interface and must not retain ownership
// semantics over it.
type AppRef interface {
	// Navigate requests a navigation to a logical path.
	//
	// It must not be called synchronously from a lifecycle hook or guard
	// with the context that hook received: transitions are single-flight,
	// and such a call is refused with a coded error rather than allowed
	// to block on the running transition. Navigate after the hook
	// returns, or from a new goroutine with a fresh context.
	Navigate(ctx context.Context, path string) error

	// Logger returns the application logger.
	Logger() *slog.Logger
}

// Env is the merged construction environment handed to a page constructor.
type Env struct {
	// Identifier is the name the page is being constructed for.
	Identifier string

	// Options are the constructor options supplied at registration.
	Options map[string]any

	// App is the back-reference to the owning application. May be nil in
	// tests that construct pages directly.
	App AppRef
}

// Base provides no-op defaults for the Page contract plus identity
// storage. Embed it and override the hooks you need.
type Base struct {
	identifier string
	pattern    string
}

// BindIdentity records the identifier and route pattern a page was
// registered under. The cache calls this once after construction.
func (b *Base) BindIdentity(identifier, pattern string) {
	b.identifier = identifier
	b.pattern = pattern
}

// Identifier returns the bound page identifier.
func (b *Base) Identifier() string { return b.identifier }

// RoutePattern returns the bound route pattern.
func (b *Base) RoutePattern() string { return b.pattern }

// CanEnter defaults to true.
func (b *Base) CanEnter(ctx context.Context) bool { return true }

// OnParams defaults to a no-op.
func (b *Base) OnParams(ctx context.Context, params, query map[string]string) error { return nil }

// OnEnter defaults to a no-op.
func (b *Base) OnEnter(ctx context.Context) error { return nil }

// OnExit defaults to a no-op.
func (b *Base) OnExit(ctx context.Context) error { return nil }

// Render defaults to a no-op.
func (b *Base) Render(ctx context.Context, container Container) error { return nil }

// identityBinder is satisfied by pages that accept identity binding after
// construction. Base implements it; pages managing their own identity may
// ignore it.
type identityBinder interface {
	BindIdentity(identifier, pattern string)
}
