package pagio

import (
	"context"
	"log/slog"

	"github.com/pagio-dev/pagio/pkg/history"
	"github.com/pagio-dev/pagio/pkg/middleware"
	"github.com/pagio-dev/pagio/pkg/nav"
	"github.com/pagio-dev/pagio/pkg/page"
)

// ====================================================================
// App Type
// ====================================================================

// App is the main pagio application entry point.
// It wires the page registry, instance cache, guard chain, history
// synchronizer, and transition orchestrator into one object.
//
// Create an App with pagio.New():
//
//	app := pagio.New(pagio.Config{
//	    History: pagio.HistoryConfig{Encoding: pagio.EncodingFragment},
//	})
//
//	app.RegisterPage("home", pagio.Constructor(newHomePage),
//	    pagio.PageOptions{Route: "/"})
//	app.Start(ctx)
type App struct {
	registry *page.Registry
	cache    *page.Cache
	guards   *nav.GuardChain
	history  *history.Synchronizer
	orch     *nav.Orchestrator

	// navigator is the orchestrator behind the configured middleware
	// chain; every Navigate call flows through it.
	navigator middleware.Navigator

	config Config
	logger *slog.Logger
}

// New creates a new pagio application with the given configuration.
func New(cfg Config) *App {
	logger := resolveLogger(cfg.Logger)
	synchronizer := buildSynchronizer(cfg.History, logger)

	app := &App{
		registry: page.NewRegistry(),
		guards:   nav.NewGuardChain(),
		history:  synchronizer,
		config:   cfg,
		logger:   logger,
	}
	app.cache = page.NewCache(app.registry, &appRef{app: app}, logger)

	app.orch = nav.New(nav.Config{
		Registry:  app.registry,
		Cache:     app.cache,
		History:   synchronizer,
		Guards:    app.guards,
		Emitter:   resolveEmitter(cfg.Emitter),
		Logger:    logger,
		Container: cfg.Container,
		Fallbacks: cfg.Fallbacks,
	})
	app.navigator = middleware.Chain(app.orch, cfg.Middleware...)

	if synchronizer != nil {
		synchronizer.NotifyCommits(func(replace bool) {
			mode := "push"
			if replace {
				mode = "replace"
			}
			middleware.RecordHistoryCommit(mode)
		})
	}

	return app
}

// appRef is the non-owning back-reference handed to constructed pages.
// It deliberately exposes only the narrow AppRef surface, not the App.
type appRef struct {
	app *App
}

func (r *appRef) Navigate(ctx context.Context, path string) error {
	return r.app.Navigate(ctx, path).Err
}

func (r *appRef) Logger() *slog.Logger {
	return r.app.logger
}

// ====================================================================
// Registration
// ====================================================================

// RegisterPage records a page under a stable identifier with its route.
//
//	app.RegisterPage("user-detail", pagio.Constructor(newUserPage),
//	    pagio.PageOptions{Route: "/user/:id"})
//
// Identifiers and routes are first-come-first-served: a duplicate
// identifier is rejected, and among overlapping parameterized routes the
// earlier registration wins resolution ties.
func (a *App) RegisterPage(identifier string, factory Factory, opts PageOptions) error {
	if err := a.registry.Register(identifier, factory, opts); err != nil {
		a.logger.Error("page registration failed",
			"page", identifier,
			"route", opts.Route,
			"err", err,
		)
		return err
	}
	a.logger.Debug("page registered", "page", identifier, "route", opts.Route)
	return nil
}

// MustRegisterPage is RegisterPage that panics on error. Use for static
// registrations at startup.
func (a *App) MustRegisterPage(identifier string, factory Factory, opts PageOptions) {
	if err := a.RegisterPage(identifier, factory, opts); err != nil {
		panic(err)
	}
}

// ====================================================================
// Navigation
// ====================================================================

// Navigate runs a navigation to a logical path through the middleware
// chain. The path may carry a query string.
//
// Navigate always terminates in a rendered state and never panics on
// hostile input; inspect the Result for the terminal outcome.
func (a *App) Navigate(ctx context.Context, path string, opts ...NavigateOption) *Result {
	res := a.navigator.Navigate(ctx, path, opts...)
	middleware.RecordPagesLive(a.cache.Len())
	return res
}

// Start subscribes the application to host-originated address changes
// (back/forward) and navigates to the host's current address. Call once
// after registering pages.
func (a *App) Start(ctx context.Context) *Result {
	a.orch.Start(ctx)
	if a.history == nil {
		return a.Navigate(ctx, "/", Silent())
	}

	st, err := a.history.Decode(a.history.Host().Address())
	if err != nil {
		a.logger.Warn("undecodable initial address, starting at root", "err", err)
		st = State{Path: "/"}
	}
	// The address is already what the host shows; committing it again
	// would duplicate the entry. The decoded query rides along so the
	// landing page's OnParams sees it.
	return a.Navigate(ctx, st.Location(), Silent())
}

// Before appends a navigation guard that runs before each transition.
func (a *App) Before(guard BeforeGuard) {
	a.guards.Before(guard)
}

// After appends an observer that runs after each completed transition.
func (a *App) After(guard AfterGuard) {
	a.guards.After(guard)
}

// ====================================================================
// Accessors
// ====================================================================

// Active returns the currently active page, or nil before the first
// successful navigation.
func (a *App) Active() Page {
	return a.orch.Active()
}

// State returns the navigation state of the active page.
func (a *App) State() State {
	return a.orch.State()
}

// Registry returns the page registry for advanced configuration.
// Most apps won't need this.
func (a *App) Registry() *page.Registry {
	return a.registry
}

// Cache returns the page instance cache.
// Most apps won't need this.
func (a *App) Cache() *page.Cache {
	return a.cache
}

// History returns the history synchronizer, or nil when synchronization
// is disabled.
func (a *App) History() *history.Synchronizer {
	return a.history
}

// Config returns the app configuration.
func (a *App) Config() Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// ====================================================================
// Teardown
// ====================================================================

// Teardown stops the application: the history subscription is cancelled,
// live pages are dropped, registrations are cleared, and further
// navigations fail. The App is not reusable afterwards.
func (a *App) Teardown() {
	a.orch.Teardown()
	a.cache.Teardown()
	a.registry.Teardown()
	middleware.RecordPagesLive(a.cache.Len())
	a.logger.Info("application torn down")
}
