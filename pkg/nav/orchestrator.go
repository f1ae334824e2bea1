package nav

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	"github.com/pagio-dev/pagio/internal/errors"
	"github.com/pagio-dev/pagio/pkg/history"
	"github.com/pagio-dev/pagio/pkg/page"
	"github.com/pagio-dev/pagio/pkg/route"
)

// Outcome is the terminal state a Navigate call resolved into.
type Outcome int

const (
	// OutcomeActive: the target page rendered and became active.
	OutcomeActive Outcome = iota

	// OutcomeNoop: the path already produced the current active state and
	// force was not set. Nothing ran.
	OutcomeNoop

	// OutcomeNotFound: no route matched, or the page could not be built.
	OutcomeNotFound

	// OutcomeDenied: the target page refused entry.
	OutcomeDenied

	// OutcomeCancelled: a before-guard vetoed the navigation.
	OutcomeCancelled

	// OutcomeError: the target page's render hook failed.
	OutcomeError
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeActive:
		return "active"
	case OutcomeNoop:
		return "noop"
	case OutcomeNotFound:
		return "notfound"
	case OutcomeDenied:
		return "denied"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeError:
		return "error"
	}
	return "unknown"
}

// Result describes how a Navigate call terminated.
type Result struct {
	// Outcome is the terminal state.
	Outcome Outcome

	// Path is the normalized logical path of the request.
	Path string

	// Page is the page that rendered: the target on success, the
	// fallback otherwise, or nil for a no-op.
	Page page.Page

	// Err carries the coded diagnostic for non-success outcomes.
	Err error
}

// Config wires an Orchestrator.
type Config struct {
	// Registry resolves paths and identifiers. Required.
	Registry *page.Registry

	// Cache owns the live page instances. Required.
	Cache *page.Cache

	// History synchronizes the host-visible address. Optional; without it
	// navigations simply never commit.
	History *history.Synchronizer

	// Guards is the navigation guard chain. Optional.
	Guards *GuardChain

	// Emitter receives lifecycle events. Default: NopEmitter.
	Emitter Emitter

	// Logger receives hook failure diagnostics. Default: slog.Default().
	Logger *slog.Logger

	// Container is the opaque mount target handed to every Render.
	Container page.Container

	// Fallbacks are the escape-state pages. Missing entries get no-op
	// defaults.
	Fallbacks Fallbacks
}

// Orchestrator coordinates route resolution, page lifecycle, history
// commits, and event emission for every navigation.
//
// Concurrency policy: serialize-and-queue. A mutex admits one transition
// at a time; callers blocked on it proceed in lock-acquisition order once
// the in-flight transition reaches a terminal state.
type Orchestrator struct {
	mu sync.Mutex

	registry *page.Registry
	cache    *page.Cache
	history  *history.Synchronizer
	guards   *GuardChain
	emitter  Emitter
	logger   *slog.Logger

	container page.Container
	fallbacks Fallbacks

	active      page.Page
	activeState history.State

	// activeKey is the normalized "path?query" that produced the current
	// active state; the idempotence check compares against it.
	activeKey string

	tornDown bool
}

// New creates an orchestrator.
func New(cfg Config) *Orchestrator {
	if cfg.Guards == nil {
		cfg.Guards = NewGuardChain()
	}
	if cfg.Emitter == nil {
		cfg.Emitter = NopEmitter()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Orchestrator{
		registry:  cfg.Registry,
		cache:     cfg.Cache,
		history:   cfg.History,
		guards:    cfg.Guards,
		emitter:   cfg.Emitter,
		logger:    cfg.Logger,
		container: cfg.Container,
		fallbacks: cfg.Fallbacks.fillDefaults(),
	}
}

// transitionKey marks a context handed to the hooks and guards of a
// running transition.
type transitionKey struct{}

// Navigate runs the transition state machine for a logical path. The path
// may carry a query string.
//
// Every call terminates in a rendered state; the returned Result reports
// which one. The error inside the Result is diagnostic, not fatal: the
// orchestrator remains usable for the next call regardless of outcome.
//
// Calling Navigate from inside a hook or guard of a running transition
// (with the context that hook received) is refused with N008 instead of
// blocking on the transition mutex forever. Navigate after the hook
// returns, or from a new goroutine with a fresh context.
func (o *Orchestrator) Navigate(ctx context.Context, path string, opts ...Option) *Result {
	if ctx.Value(transitionKey{}) != nil {
		return &Result{
			Outcome: OutcomeError,
			Path:    path,
			Err:     errors.New("N008").WithDetailf("path %q", path),
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	ctx = context.WithValue(ctx, transitionKey{}, true)
	options := applyOptions(opts)

	if o.tornDown {
		return &Result{Outcome: OutcomeError, Path: path, Err: errors.New("N007")}
	}

	// Resolving.
	canonPath, rawQuery, changed, err := route.Canonicalize(path)
	if err != nil {
		o.logger.Warn("rejected hostile path", "path", path, "err", err)
		return o.toNotFound(ctx, path, errors.New("N001").Wrap(err))
	}
	// A canonicalization fixup is internally corrective; pushing it would
	// duplicate history entries.
	if changed {
		options.replace = true
	}

	key := canonPath
	if rawQuery != "" {
		key += "?" + rawQuery
	}

	// Idempotence: repeating the path that produced the current active
	// state is free. Redundant history callbacks depend on this.
	if !options.force && o.active != nil && key == o.activeKey {
		return &Result{Outcome: OutcomeNoop, Path: canonPath, Page: o.active}
	}

	match, ok := o.registry.Resolve(canonPath)
	if !ok {
		return o.toNotFound(ctx, canonPath, errors.New("N001").WithDetailf("path %q", canonPath))
	}

	next, err := o.cache.GetOrCreate(ctx, match.Identifier)
	if err != nil {
		// Construction failure renders like a 404 but keeps its own code
		// so callers can differentiate.
		return o.toNotFound(ctx, canonPath, err)
	}

	// GuardCheck: the chain first, then the page's intrinsic permission.
	// Both run before the current page is exited, so a refused navigation
	// never disturbs the active page.
	allowed, guardErr := o.guards.runBefore(ctx, match, next)
	if guardErr != nil {
		o.logger.Warn("before-guard failed, navigation cancelled",
			"path", canonPath,
			"page", match.Identifier,
			"err", guardErr,
		)
		return &Result{Outcome: OutcomeCancelled, Path: canonPath, Err: errors.New("N003").Wrap(guardErr)}
	}
	if !allowed {
		return &Result{Outcome: OutcomeCancelled, Path: canonPath, Err: errors.New("N003")}
	}

	if !next.CanEnter(ctx) {
		return o.toDenied(ctx, canonPath, match)
	}

	query := parseQuery(rawQuery)
	prev := o.active
	entering := prev != next

	// Exiting(prev). A broken exit hook must not trap the user.
	if prev != nil && entering {
		if err := prev.OnExit(ctx); err != nil {
			o.logHookFailure("exit", prev.Identifier(), err)
		}
	}

	// ParamUpdate(next): always, so same-page re-navigation observes the
	// new params.
	if err := next.OnParams(ctx, match.Params, query); err != nil {
		o.logHookFailure("params", next.Identifier(), err)
	}

	// Entering(next). Partial initialization beats a stuck navigation;
	// rendering is attempted regardless.
	if entering {
		if err := next.OnEnter(ctx); err != nil {
			o.logHookFailure("enter", next.Identifier(), err)
		}
	}

	// Rendering(next). Failure here is fatal to this navigation only: the
	// previously active page is presumed still visible and stays
	// authoritative.
	if err := next.Render(ctx, o.container); err != nil {
		renderErr := errors.New("N006").Wrap(err).WithDetailf("page %q", next.Identifier())
		o.logger.Error("render failed", "page", next.Identifier(), "err", renderErr)
		o.renderFallback(ctx, o.fallbacks.Error)
		return &Result{Outcome: OutcomeError, Path: canonPath, Page: o.fallbacks.Error, Err: renderErr}
	}

	// Commit.
	o.active = next
	o.activeKey = key
	o.activeState = history.State{Path: canonPath, Params: match.Params, Query: query}

	if !options.silent && o.history != nil {
		address := o.history.Encode(o.activeState)
		if err := o.history.Commit(address, options.replace); err != nil {
			o.logger.Error("history commit failed", "address", address, "err", err)
		}
	}

	// Notify, ordered: hide before show.
	if prev != nil && entering {
		o.emitter.Emit(EventPageHide, PageEvent{Page: prev.Identifier()})
	}
	if entering {
		o.emitter.Emit(EventPageShow, PageEvent{Page: next.Identifier(), Path: canonPath})
	}
	o.emitter.Emit(EventPageChanged, PageEvent{Page: next.Identifier(), Path: canonPath})
	o.emitter.Emit(EventRouteChanged, RouteEvent{
		Path:   canonPath,
		Page:   next.Identifier(),
		Params: match.Params,
	})

	o.guards.runAfter(ctx, match, next, o.logger)

	return &Result{Outcome: OutcomeActive, Path: canonPath, Page: next}
}

// Start subscribes the orchestrator to externally-triggered address
// changes (back/forward). Host-originated navigations run silent: the
// address has already changed, committing again would loop.
func (o *Orchestrator) Start(ctx context.Context) {
	if o.history == nil {
		return
	}
	o.history.Subscribe(func(st history.State) {
		o.Navigate(ctx, st.Location(), Silent())
	})
}

// Active returns the currently active page, or nil before the first
// successful navigation.
func (o *Orchestrator) Active() page.Page {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

// State returns the navigation state of the current active page.
func (o *Orchestrator) State() history.State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activeState
}

// Teardown stops the orchestrator: the history subscription is cancelled
// and further Navigate calls fail with N007. The owning application
// clears the registry and cache.
func (o *Orchestrator) Teardown() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.history != nil {
		o.history.Close()
	}
	o.active = nil
	o.activeKey = ""
	o.activeState = history.State{}
	o.tornDown = true
}

// toNotFound renders the not-found fallback and emits route:notfound.
// The current history entry is left unchanged: a dead link must not eat a
// back-button press.
func (o *Orchestrator) toNotFound(ctx context.Context, path string, cause error) *Result {
	o.renderFallback(ctx, o.fallbacks.NotFound)
	o.emitter.Emit(EventRouteNotFound, RouteEvent{Path: path, Err: cause})
	return &Result{Outcome: OutcomeNotFound, Path: path, Page: o.fallbacks.NotFound, Err: cause}
}

// toDenied renders the denied fallback and emits route:denied. The active
// page was never exited and the URL is unchanged.
func (o *Orchestrator) toDenied(ctx context.Context, path string, match *route.Match) *Result {
	o.renderFallback(ctx, o.fallbacks.Denied)
	o.emitter.Emit(EventRouteDenied, RouteEvent{Path: path, Page: match.Identifier, Params: match.Params})
	return &Result{
		Outcome: OutcomeDenied,
		Path:    path,
		Page:    o.fallbacks.Denied,
		Err:     errors.New("N004").WithDetailf("page %q", match.Identifier),
	}
}

// renderFallback renders an escape-state page. A broken fallback is
// logged and swallowed; fallbacks are the floor, there is nothing below
// them to fall to.
func (o *Orchestrator) renderFallback(ctx context.Context, p page.Page) {
	if err := p.Render(ctx, o.container); err != nil {
		o.logger.Error("fallback render failed", "page", p.Identifier(), "err", err)
	}
}

func (o *Orchestrator) logHookFailure(hook, pageID string, err error) {
	o.logger.Warn("lifecycle hook failed",
		"hook", hook,
		"page", pageID,
		"err", errors.FromError(err, "N005"),
	)
}

// parseQuery parses a raw query string into a flat map, dropping
// malformed input.
func parseQuery(rawQuery string) map[string]string {
	if rawQuery == "" {
		return nil
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil
	}
	out := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}
