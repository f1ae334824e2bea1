package nav

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pagio-dev/pagio/pkg/page"
	"github.com/pagio-dev/pagio/pkg/route"
)

// BeforeGuard runs before a navigation commits to leaving the current
// page. Returning false or an error cancels the whole navigation with no
// side effects: no history update, no hook calls beyond the guard itself.
//
// Guards are a general extensibility point; they are distinct from the
// page's own CanEnter check.
type BeforeGuard func(ctx context.Context, match *route.Match, p page.Page) (bool, error)

// AfterGuard observes a completed navigation. Errors are logged only.
type AfterGuard func(ctx context.Context, match *route.Match, p page.Page) error

// GuardChain is an ordered list of before/after navigation guards.
type GuardChain struct {
	mu     sync.RWMutex
	before []BeforeGuard
	after  []AfterGuard
}

// NewGuardChain creates an empty guard chain.
func NewGuardChain() *GuardChain {
	return &GuardChain{}
}

// Before appends a before-guard. Guards run in registration order.
func (g *GuardChain) Before(guard BeforeGuard) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.before = append(g.before, guard)
}

// After appends an after-guard.
func (g *GuardChain) After(guard AfterGuard) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.after = append(g.after, guard)
}

// runBefore executes the before-guards in order. The first veto wins;
// a guard error counts as a veto and is returned for logging.
func (g *GuardChain) runBefore(ctx context.Context, match *route.Match, p page.Page) (bool, error) {
	g.mu.RLock()
	guards := g.before
	g.mu.RUnlock()

	for _, guard := range guards {
		ok, err := guard(ctx, match, p)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// runAfter executes the after-guards in order, logging failures.
func (g *GuardChain) runAfter(ctx context.Context, match *route.Match, p page.Page, logger *slog.Logger) {
	g.mu.RLock()
	guards := g.after
	g.mu.RUnlock()

	for _, guard := range guards {
		if err := guard(ctx, match, p); err != nil {
			logger.Warn("after-guard failed",
				"page", p.Identifier(),
				"err", err,
			)
		}
	}
}
