package page

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pagio-dev/pagio/internal/errors"
)

// Cache lazily constructs and memoizes exactly one live page per
// identifier.
//
// The cache is the authoritative owner of every page it builds; callers
// hold only transient references during a transition. It is unbounded by
// design. A failed construction stores nothing and is not retried
// automatically; the next GetOrCreate for the identifier invokes the
// factory again only because the caller asked again.
type Cache struct {
	mu       sync.Mutex
	registry *Registry
	app      AppRef
	logger   *slog.Logger
	pages    map[string]Page
}

// NewCache creates a cache over a registry. app is handed to constructed
// pages as their non-owning back-reference and may be nil.
func NewCache(registry *Registry, app AppRef, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		registry: registry,
		app:      app,
		logger:   logger,
		pages:    make(map[string]Page),
	}
}

// GetOrCreate returns the live page for an identifier, constructing it on
// first use.
//
// The returned instance is reference-stable: every call for the same
// identifier yields the same Page. Returns R002 for an unknown
// identifier and N002 when construction fails.
func (c *Cache) GetOrCreate(ctx context.Context, identifier string) (Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.pages[identifier]; ok {
		return p, nil
	}

	reg, ok := c.registry.Lookup(identifier)
	if !ok {
		return nil, errors.New("R002").WithDetailf("page %q", identifier)
	}

	p, err := reg.Factory.build(Env{
		Identifier: identifier,
		Options:    reg.Options,
		App:        c.app,
	})
	if err != nil {
		c.logger.Error("page construction failed",
			"page", identifier,
			"err", err,
		)
		return nil, err
	}

	if binder, ok := p.(identityBinder); ok {
		binder.BindIdentity(identifier, reg.Route.Pattern())
	}

	c.pages[identifier] = p
	return p, nil
}

// Peek returns the cached page without constructing one.
func (c *Cache) Peek(identifier string) (Page, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pages[identifier]
	return p, ok
}

// Len returns the number of live pages.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pages)
}

// Teardown drops every live page. Only the whole-application teardown
// calls this; pages are never evicted individually.
func (c *Cache) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = make(map[string]Page)
}
