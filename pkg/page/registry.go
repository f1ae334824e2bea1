package page

import (
	"sync"

	"github.com/pagio-dev/pagio/internal/errors"
	"github.com/pagio-dev/pagio/pkg/route"
)

// Options configures a page registration.
type Options struct {
	// Route is the pattern navigations resolve against.
	Route string

	// Constructor options handed to the factory as Env.Options.
	FactoryOptions map[string]any
}

// Registration is one immutable page registration.
type Registration struct {
	Identifier string
	Factory    Factory
	Route      *route.CompiledRoute
	Options    map[string]any
}

// Registry maps page identifiers to their registrations and owns the
// route table derived from them.
//
// The registry is an explicit object owned by one application instance;
// there is no package-level registration state. Registrations are
// immutable after creation except for being looked up.
type Registry struct {
	mu    sync.RWMutex
	pages map[string]*Registration
	table *route.Table
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		pages: make(map[string]*Registration),
		table: route.NewTable(),
	}
}

// Register records a page under an identifier.
//
// Returns R001 for a duplicate identifier, R003 for an uncompilable
// route pattern, and R004 for an empty factory. Registration order is
// significant: among parameterized routes, earlier registrations win
// route resolution ties.
func (r *Registry) Register(identifier string, f Factory, opts Options) error {
	if identifier == "" {
		return errors.New("R004").WithDetailf("empty page identifier")
	}
	if !f.valid() {
		return errors.New("R004").WithDetailf("page %q", identifier)
	}

	compiled, err := route.Compile(opts.Route)
	if err != nil {
		return errors.FromError(err, "R003")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pages[identifier]; exists {
		return errors.New("R001").WithDetailf("page %q", identifier)
	}

	r.pages[identifier] = &Registration{
		Identifier: identifier,
		Factory:    f,
		Route:      compiled,
		Options:    opts.FactoryOptions,
	}
	r.table.Add(identifier, compiled)
	return nil
}

// Lookup returns the registration for an identifier.
func (r *Registry) Lookup(identifier string) (*Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.pages[identifier]
	return reg, ok
}

// Resolve matches a logical path against the registered routes.
func (r *Registry) Resolve(path string) (*route.Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Match(path)
}

// Len returns the number of registrations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pages)
}

// Teardown clears all registrations and the route table.
func (r *Registry) Teardown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages = make(map[string]*Registration)
	r.table.Clear()
}
