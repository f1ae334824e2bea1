package route

// Match contains the result of matching a path against the table.
type Match struct {
	// Identifier is the page identifier the route was registered under.
	Identifier string

	// Route is the compiled route that matched.
	Route *CompiledRoute

	// Params are the extracted route parameters.
	Params map[string]string
}

// tableEntry pairs a compiled route with its page identifier.
type tableEntry struct {
	identifier string
	route      *CompiledRoute
}

// Table holds compiled routes in registration order and resolves paths
// against them.
//
// Precedence: an exact literal match wins over any dynamic match; among
// dynamic routes the first-registered route wins. Two static routes never
// collide because their canonical patterns would be identical and the
// owning registry rejects duplicate patterns upstream.
type Table struct {
	static  map[string]tableEntry
	dynamic []tableEntry
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{
		static: make(map[string]tableEntry),
	}
}

// Add registers a compiled route under a page identifier.
// Registration order is significant for dynamic routes.
func (t *Table) Add(identifier string, r *CompiledRoute) {
	entry := tableEntry{identifier: identifier, route: r}
	if r.Static() {
		// Last write wins within statics; the registry rejects duplicate
		// identifiers before it gets here.
		t.static[r.Pattern()] = entry
		return
	}
	t.dynamic = append(t.dynamic, entry)
}

// Match resolves a path to a registered route.
// The path is normalized before matching. A miss returns (nil, false);
// this is the normal not-found outcome, not an error.
func (t *Table) Match(path string) (*Match, bool) {
	path = Normalize(path)

	if entry, ok := t.static[path]; ok {
		return &Match{
			Identifier: entry.identifier,
			Route:      entry.route,
			Params:     map[string]string{},
		}, true
	}

	for _, entry := range t.dynamic {
		if params, ok := entry.route.Match(path); ok {
			return &Match{
				Identifier: entry.identifier,
				Route:      entry.route,
				Params:     params,
			}, true
		}
	}

	return nil, false
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	return len(t.static) + len(t.dynamic)
}

// Clear removes all routes. Used during application teardown.
func (t *Table) Clear() {
	t.static = make(map[string]tableEntry)
	t.dynamic = nil
}
