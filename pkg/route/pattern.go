package route

import (
	"strings"

	"github.com/pagio-dev/pagio/internal/errors"
)

// segment is one compiled element of a route pattern.
type segment struct {
	// literal is the exact text to match (static segments only)
	literal string

	// isParam indicates a parameter segment (:id)
	isParam bool

	// isWildcard indicates a wildcard segment (*rest)
	isWildcard bool

	// paramName is the parameter name (without : or *)
	paramName string
}

// CompiledRoute is a route pattern compiled into a matchable specification.
type CompiledRoute struct {
	pattern  string
	segments []segment
	params   []string
}

// Compile parses a route pattern into a CompiledRoute.
//
// Returns an R003 error for an empty pattern, duplicate parameter names,
// or a wildcard that is not the final segment.
func Compile(pattern string) (*CompiledRoute, error) {
	if pattern == "" {
		return nil, errors.New("R003").WithDetailf("empty pattern")
	}

	canon := Normalize(pattern)
	r := &CompiledRoute{pattern: canon}

	seen := make(map[string]bool)
	parts := splitPath(canon)
	for i, part := range parts {
		switch {
		case strings.HasPrefix(part, "*"):
			name := part[1:]
			if name == "" {
				return nil, errors.New("R003").WithDetailf("pattern %q: wildcard segment needs a name", pattern)
			}
			if i != len(parts)-1 {
				return nil, errors.New("R003").WithDetailf("pattern %q: wildcard %q must be the last segment", pattern, part)
			}
			if seen[name] {
				return nil, errors.New("R003").WithDetailf("pattern %q: duplicate parameter %q", pattern, name)
			}
			seen[name] = true
			r.segments = append(r.segments, segment{isWildcard: true, paramName: name})
			r.params = append(r.params, name)

		case strings.HasPrefix(part, ":"):
			name := part[1:]
			if name == "" {
				return nil, errors.New("R003").WithDetailf("pattern %q: parameter segment needs a name", pattern)
			}
			if seen[name] {
				return nil, errors.New("R003").WithDetailf("pattern %q: duplicate parameter %q", pattern, name)
			}
			seen[name] = true
			r.segments = append(r.segments, segment{isParam: true, paramName: name})
			r.params = append(r.params, name)

		default:
			r.segments = append(r.segments, segment{literal: part})
		}
	}

	return r, nil
}

// MustCompile is like Compile but panics on error. For patterns known at
// compile time.
func MustCompile(pattern string) *CompiledRoute {
	r, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// Pattern returns the canonical pattern the route was compiled from.
func (r *CompiledRoute) Pattern() string {
	return r.pattern
}

// ParamNames returns the parameter names in declaration order.
func (r *CompiledRoute) ParamNames() []string {
	return r.params
}

// Static reports whether the route has no dynamic segments.
func (r *CompiledRoute) Static() bool {
	return len(r.params) == 0
}

// Match tests a normalized path against the route and extracts parameters.
// Returns nil and false when the path does not match.
func (r *CompiledRoute) Match(path string) (map[string]string, bool) {
	parts := splitPath(path)
	params := make(map[string]string, len(r.params))

	for i, seg := range r.segments {
		switch {
		case seg.isWildcard:
			// Wildcard consumes the remainder, including the empty remainder.
			params[seg.paramName] = strings.Join(parts[i:], "/")
			return params, true

		case seg.isParam:
			if i >= len(parts) {
				return nil, false
			}
			params[seg.paramName] = parts[i]

		default:
			if i >= len(parts) || parts[i] != seg.literal {
				return nil, false
			}
		}
	}

	if len(parts) != len(r.segments) {
		return nil, false
	}
	return params, true
}

// splitPath splits a normalized path into segments.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
