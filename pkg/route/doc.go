// Package route implements route pattern compilation and matching for Pagio.
//
// The package provides:
//   - Pattern compilation with parameter extraction
//   - A registration-ordered match table with deterministic precedence
//   - Path canonicalization shared by the matcher and history layer
//
// # Patterns
//
// Patterns are path templates with literal and dynamic segments:
//
//	/settings            literal only
//	/user/:id            :id captures a single segment (no slash)
//	/docs/*rest          *rest captures the remainder of the path
//
// Parameter names within one pattern must be unique, and a wildcard
// segment must be the last segment.
//
// # Precedence
//
// An exact literal match always wins over parameterized and wildcard
// matches. Among parameterized routes, the first-registered route wins;
// callers register more specific routes first.
//
// # Usage
//
//	tbl := route.NewTable()
//	r, _ := route.Compile("/user/:id")
//	tbl.Add("user", r)
//
//	m, ok := tbl.Match("/user/42")
//	if ok {
//	    // m.Identifier == "user", m.Params["id"] == "42"
//	}
package route
