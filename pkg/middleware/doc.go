// Package middleware provides navigation middleware for pagio
// applications.
//
// Middleware wraps a Navigator and observes every navigation that flows
// through it: its path, terminal outcome, duration, and error. The
// package ships two production middlewares:
//
//   - Prometheus: records navigation counts, durations, and errors as
//     Prometheus metrics.
//   - OpenTelemetry: traces every navigation as a span.
//
// Compose middlewares around an orchestrator with Chain:
//
//	navigator := middleware.Chain(orchestrator,
//	    middleware.Prometheus(middleware.WithNamespace("myapp")),
//	    middleware.OpenTelemetry(),
//	)
//	navigator.Navigate(ctx, "/user/42")
package middleware
