// Package errors provides structured, actionable errors for Pagio.
//
// Every failure the navigation core can produce carries a stable code
// (e.g. "N001") that maps to:
//   - A short message describing the failure
//   - A detailed explanation
//   - A documentation URL
//
// # Error Categories
//
// Errors are organized into categories:
//   - route: route compilation and resolution failures
//   - page: page construction and lifecycle hook failures
//   - guard: navigation guard rejections
//   - render: render hook failures
//   - history: address encoding and history commit failures
//   - registration: setup-time registration failures
//
// # Usage
//
//	err := errors.New("N002").
//	    Wrap(cause).
//	    WithSuggestion(`Check the page factory registered for "settings"`)
//
//	logger.Error("navigation failed", "err", err.Format())
//
// Codes are stable across releases; callers may match on them with
// errors.CodeOf.
package errors
