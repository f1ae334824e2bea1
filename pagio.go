// Package pagio provides the public API for the pagio navigation
// framework.
//
// This is the recommended import for most applications:
//
//	import "github.com/pagio-dev/pagio"
//
// Usage:
//
//	app := pagio.New(pagio.Config{})
//	app.RegisterPage("user-detail", pagio.Constructor(newUserPage),
//	    pagio.PageOptions{Route: "/user/:id"})
//	app.Start(ctx)
//	app.Navigate(ctx, "/user/42")
package pagio

import (
	"github.com/pagio-dev/pagio/pkg/history"
	"github.com/pagio-dev/pagio/pkg/nav"
	"github.com/pagio-dev/pagio/pkg/page"
	"github.com/pagio-dev/pagio/pkg/route"
)

// ====================================================================
// Page contract (re-export from pkg/page)
// ====================================================================

// Page is the lifecycle contract every page implements.
type Page = page.Page

// Base provides no-op defaults for the Page contract. Embed it and
// override the hooks you need.
type Base = page.Base

// Container is the opaque mount target handed to Render.
type Container = page.Container

// Env is the construction environment handed to page constructors.
type Env = page.Env

// AppRef is the non-owning back-reference from a page to its
// application.
type AppRef = page.AppRef

// Factory describes how a page instance comes to exist.
type Factory = page.Factory

// PageOptions configures a page registration.
type PageOptions = page.Options

// Constructor wraps a constructor function as a Factory.
var Constructor = page.Constructor

// Instance wraps a pre-built page as a Factory.
var Instance = page.Instance

// Handler wraps a render function as a Factory.
var Handler = page.Handler

// ====================================================================
// Navigation (re-export from pkg/nav)
// ====================================================================

// Result describes how a navigation terminated.
type Result = nav.Result

// Outcome is the terminal state of a navigation.
type Outcome = nav.Outcome

// Navigation outcomes.
const (
	OutcomeActive    = nav.OutcomeActive
	OutcomeNoop      = nav.OutcomeNoop
	OutcomeNotFound  = nav.OutcomeNotFound
	OutcomeDenied    = nav.OutcomeDenied
	OutcomeCancelled = nav.OutcomeCancelled
	OutcomeError     = nav.OutcomeError
)

// NavigateOption configures a single Navigate call.
type NavigateOption = nav.Option

// Force re-runs the transition even for the currently active path.
var Force = nav.Force

// Replace commits by replacing the current history entry.
var Replace = nav.Replace

// Silent skips the history commit.
var Silent = nav.Silent

// BeforeGuard runs before a navigation leaves the current page.
type BeforeGuard = nav.BeforeGuard

// AfterGuard observes a completed navigation.
type AfterGuard = nav.AfterGuard

// Fallbacks are the escape-state pages.
type Fallbacks = nav.Fallbacks

// Emitter is the event-bus collaborator lifecycle events flow through.
type Emitter = nav.Emitter

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc = nav.EmitterFunc

// ====================================================================
// Routing and history (re-export from pkg/route, pkg/history)
// ====================================================================

// Match is a successful route resolution.
type Match = route.Match

// State is the logical navigation state.
type State = history.State

// Encoding selects the address representation.
type Encoding = history.Encoding

// Address encodings.
const (
	EncodingPath     = history.EncodingPath
	EncodingQuery    = history.EncodingQuery
	EncodingFragment = history.EncodingFragment
)

// Host is the browsing-history collaborator.
type Host = history.Host

// NewMemoryHost creates an in-process host with back/forward semantics.
var NewMemoryHost = history.NewMemoryHost
