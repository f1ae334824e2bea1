// Package nav implements the transition orchestrator: the state machine
// that turns a navigation request into an ordered page lifecycle.
//
// A Navigate call walks
//
//	Idle → Resolving → GuardCheck → Exiting(prev) → ParamUpdate(next)
//	     → Entering(next) → Rendering(next) → Active
//
// with NotFound and Denied as escape states and a per-call Error state
// that always resolves into a rendered fallback. No outcome of this
// package is a crash; every path terminates in a rendered state.
//
// Hook ordering is guaranteed: the previous page's OnExit runs before the
// next page's OnParams, which runs before OnEnter, which runs before
// Render. Never reordered.
//
// Overlapping Navigate calls are serialized and queued: a transition in
// flight runs to completion (Active, NotFound, Denied, Cancelled, or
// Error) before the next queued call begins its own walk. There is no
// timeout; a hook that never returns stalls the machine, which is an
// accepted limitation. The one call that never queues is a nested one: a
// hook or guard calling Navigate with its own context is refused with a
// coded error rather than allowed to wait on itself.
package nav
