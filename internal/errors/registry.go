package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Navigation Errors (N001-N099)
	// ============================================

	"N001": {
		Category: CategoryRoute,
		Message:  "No route matched the requested path",
		Detail:   "The path did not match any registered route pattern. The navigation resolves to the not-found fallback page; this is a normal outcome, not a crash.",
		DocURL:   "https://pagio.dev/docs/errors/N001",
	},
	"N002": {
		Category: CategoryPage,
		Message:  "Page construction failed",
		Detail:   "The factory registered for this page identifier returned an error or panicked. Nothing was cached; the next navigation to this identifier will invoke the factory again.",
		DocURL:   "https://pagio.dev/docs/errors/N002",
	},
	"N003": {
		Category: CategoryGuard,
		Message:  "Navigation cancelled by guard",
		Detail:   "A before-guard vetoed the navigation. No lifecycle hooks ran and no history entry was written.",
		DocURL:   "https://pagio.dev/docs/errors/N003",
	},
	"N004": {
		Category: CategoryPage,
		Message:  "Page denied entry",
		Detail:   "The target page's CanEnter check returned false. The currently active page was not disturbed.",
		DocURL:   "https://pagio.dev/docs/errors/N004",
	},
	"N005": {
		Category: CategoryPage,
		Message:  "Lifecycle hook failed",
		Detail:   "An exit, params, or enter hook returned an error. The error is logged and the navigation proceeds.",
		DocURL:   "https://pagio.dev/docs/errors/N005",
	},
	"N006": {
		Category: CategoryRender,
		Message:  "Page render failed",
		Detail:   "The render hook returned an error. The active-page pointer is unchanged and the error fallback page is shown; subsequent navigations work normally.",
		DocURL:   "https://pagio.dev/docs/errors/N006",
	},
	"N007": {
		Category: CategoryPage,
		Message:  "Application torn down",
		Detail:   "Navigate was called after Teardown. The registry and cache have been cleared.",
		DocURL:   "https://pagio.dev/docs/errors/N007",
	},
	"N008": {
		Category: CategoryPage,
		Message:  "Nested navigation rejected",
		Detail:   "Navigate was called from inside a hook or guard of a transition that is still running. The nested call is refused to keep transitions single-flight; issue it after the hook returns, for example from a new goroutine.",
		DocURL:   "https://pagio.dev/docs/errors/N008",
	},

	// ============================================
	// Registration Errors (R001-R099)
	// ============================================

	"R001": {
		Category: CategoryRegistration,
		Message:  "Duplicate page identifier",
		Detail:   "A page is already registered under this identifier. Registrations are immutable; pick a distinct identifier.",
		DocURL:   "https://pagio.dev/docs/errors/R001",
	},
	"R002": {
		Category: CategoryRegistration,
		Message:  "Unknown page identifier",
		Detail:   "No registration exists for this identifier. Register the page before navigating to it.",
		DocURL:   "https://pagio.dev/docs/errors/R002",
	},
	"R003": {
		Category: CategoryRegistration,
		Message:  "Invalid route pattern",
		Detail:   "The route pattern failed to compile. Patterns use literal segments, :name parameters, and a trailing *name wildcard.",
		DocURL:   "https://pagio.dev/docs/errors/R003",
	},
	"R004": {
		Category: CategoryRegistration,
		Message:  "Nil page factory",
		Detail:   "The registration supplied no constructor, instance, or handler function.",
		DocURL:   "https://pagio.dev/docs/errors/R004",
	},

	// ============================================
	// History Errors (H001-H099)
	// ============================================

	"H001": {
		Category: CategoryHistory,
		Message:  "Address decode failed",
		Detail:   "The host-visible address could not be decoded into a navigation state under the configured encoding.",
		DocURL:   "https://pagio.dev/docs/errors/H001",
	},
	"H002": {
		Category: CategoryHistory,
		Message:  "History commit failed",
		Detail:   "The host rejected the push or replace of the encoded address. The in-memory navigation state was still updated.",
		DocURL:   "https://pagio.dev/docs/errors/H002",
	},
}

// Register adds a custom error template. Intended for applications that
// extend the core with their own coded errors.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}

// Lookup returns the template for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	template, ok := registry[code]
	return template, ok
}
