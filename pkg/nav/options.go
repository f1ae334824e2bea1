package nav

// Option configures a single Navigate call.
type Option func(*navigateOptions)

type navigateOptions struct {
	force   bool
	replace bool
	silent  bool
}

// Force re-runs the full transition even when the target path already
// produced the current active state.
func Force() Option {
	return func(o *navigateOptions) { o.force = true }
}

// Replace commits the navigation by replacing the current history entry
// instead of pushing a new one. Use for internally corrective
// navigations (redirect-to-default and the like); mixing push and
// replace incorrectly causes back-button loops.
func Replace() Option {
	return func(o *navigateOptions) { o.replace = true }
}

// Silent skips the history commit entirely. Used for navigations that
// originate from the host itself (back/forward), where the address has
// already changed.
func Silent() Option {
	return func(o *navigateOptions) { o.silent = true }
}

func applyOptions(opts []Option) navigateOptions {
	var o navigateOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
