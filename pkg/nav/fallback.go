package nav

import (
	"context"

	"github.com/pagio-dev/pagio/pkg/page"
)

// Fallbacks are the pages rendered when a navigation escapes the normal
// path. They are plain pages; applications replace them with their own.
type Fallbacks struct {
	// NotFound renders when no route matches or the target page could
	// not be constructed.
	NotFound page.Page

	// Denied renders when the target page's CanEnter check fails.
	Denied page.Page

	// Error renders when the target page's render hook fails.
	Error page.Page
}

// DefaultFallbacks returns no-op fallback pages under the reserved
// identifiers "notfound", "denied", and "error".
func DefaultFallbacks() Fallbacks {
	return Fallbacks{
		NotFound: newFallbackPage("notfound"),
		Denied:   newFallbackPage("denied"),
		Error:    newFallbackPage("error"),
	}
}

// fillDefaults replaces missing fallbacks with the defaults.
func (f Fallbacks) fillDefaults() Fallbacks {
	if f.NotFound == nil {
		f.NotFound = newFallbackPage("notfound")
	}
	if f.Denied == nil {
		f.Denied = newFallbackPage("denied")
	}
	if f.Error == nil {
		f.Error = newFallbackPage("error")
	}
	return f
}

// fallbackPage is the built-in do-nothing fallback surface.
type fallbackPage struct {
	page.Base
}

func newFallbackPage(identifier string) *fallbackPage {
	p := &fallbackPage{}
	p.BindIdentity(identifier, "")
	return p
}

func (p *fallbackPage) Render(ctx context.Context, container page.Container) error {
	return nil
}
