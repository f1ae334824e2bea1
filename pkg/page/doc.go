// Package page defines the page contract for Pagio and implements the
// page registry and instance cache.
//
// A page is a long-lived, possibly stateful entity backing one identifier.
// It is created lazily on the first navigation to its identifier, kept for
// the lifetime of the application, and destroyed only at teardown. There
// is no eviction: the cache trades memory for instant back/forward
// navigation.
//
// # The Page contract
//
// Page is a capability set, not an inheritance chain. Embed Base to get
// no-op defaults and implement only the hooks you need:
//
//	type SettingsPage struct {
//	    page.Base
//	    theme string
//	}
//
//	func (p *SettingsPage) OnParams(ctx context.Context, params, query map[string]string) error {
//	    p.theme = query["theme"]
//	    return nil
//	}
//
//	func (p *SettingsPage) Render(ctx context.Context, container page.Container) error {
//	    // hand content to the rendering collaborator
//	    return nil
//	}
//
// # Factories
//
// A page is registered with one of three factory variants, resolved once
// at registration time:
//
//	page.Constructor(newSettingsPage)   // built on first navigation
//	page.Instance(prebuilt)             // supplied ready-made
//	page.Handler(renderFn)              // a plain render function
package page
