package pagio

import (
	"log/slog"

	"github.com/pagio-dev/pagio/pkg/history"
	"github.com/pagio-dev/pagio/pkg/middleware"
	"github.com/pagio-dev/pagio/pkg/nav"
)

// ====================================================================
// Configuration Types
// ====================================================================

// Config is the main application configuration.
// This is the user-friendly entry point for configuring a pagio app.
type Config struct {
	// History configures address synchronization.
	History HistoryConfig

	// Fallbacks are the pages rendered for not-found, denied, and error
	// escapes. Missing entries get built-in no-op pages.
	Fallbacks Fallbacks

	// Container is the mount target handed to every Render call.
	Container Container

	// Emitter receives lifecycle events (route:changed, page:show, ...).
	// If nil, events are discarded.
	Emitter Emitter

	// Middleware wraps every navigation, outermost first. Use
	// middleware.Prometheus and middleware.OpenTelemetry, or your own.
	Middleware []middleware.Middleware

	// Logger is the structured logger for the application.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// HistoryConfig configures address synchronization.
type HistoryConfig struct {
	// Host owns the visible address. Default: an in-process MemoryHost
	// starting at "/". Use remote.NewSocketHost to drive a browser shell.
	Host Host

	// Encoding selects how the logical path appears in the address.
	// Fixed for the application's lifetime. Default: EncodingPath.
	Encoding Encoding

	// Base is the address prefix the logical path is relative to.
	Base string

	// QueryKey is the reserved key for EncodingQuery.
	// Default: "page".
	QueryKey string

	// Disabled turns address synchronization off entirely. Navigations
	// still work; the address never changes.
	Disabled bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		History: HistoryConfig{
			Encoding: EncodingPath,
		},
		Fallbacks: nav.DefaultFallbacks(),
	}
}

// buildSynchronizer converts the history section into a wired
// synchronizer, or nil when synchronization is disabled.
func buildSynchronizer(cfg HistoryConfig, logger *slog.Logger) *history.Synchronizer {
	if cfg.Disabled {
		return nil
	}
	host := cfg.Host
	if host == nil {
		host = history.NewMemoryHost("/")
	}
	return history.NewSynchronizer(host, history.Config{
		Encoding: cfg.Encoding,
		Base:     cfg.Base,
		QueryKey: cfg.QueryKey,
		Logger:   logger,
	})
}

// resolveLogger applies the logger default.
func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// resolveEmitter applies the emitter default.
func resolveEmitter(emitter Emitter) Emitter {
	if emitter == nil {
		return nav.NopEmitter()
	}
	return emitter
}
