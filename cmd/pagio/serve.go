package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/pagio-dev/pagio"
	"github.com/pagio-dev/pagio/pkg/middleware"
	"github.com/pagio-dev/pagio/pkg/remote"
)

func serveCmd() *cobra.Command {
	var (
		addr     string
		encoding string
		base     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a demo navigation host",
		Long: `Run a demo application with the shell bridge mounted.

The server exposes:
  /_pagio/shell   WebSocket endpoint for a shell (address owner)
  /metrics        Prometheus metrics

A connected shell drives navigation by sending popstate frames and
receives nav:push / nav:replace frames back.

Examples:
  pagio serve
  pagio serve --addr=:8080 --encoding=fragment`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, encoding, base)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on")
	cmd.Flags().StringVarP(&encoding, "encoding", "e", "path", "Address encoding: path, query, or fragment")
	cmd.Flags().StringVarP(&base, "base", "b", "", "Address base prefix")

	return cmd
}

func runServe(addr, encoding, base string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	enc, err := parseEncoding(encoding)
	if err != nil {
		return err
	}

	host := remote.NewSocketHost(remote.WithLogger(logger))

	app := pagio.New(pagio.Config{
		History: pagio.HistoryConfig{
			Host:     host,
			Encoding: enc,
			Base:     base,
		},
		Emitter: pagio.EmitterFunc(func(event string, payload any) {
			logger.Debug("navigation event", "event", event, "payload", payload)
		}),
		Middleware: []middleware.Middleware{
			middleware.Prometheus(),
			middleware.OpenTelemetry(),
		},
		Logger: logger,
	})
	registerDemoPages(app, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	host.Mount(r, "/_pagio/shell")
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	app.Start(ctx)
	success("listening on %s", addr)
	info("shell endpoint: ws://%s/_pagio/shell", addr)
	info("metrics: http://%s/metrics", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
	app.Teardown()
	return nil
}

func parseEncoding(name string) (pagio.Encoding, error) {
	switch name {
	case "path":
		return pagio.EncodingPath, nil
	case "query":
		return pagio.EncodingQuery, nil
	case "fragment":
		return pagio.EncodingFragment, nil
	default:
		return 0, fmt.Errorf("unknown encoding %q (want path, query, or fragment)", name)
	}
}

// demoPage logs its lifecycle; a real application renders into a UI
// container here.
type demoPage struct {
	pagio.Base
	logger *slog.Logger
	params map[string]string
}

func (p *demoPage) OnParams(ctx context.Context, params, query map[string]string) error {
	p.params = params
	return nil
}

func (p *demoPage) Render(ctx context.Context, container pagio.Container) error {
	p.logger.Info("render", "page", p.Identifier(), "params", p.params)
	return nil
}

func registerDemoPages(app *pagio.App, logger *slog.Logger) {
	for _, reg := range []struct{ id, pattern string }{
		{"home", "/"},
		{"user-detail", "/user/:id"},
		{"docs", "/docs/*path"},
	} {
		app.MustRegisterPage(reg.id, pagio.Constructor(func(env pagio.Env) (pagio.Page, error) {
			return &demoPage{logger: logger}, nil
		}), pagio.PageOptions{Route: reg.pattern})
	}
}
