package middleware

import (
	"context"
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/pagio-dev/pagio/internal/errors"
	"github.com/pagio-dev/pagio/pkg/nav"
	"github.com/pagio-dev/pagio/pkg/page"
)

// stubPage is a minimal page for results.
type stubPage struct {
	page.Base
}

func newStubPage(identifier string) *stubPage {
	p := &stubPage{}
	p.BindIdentity(identifier, "")
	return p
}

func (p *stubPage) Render(ctx context.Context, container page.Container) error {
	return nil
}

// stubNavigator returns canned results and records calls.
type stubNavigator struct {
	result *nav.Result
	calls  []string
}

func (s *stubNavigator) Navigate(ctx context.Context, path string, opts ...nav.Option) *nav.Result {
	s.calls = append(s.calls, path)
	return s.result
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next Navigator) Navigator {
			return NavigatorFunc(func(ctx context.Context, path string, opts ...nav.Option) *nav.Result {
				order = append(order, name+":in")
				res := next.Navigate(ctx, path, opts...)
				order = append(order, name+":out")
				return res
			})
		}
	}

	inner := &stubNavigator{result: &nav.Result{Outcome: nav.OutcomeActive}}
	chained := Chain(inner, mark("outer"), mark("inner"))
	chained.Navigate(context.Background(), "/")

	want := []string{"outer:in", "inner:in", "inner:out", "outer:out"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestChainNilMiddleware(t *testing.T) {
	inner := &stubNavigator{result: &nav.Result{Outcome: nav.OutcomeActive}}
	chained := Chain(inner, nil)
	res := chained.Navigate(context.Background(), "/x")
	if res.Outcome != nav.OutcomeActive {
		t.Errorf("Outcome = %v", res.Outcome)
	}
	if !reflect.DeepEqual(inner.calls, []string{"/x"}) {
		t.Errorf("calls = %v", inner.calls)
	}
}

func TestPrometheusMiddleware(t *testing.T) {
	registry := prometheus.NewRegistry()
	mw := Prometheus(WithRegistry(registry), WithNamespace("testapp"))

	home := newStubPage("home")
	inner := &stubNavigator{result: &nav.Result{
		Outcome: nav.OutcomeActive,
		Path:    "/",
		Page:    home,
	}}
	navigator := Chain(inner, mw)

	navigator.Navigate(context.Background(), "/")
	navigator.Navigate(context.Background(), "/")

	inner.result = &nav.Result{
		Outcome: nav.OutcomeNotFound,
		Path:    "/missing",
		Page:    newStubPage("notfound"),
		Err:     errors.New("N001"),
	}
	navigator.Navigate(context.Background(), "/missing")

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather error: %v", err)
	}

	counts := map[string]float64{}
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			key := fam.GetName()
			for _, l := range m.GetLabel() {
				key += "|" + l.GetName() + "=" + l.GetValue()
			}
			if c := m.GetCounter(); c != nil {
				counts[key] = c.GetValue()
			}
		}
	}

	tests := []struct {
		key  string
		want float64
	}{
		{"testapp_navigations_total|outcome=active|page=home", 2},
		{"testapp_navigations_total|outcome=notfound|page=notfound", 1},
		{"testapp_navigation_errors_total|code=N001|page=notfound", 1},
	}
	for _, tt := range tests {
		if got := counts[tt.key]; got != tt.want {
			t.Errorf("%s = %v, want %v (have %v)", tt.key, got, tt.want, counts)
		}
	}
}

func TestOpenTelemetryPassThrough(t *testing.T) {
	// Without a configured provider the global tracer is a no-op; the
	// middleware must still run the navigation and hand back its result.
	var extracted []*nav.Result
	mw := OpenTelemetry(
		WithTracerName("testapp"),
		WithAttributeExtractor(func(res *nav.Result) []attribute.KeyValue {
			extracted = append(extracted, res)
			return []attribute.KeyValue{attribute.String("custom", "x")}
		}),
	)

	inner := &stubNavigator{result: &nav.Result{
		Outcome: nav.OutcomeError,
		Path:    "/boom",
		Err:     stderrors.New("render exploded"),
	}}
	navigator := Chain(inner, mw)

	res := navigator.Navigate(context.Background(), "/boom")
	if res.Outcome != nav.OutcomeError {
		t.Errorf("Outcome = %v", res.Outcome)
	}
	if len(extracted) != 1 || extracted[0] != res {
		t.Errorf("extractor saw %v", extracted)
	}
	if !reflect.DeepEqual(inner.calls, []string{"/boom"}) {
		t.Errorf("calls = %v", inner.calls)
	}
}

func TestOpenTelemetryFilter(t *testing.T) {
	mw := OpenTelemetry(WithNavigationFilter(func(path string) bool {
		return path != "/health"
	}))

	inner := &stubNavigator{result: &nav.Result{Outcome: nav.OutcomeActive}}
	navigator := Chain(inner, mw)

	// Filtered and unfiltered paths both reach the inner navigator.
	navigator.Navigate(context.Background(), "/health")
	navigator.Navigate(context.Background(), "/user/1")

	want := []string{"/health", "/user/1"}
	if !reflect.DeepEqual(inner.calls, want) {
		t.Errorf("calls = %v, want %v", inner.calls, want)
	}
}
