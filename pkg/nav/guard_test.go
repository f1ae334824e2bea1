package nav

import (
	"context"
	stderrors "errors"
	"log/slog"
	"reflect"
	"testing"

	"github.com/pagio-dev/pagio/internal/errors"
	"github.com/pagio-dev/pagio/pkg/history"
	"github.com/pagio-dev/pagio/pkg/page"
	"github.com/pagio-dev/pagio/pkg/route"
)

// guardFixture is a standard fixture with a guard chain attached.
func guardFixture(t *testing.T) (*fixture, *GuardChain) {
	t.Helper()

	rec := &recorder{}
	events := &eventLog{}
	reg := page.NewRegistry()
	pages := map[string]*probePage{
		"home":  registerProbe(t, reg, rec, "home", "/"),
		"admin": registerProbe(t, reg, rec, "admin", "/admin"),
	}

	host := history.NewMemoryHost("/")
	synchronizer := history.NewSynchronizer(host, history.Config{Encoding: history.EncodingPath})
	guards := NewGuardChain()

	orch := New(Config{
		Registry: reg,
		Cache:    page.NewCache(reg, nil, slog.Default()),
		History:  synchronizer,
		Guards:   guards,
		Emitter:  events,
		Logger:   slog.Default(),
	})

	return &fixture{orch: orch, host: host, rec: rec, events: events, pages: pages}, guards
}

func TestGuardChainOrder(t *testing.T) {
	chain := NewGuardChain()
	var order []string

	chain.Before(func(ctx context.Context, match *route.Match, p page.Page) (bool, error) {
		order = append(order, "first")
		return true, nil
	})
	chain.Before(func(ctx context.Context, match *route.Match, p page.Page) (bool, error) {
		order = append(order, "second")
		return false, nil
	})
	chain.Before(func(ctx context.Context, match *route.Match, p page.Page) (bool, error) {
		order = append(order, "third")
		return true, nil
	})

	allowed, err := chain.runBefore(context.Background(), &route.Match{}, nil)
	if allowed || err != nil {
		t.Fatalf("runBefore = %v, %v", allowed, err)
	}

	// The veto short-circuits: the third guard never ran.
	want := []string{"first", "second"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestGuardVetoLeavesStateUntouched(t *testing.T) {
	f, guards := guardFixture(t)
	ctx := context.Background()

	f.orch.Navigate(ctx, "/")
	guards.Before(func(ctx context.Context, match *route.Match, p page.Page) (bool, error) {
		return p.Identifier() != "admin", nil
	})

	f.rec.reset()
	f.events.reset()
	entriesBefore := f.host.Entries()

	res := f.orch.Navigate(ctx, "/admin")
	if res.Outcome != OutcomeCancelled {
		t.Fatalf("Outcome = %v", res.Outcome)
	}
	if errors.CodeOf(res.Err) != "N003" {
		t.Errorf("Err = %v, want N003", res.Err)
	}

	// Nothing happened: no hooks, no events, no history movement, same
	// active page.
	if calls := f.rec.snapshot(); len(calls) != 0 {
		t.Errorf("hooks ran under veto: %v", calls)
	}
	if events := f.events.snapshot(); len(events) != 0 {
		t.Errorf("events emitted under veto: %v", events)
	}
	if got := f.host.Entries(); !reflect.DeepEqual(got, entriesBefore) {
		t.Errorf("history moved under veto")
	}
	if f.orch.Active() != page.Page(f.pages["home"]) {
		t.Error("active page changed under veto")
	}
}

func TestGuardErrorCancels(t *testing.T) {
	f, guards := guardFixture(t)
	ctx := context.Background()

	boom := stderrors.New("auth backend down")
	guards.Before(func(ctx context.Context, match *route.Match, p page.Page) (bool, error) {
		return true, boom
	})

	res := f.orch.Navigate(ctx, "/admin")
	if res.Outcome != OutcomeCancelled {
		t.Fatalf("Outcome = %v", res.Outcome)
	}
	if !stderrors.Is(res.Err, boom) {
		t.Errorf("Err = %v, should wrap the guard error", res.Err)
	}
}

func TestAfterGuardRunsOnSuccessOnly(t *testing.T) {
	f, guards := guardFixture(t)
	ctx := context.Background()

	var seen []string
	guards.After(func(ctx context.Context, match *route.Match, p page.Page) error {
		seen = append(seen, p.Identifier())
		return nil
	})
	guards.Before(func(ctx context.Context, match *route.Match, p page.Page) (bool, error) {
		return p.Identifier() != "admin", nil
	})

	f.orch.Navigate(ctx, "/")
	f.orch.Navigate(ctx, "/admin")
	f.orch.Navigate(ctx, "/missing")

	want := []string{"home"}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("after-guard saw %v, want %v", seen, want)
	}
}

func TestAfterGuardErrorDoesNotFailNavigation(t *testing.T) {
	f, guards := guardFixture(t)
	ctx := context.Background()

	guards.After(func(ctx context.Context, match *route.Match, p page.Page) error {
		return stderrors.New("analytics sink offline")
	})

	res := f.orch.Navigate(ctx, "/admin")
	if res.Outcome != OutcomeActive {
		t.Fatalf("Outcome = %v, err = %v", res.Outcome, res.Err)
	}
}

func TestGuardReceivesMatch(t *testing.T) {
	f, guards := guardFixture(t)
	ctx := context.Background()

	var gotPage string
	var gotParams map[string]string
	guards.Before(func(ctx context.Context, match *route.Match, p page.Page) (bool, error) {
		gotPage = match.Identifier
		gotParams = match.Params
		return true, nil
	})

	f.orch.Navigate(ctx, "/admin")
	if gotPage != "admin" {
		t.Errorf("guard saw page %q", gotPage)
	}
	if len(gotParams) != 0 {
		t.Errorf("guard saw params %v for a static route", gotParams)
	}
}

func TestGuardNavigateIsRefused(t *testing.T) {
	f, guards := guardFixture(t)
	ctx := context.Background()

	// A guard redirecting synchronously with its own context is refused;
	// the correct move is to veto and navigate after the transition ends.
	var nested *Result
	guards.Before(func(guardCtx context.Context, match *route.Match, p page.Page) (bool, error) {
		if match.Identifier == "admin" {
			nested = f.orch.Navigate(guardCtx, "/")
			return false, nil
		}
		return true, nil
	})

	res := f.orch.Navigate(ctx, "/admin")
	if res.Outcome != OutcomeCancelled {
		t.Fatalf("Outcome = %v, err = %v", res.Outcome, res.Err)
	}
	if nested == nil || !errors.HasCode(nested.Err, "N008") {
		t.Errorf("nested = %+v, want N008 refusal", nested)
	}

	if res := f.orch.Navigate(ctx, "/"); res.Outcome != OutcomeActive {
		t.Errorf("follow-up outcome = %v", res.Outcome)
	}
}
