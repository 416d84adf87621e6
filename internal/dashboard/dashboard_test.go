package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"utangku/internal/core"
)

type fakeQueries struct {
	mu    sync.Mutex
	calls map[string]int

	statsErr   error
	recentErr  error
	yearlyErr  error
	weeklyErr  error
	balanceErr error
}

func newFakeQueries() *fakeQueries {
	return &fakeQueries{calls: map[string]int{}}
}

func (f *fakeQueries) count(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeQueries) Stats(ctx context.Context) (core.Stats, error) {
	f.count("stats")
	if f.statsErr != nil {
		return core.Stats{}, f.statsErr
	}
	return core.Stats{Net: core.Money{Rupiah: 100}}, nil
}

func (f *fakeQueries) Recent(ctx context.Context) ([]core.Debt, error) {
	f.count("recent")
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	return []core.Debt{{ID: 1, Name: "Siti"}}, nil
}

func (f *fakeQueries) YearlyActivity(ctx context.Context, years int) ([]core.ActivityPoint, error) {
	f.count("yearly")
	if f.yearlyErr != nil {
		return nil, f.yearlyErr
	}
	return []core.ActivityPoint{{Label: "2025"}}, nil
}

func (f *fakeQueries) WeeklyActivity(ctx context.Context) ([]core.ActivityPoint, error) {
	f.count("weekly")
	if f.weeklyErr != nil {
		return nil, f.weeklyErr
	}
	return []core.ActivityPoint{{Label: "W33"}}, nil
}

func (f *fakeQueries) BalanceHistory(ctx context.Context, months int) ([]core.BalancePoint, error) {
	f.count("balance")
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	return []core.BalancePoint{{Label: "Aug"}}, nil
}

func newLoader(q Queries) *Loader {
	return NewLoader(q, Config{YearsBack: 3, MonthsBack: 6, TTL: time.Minute})
}

func TestLoadAssemblesAllWidgets(t *testing.T) {
	queries := newFakeQueries()
	page := newLoader(queries).Load(context.Background())

	if !page.Stats.OK() || page.Stats.Data.Net.Rupiah != 100 {
		t.Fatalf("unexpected stats widget: %+v", page.Stats)
	}
	if !page.Recent.OK() || len(page.Recent.Data) != 1 {
		t.Fatalf("unexpected recent widget: %+v", page.Recent)
	}
	if !page.Yearly.OK() || !page.Weekly.OK() || !page.Balance.OK() {
		t.Fatalf("expected all series widgets to load")
	}
}

func TestLoadIsolatesWidgetFailures(t *testing.T) {
	queries := newFakeQueries()
	queries.yearlyErr = errors.New("boom")
	page := newLoader(queries).Load(context.Background())

	if page.Yearly.OK() {
		t.Fatalf("expected yearly widget to fail")
	}
	if !errors.Is(page.Yearly.Err, queries.yearlyErr) {
		t.Fatalf("widget must carry its own error, got %v", page.Yearly.Err)
	}
	// Siblings are unaffected.
	if !page.Stats.OK() || !page.Recent.OK() || !page.Weekly.OK() || !page.Balance.OK() {
		t.Fatalf("failing widget must not block siblings: %+v", page)
	}
}

func TestLoadCachesWithinTTL(t *testing.T) {
	queries := newFakeQueries()
	loader := newLoader(queries)

	loader.Load(context.Background())
	loader.Load(context.Background())

	for name, n := range queries.calls {
		if n != 1 {
			t.Fatalf("query %s ran %d times, expected cache hit", name, n)
		}
	}
}

func TestLoadDoesNotCacheFailures(t *testing.T) {
	queries := newFakeQueries()
	queries.statsErr = errors.New("boom")
	loader := newLoader(queries)

	loader.Load(context.Background())
	queries.statsErr = nil
	page := loader.Load(context.Background())

	if !page.Stats.OK() {
		t.Fatalf("expected retry after failure, got %v", page.Stats.Err)
	}
	if queries.calls["stats"] != 2 {
		t.Fatalf("failed query must not be cached: %d calls", queries.calls["stats"])
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	queries := newFakeQueries()
	loader := newLoader(queries)

	loader.Load(context.Background())
	loader.Invalidate()
	loader.Load(context.Background())

	for name, n := range queries.calls {
		if n != 2 {
			t.Fatalf("query %s ran %d times, expected refetch after invalidation", name, n)
		}
	}
}
