// Package dashboard assembles the overview page: summary totals, recent
// records, and the three chart series. Queries run concurrently and fail
// independently; one broken widget never blanks its siblings. Results are
// cached briefly and dropped wholesale after any mutation.
package dashboard

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"utangku/internal/cache"
	"utangku/internal/core"
	"utangku/internal/log"
)

// DefaultTTL bounds how stale a rendered dashboard may be.
const DefaultTTL = 30 * time.Second

const cacheSize = 8

// Queries is the slice of the API client the dashboard reads through.
type Queries interface {
	Stats(ctx context.Context) (core.Stats, error)
	Recent(ctx context.Context) ([]core.Debt, error)
	YearlyActivity(ctx context.Context, years int) ([]core.ActivityPoint, error)
	WeeklyActivity(ctx context.Context) ([]core.ActivityPoint, error)
	BalanceHistory(ctx context.Context, months int) ([]core.BalancePoint, error)
}

// Widget holds one query's outcome. Err set means the widget renders its
// error state; Data is only meaningful when Err is nil.
type Widget[T any] struct {
	Data T
	Err  error
}

func (w Widget[T]) OK() bool {
	return w.Err == nil
}

// Page is one fully-assembled dashboard.
type Page struct {
	Stats   Widget[core.Stats]
	Recent  Widget[[]core.Debt]
	Yearly  Widget[[]core.ActivityPoint]
	Weekly  Widget[[]core.ActivityPoint]
	Balance Widget[[]core.BalancePoint]
}

// Config holds loader configuration.
type Config struct {
	YearsBack  int
	MonthsBack int
	TTL        time.Duration
	Logger     *log.Logger
}

// Loader fetches and caches the dashboard's queries.
type Loader struct {
	queries    Queries
	logger     *log.Logger
	yearsBack  int
	monthsBack int

	stats    *cache.Cache[core.Stats]
	recent   *cache.Cache[[]core.Debt]
	activity *cache.Cache[[]core.ActivityPoint]
	balance  *cache.Cache[[]core.BalancePoint]
}

func NewLoader(queries Queries, config Config) *Loader {
	logger := config.Logger
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentDashboard})
	}
	ttl := config.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Loader{
		queries:    queries,
		logger:     logger,
		yearsBack:  config.YearsBack,
		monthsBack: config.MonthsBack,
		stats:      cache.New[core.Stats](cacheSize, ttl),
		recent:     cache.New[[]core.Debt](cacheSize, ttl),
		activity:   cache.New[[]core.ActivityPoint](cacheSize, ttl),
		balance:    cache.New[[]core.BalancePoint](cacheSize, ttl),
	}
}

// Load runs all five queries concurrently and returns the assembled page.
// Each widget carries its own error; Load itself never fails.
func (l *Loader) Load(ctx context.Context) Page {
	var page Page
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		page.Stats = fetch(ctx, l, "stats", l.stats, l.queries.Stats)
		return nil
	})
	g.Go(func() error {
		page.Recent = fetch(ctx, l, "recent", l.recent, l.queries.Recent)
		return nil
	})
	g.Go(func() error {
		key := "yearly:" + strconv.Itoa(l.yearsBack)
		page.Yearly = fetch(ctx, l, key, l.activity, func(ctx context.Context) ([]core.ActivityPoint, error) {
			return l.queries.YearlyActivity(ctx, l.yearsBack)
		})
		return nil
	})
	g.Go(func() error {
		page.Weekly = fetch(ctx, l, "weekly", l.activity, l.queries.WeeklyActivity)
		return nil
	})
	g.Go(func() error {
		key := "balance:" + strconv.Itoa(l.monthsBack)
		page.Balance = fetch(ctx, l, key, l.balance, func(ctx context.Context) ([]core.BalancePoint, error) {
			return l.queries.BalanceHistory(ctx, l.monthsBack)
		})
		return nil
	})

	// Branches always return nil; failures live inside the widgets.
	_ = g.Wait()
	return page
}

// Invalidate drops every cached query result.
func (l *Loader) Invalidate() {
	l.stats.Clear()
	l.recent.Clear()
	l.activity.Clear()
	l.balance.Clear()
	l.logger.Debug("Dashboard caches cleared")
}

func fetch[T any](ctx context.Context, l *Loader, key string, c *cache.Cache[T], query func(context.Context) (T, error)) Widget[T] {
	if data, ok := c.Get(key); ok {
		return Widget[T]{Data: data}
	}
	data, err := query(ctx)
	if err != nil {
		l.logger.Warn("Widget query failed",
			log.FieldWidget, key,
			log.FieldError, err.Error())
		return Widget[T]{Err: err}
	}
	c.Set(key, data)
	return Widget[T]{Data: data}
}
