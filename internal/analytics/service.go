package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"retailpulse/internal/models"
)

type SalesReader interface {
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*models.Sale, error)
	ListAll(ctx context.Context) ([]*models.Sale, error)
}

type ProductReader interface {
	ListAll(ctx context.Context) ([]*models.Product, error)
}

type InventoryReader interface {
	ListAll(ctx context.Context) ([]*models.InventoryEntry, error)
}

// MetricsCache stores computed dashboards per period key. A miss is (nil, nil).
type MetricsCache interface {
	GetMetrics(ctx context.Context, periodKey string) (*models.MetricsSnapshot, error)
	SetMetrics(ctx context.Context, snapshot *models.MetricsSnapshot) error
}

// DashboardOptions controls cache use for a single read.
type DashboardOptions struct {
	// MaxAge rejects cached snapshots older than this. Zero accepts any age.
	MaxAge time.Duration
	// SkipCache forces a recomputation.
	SkipCache bool
}

// AnalyticsService fetches records and runs the aggregator and insight rules over them.
type AnalyticsService struct {
	sales     SalesReader
	products  ProductReader
	inventory InventoryReader
	cache     MetricsCache
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAnalyticsService builds the service. cache may be nil.
func NewAnalyticsService(sales SalesReader, products ProductReader, inventory InventoryReader, cache MetricsCache, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		sales:     sales,
		products:  products,
		inventory: inventory,
		cache:     cache,
		logger:    logger.With().Str("component", "analytics").Logger(),
		now:       time.Now,
	}
}

// WithClock replaces the time source.
func (a *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	a.now = now
	return a
}

// Dashboard returns the metrics for periodKey, served from the cache when a
// fresh enough snapshot exists. Unknown keys fall back to the default period.
func (a *AnalyticsService) Dashboard(ctx context.Context, periodKey string, opts DashboardOptions) (*models.DashboardMetrics, error) {
	key := NormalizePeriod(periodKey)
	if key != periodKey {
		a.logger.Debug().Str("period", periodKey).Str("fallback", key).Msg("unrecognised period key")
	}

	if a.cache != nil && !opts.SkipCache {
		snap, err := a.cache.GetMetrics(ctx, key)
		if err != nil {
			a.logger.Warn().Err(err).Str("period", key).Msg("metrics cache read failed")
		} else if snap != nil && snap.PeriodKey == key && snap.Fresh(a.now(), opts.MaxAge) && sameWindow(snap, key, a.now()) {
			return &snap.Metrics, nil
		}
	}

	snap, err := a.Refresh(ctx, key)
	if err != nil {
		return nil, err
	}
	return &snap.Metrics, nil
}

// Refresh recomputes the metrics for periodKey and writes them through to the cache.
func (a *AnalyticsService) Refresh(ctx context.Context, periodKey string) (*models.MetricsSnapshot, error) {
	key := NormalizePeriod(periodKey)
	now := a.now()
	r, _ := ResolvePeriod(key, now)

	var (
		periodSales, allSales []*models.Sale
		products              []*models.Product
		inventory             []*models.InventoryEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		periodSales, err = a.sales.ListByDateRange(gctx, r.Start, r.End)
		return wrap("list period sales", err)
	})
	g.Go(func() (err error) {
		allSales, err = a.sales.ListAll(gctx)
		return wrap("list all sales", err)
	})
	g.Go(func() (err error) {
		products, err = a.products.ListAll(gctx)
		return wrap("list products", err)
	})
	g.Go(func() (err error) {
		inventory, err = a.inventory.ListAll(gctx)
		return wrap("list inventory", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg := ComputeDashboardMetrics(periodSales, allSales, products, inventory)
	if agg.UncostedSales > 0 {
		a.logger.Warn().Str("period", key).Int("sales", agg.UncostedSales).Msg("sales without inventory cost data counted at zero cost")
	}

	snap := &models.MetricsSnapshot{
		Version:    models.MetricsSnapshotVersion,
		PeriodKey:  key,
		ComputedAt: now,
		Metrics:    agg.Metrics(),
	}

	if a.cache != nil {
		if err := a.cache.SetMetrics(ctx, snap); err != nil {
			a.logger.Warn().Err(err).Str("period", key).Msg("metrics cache write failed")
		}
	}

	return snap, nil
}

// Insights evaluates the stock and month-over-month rules over the trailing month.
func (a *AnalyticsService) Insights(ctx context.Context) ([]models.Insight, error) {
	now := a.now()
	window := InsightWindow(now)

	var (
		windowSales, allSales []*models.Sale
		products              []*models.Product
		inventory             []*models.InventoryEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		windowSales, err = a.sales.ListByDateRange(gctx, window.Start, window.End)
		return wrap("list window sales", err)
	})
	g.Go(func() (err error) {
		allSales, err = a.sales.ListAll(gctx)
		return wrap("list all sales", err)
	})
	g.Go(func() (err error) {
		products, err = a.products.ListAll(gctx)
		return wrap("list products", err)
	})
	g.Go(func() (err error) {
		inventory, err = a.inventory.ListAll(gctx)
		return wrap("list inventory", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if allSales == nil {
		allSales = []*models.Sale{}
	}

	return GenerateInsights(InsightInput{
		Products:    products,
		Inventory:   inventory,
		WindowSales: windowSales,
		AllSales:    allSales,
		Now:         now,
	}), nil
}

// Analysis runs the in-depth rules over the dashboard for periodKey.
func (a *AnalyticsService) Analysis(ctx context.Context, periodKey string, opts DashboardOptions) (*models.AnalysisResponse, error) {
	metrics, err := a.Dashboard(ctx, periodKey, opts)
	if err != nil {
		return nil, err
	}
	return &models.AnalysisResponse{
		Period:   NormalizePeriod(periodKey),
		Insights: AnalyzeMetrics(*metrics, a.now()),
	}, nil
}

// sameWindow reports whether snap was computed in the period window that
// covers now. A current_month snapshot from last month is a miss.
func sameWindow(snap *models.MetricsSnapshot, key string, now time.Time) bool {
	cached, _ := ResolvePeriod(key, snap.ComputedAt.In(now.Location()))
	live, _ := ResolvePeriod(key, now)
	return cached.Start.Equal(live.Start)
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
