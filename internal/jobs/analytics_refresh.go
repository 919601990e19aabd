package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"retailpulse/internal/analytics"
	"retailpulse/internal/models"
)

// MetricsRefresher recomputes one period and writes it through to the cache.
type MetricsRefresher interface {
	Refresh(ctx context.Context, periodKey string) (*models.MetricsSnapshot, error)
}

type AnalyticsRefreshService struct {
	refresher MetricsRefresher
	logger    zerolog.Logger
}

type AnalyticsRefreshResult struct {
	PeriodsRefreshed int
	Failed           []string
	LastRefreshAt    time.Time
}

func NewAnalyticsRefreshService(refresher MetricsRefresher, logger zerolog.Logger) *AnalyticsRefreshService {
	return &AnalyticsRefreshService{
		refresher: refresher,
		logger:    logger.With().Str("job", "metrics-refresh").Logger(),
	}
}

// RefreshAllPeriods warms the cache for every known period key. A failing
// period does not stop the others; the first error is returned at the end.
func (a *AnalyticsRefreshService) RefreshAllPeriods(ctx context.Context) (*AnalyticsRefreshResult, error) {
	result := &AnalyticsRefreshResult{}
	var firstErr error

	for _, key := range analytics.PeriodKeys() {
		snap, err := a.refresher.Refresh(ctx, key)
		if err != nil {
			a.logger.Error().Err(err).Str("period", key).Msg("failed to refresh metrics")
			result.Failed = append(result.Failed, key)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		result.PeriodsRefreshed++
		result.LastRefreshAt = snap.ComputedAt
		a.logger.Debug().
			Str("period", key).
			Float64("total_sales", snap.Metrics.TotalSales).
			Int("low_stock", snap.Metrics.LowStockCount).
			Msg("metrics refreshed")
	}

	return result, firstErr
}

// ScheduledAnalyticsRefresh is the scheduler entry point.
func (a *AnalyticsRefreshService) ScheduledAnalyticsRefresh(ctx context.Context) error {
	start := time.Now()
	result, err := a.RefreshAllPeriods(ctx)
	a.logger.Info().
		Int("periods", result.PeriodsRefreshed).
		Strs("failed", result.Failed).
		Dur("took", time.Since(start)).
		Msg("scheduled metrics refresh completed")
	return err
}
