package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"retailpulse/internal/analytics"
	"retailpulse/internal/common"
	"retailpulse/internal/jobs"
	"retailpulse/internal/models"
)

type MetricsRefresher interface {
	RefreshAllPeriods(ctx context.Context) (*jobs.AnalyticsRefreshResult, error)
}

type LowStockChecker interface {
	CheckLowStock(ctx context.Context) ([]models.StockLevel, error)
}

type SnapshotArchiver interface {
	Archive(ctx context.Context, periodKey string) (string, error)
}

type JobStatusProvider interface {
	GetJobStatus() map[string]interface{}
}

// JobHandlers lets an operator run the background jobs on demand.
type JobHandlers struct {
	refresh   MetricsRefresher
	lowStock  LowStockChecker
	archiver  SnapshotArchiver
	scheduler JobStatusProvider
}

// NewJobHandlers wires the on-demand job endpoints. archiver and scheduler
// may be nil when object storage or scheduling is disabled.
func NewJobHandlers(refresh MetricsRefresher, lowStock LowStockChecker, archiver SnapshotArchiver, scheduler JobStatusProvider) *JobHandlers {
	return &JobHandlers{
		refresh:   refresh,
		lowStock:  lowStock,
		archiver:  archiver,
		scheduler: scheduler,
	}
}

// RefreshMetrics handles POST /api/jobs/metrics-refresh
func (h *JobHandlers) RefreshMetrics(c echo.Context) error {
	result, err := h.refresh.RefreshAllPeriods(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Metrics")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"periods_refreshed": result.PeriodsRefreshed,
		"last_refresh_at":   result.LastRefreshAt,
	})
}

// LowStock handles GET /api/jobs/low-stock
func (h *JobHandlers) LowStock(c echo.Context) error {
	alerts, err := h.lowStock.CheckLowStock(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Stock levels")
	}
	if alerts == nil {
		alerts = []models.StockLevel{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":  len(alerts),
		"alerts": alerts,
	})
}

// ArchiveSnapshot handles POST /api/jobs/snapshot?period=
func (h *JobHandlers) ArchiveSnapshot(c echo.Context) error {
	if h.archiver == nil {
		return c.JSON(http.StatusServiceUnavailable, common.CreateErrorResponse("UNAVAILABLE", "Snapshot storage is not configured", nil))
	}

	period := c.QueryParam("period")
	if period == "" {
		period = analytics.DefaultPeriod
	}

	name, err := h.archiver.Archive(c.Request().Context(), period)
	if err != nil {
		return respondError(c, err, "Snapshot")
	}
	return c.JSON(http.StatusCreated, map[string]string{"object": name})
}

// Status handles GET /api/jobs/status
func (h *JobHandlers) Status(c echo.Context) error {
	if h.scheduler == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"total_jobs": 0, "enabled": false})
	}
	status := h.scheduler.GetJobStatus()
	status["enabled"] = true
	return c.JSON(http.StatusOK, status)
}
