package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"retailpulse/internal/analytics"
	"retailpulse/internal/common"
	"retailpulse/internal/models"
)

// AnalyticsProvider is the read side of the analytics service.
type AnalyticsProvider interface {
	Dashboard(ctx context.Context, periodKey string, opts analytics.DashboardOptions) (*models.DashboardMetrics, error)
	Insights(ctx context.Context) ([]models.Insight, error)
	Analysis(ctx context.Context, periodKey string, opts analytics.DashboardOptions) (*models.AnalysisResponse, error)
}

type AnalyticsHandlers struct {
	analytics     AnalyticsProvider
	defaultMaxAge time.Duration
}

// NewAnalyticsHandlers serves cached dashboards younger than defaultMaxAge
// unless the request overrides it with max_age.
func NewAnalyticsHandlers(provider AnalyticsProvider, defaultMaxAge time.Duration) *AnalyticsHandlers {
	return &AnalyticsHandlers{analytics: provider, defaultMaxAge: defaultMaxAge}
}

// dashboardOptions reads max_age (a Go duration such as "5m", or whole
// seconds) and refresh=true.
func (h *AnalyticsHandlers) dashboardOptions(c echo.Context) (analytics.DashboardOptions, error) {
	opts := analytics.DashboardOptions{MaxAge: h.defaultMaxAge}

	if raw := strings.TrimSpace(c.QueryParam("max_age")); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil {
			opts.MaxAge = time.Duration(secs) * time.Second
		} else if d, err := time.ParseDuration(raw); err == nil {
			opts.MaxAge = d
		} else {
			return opts, err
		}
		if opts.MaxAge < 0 {
			opts.MaxAge = 0
		}
	}

	if refresh, err := strconv.ParseBool(c.QueryParam("refresh")); err == nil {
		opts.SkipCache = refresh
	}
	return opts, nil
}

// Dashboard handles GET /api/analytics/dashboard?period=&max_age=&refresh=
func (h *AnalyticsHandlers) Dashboard(c echo.Context) error {
	opts, err := h.dashboardOptions(c)
	if err != nil {
		return common.SendValidationError(c, "max_age", "must be a duration like 5m or a number of seconds")
	}

	metrics, err := h.analytics.Dashboard(c.Request().Context(), c.QueryParam("period"), opts)
	if err != nil {
		return respondError(c, err, "Metrics")
	}
	return c.JSON(http.StatusOK, metrics)
}

// Insights handles GET /api/ai/insights?limit=&format=text
func (h *AnalyticsHandlers) Insights(c echo.Context) error {
	insights, err := h.analytics.Insights(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Insights")
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return common.SendValidationError(c, "limit", "must be a positive integer")
		}
		insights = analytics.Truncate(insights, limit)
	}

	if c.QueryParam("format") == "text" {
		lines := make([]string, len(insights))
		for i, in := range insights {
			lines[i] = in.String()
		}
		return c.String(http.StatusOK, strings.Join(lines, "\n"))
	}
	return c.JSON(http.StatusOK, models.InsightsResponse{Insights: insights})
}

// Analysis handles GET /api/analytics/analysis?period=
func (h *AnalyticsHandlers) Analysis(c echo.Context) error {
	opts, err := h.dashboardOptions(c)
	if err != nil {
		return common.SendValidationError(c, "max_age", "must be a duration like 5m or a number of seconds")
	}

	resp, err := h.analytics.Analysis(c.Request().Context(), c.QueryParam("period"), opts)
	if err != nil {
		return respondError(c, err, "Analysis")
	}
	return c.JSON(http.StatusOK, resp)
}
