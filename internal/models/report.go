package models

import "time"

// ReportSnapshot is the archived form of a dashboard: the metrics for one
// period plus the insights computed at the same moment.
type ReportSnapshot struct {
	PeriodKey   string           `json:"periodKey"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Metrics     DashboardMetrics `json:"metrics"`
	Insights    []Insight        `json:"insights"`
}
