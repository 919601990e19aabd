package models

import "time"

// DashboardMetrics is the wire shape of the dashboard KPIs. Money is carried as
// JSON numbers; the aggregation itself runs on decimals.
type DashboardMetrics struct {
	TotalSales        float64           `json:"totalSales"`
	GrossMargin       float64           `json:"grossMargin"`
	TotalProducts     int               `json:"totalProducts"`
	LowStockCount     int               `json:"lowStockCount"`
	CostOfSales       float64           `json:"costOfSales"`
	GrossProfit       float64           `json:"grossProfit"`
	TotalQuantitySold int               `json:"totalQuantitySold"`
	StockLevels       []StockLevel      `json:"stockLevels"`
	SalesTrend        []SalesTrendPoint `json:"salesTrend"`
}

type StockLevel struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	SKU          string `json:"sku"`
	CurrentStock int    `json:"currentStock"`
	IsLowStock   bool   `json:"isLowStock"`
	IsCritical   bool   `json:"isCritical"`
}

type SalesTrendPoint struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// MetricsSnapshotVersion is bumped whenever DashboardMetrics changes shape.
// Cached snapshots carrying another version are ignored.
const MetricsSnapshotVersion = 1

// MetricsSnapshot is the cached form of a DashboardMetrics computation.
type MetricsSnapshot struct {
	Version    int              `json:"version"`
	PeriodKey  string           `json:"periodKey"`
	ComputedAt time.Time        `json:"computedAt"`
	Metrics    DashboardMetrics `json:"metrics"`
}

// Fresh reports whether the snapshot is usable at now given a max age.
// A zero maxAge accepts any age.
func (s *MetricsSnapshot) Fresh(now time.Time, maxAge time.Duration) bool {
	if s == nil || s.Version != MetricsSnapshotVersion {
		return false
	}
	if maxAge <= 0 {
		return true
	}
	return now.Sub(s.ComputedAt) <= maxAge
}
