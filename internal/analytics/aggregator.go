package analytics

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"retailpulse/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Aggregate is the decimal form of the dashboard computation.
type Aggregate struct {
	TotalSales        decimal.Decimal
	CostOfSales       decimal.Decimal
	GrossProfit       decimal.Decimal
	GrossMargin       decimal.Decimal
	TotalQuantitySold int
	TotalProducts     int
	LowStockCount     int
	StockLevels       []models.StockLevel
	SalesTrend        []TrendPoint

	// UncostedSales counts period sales whose product has no inventory entry.
	UncostedSales int
}

type TrendPoint struct {
	Sale   *models.Sale
	Amount decimal.Decimal
}

// ComputeDashboardMetrics aggregates period sales against all-time products,
// inventory and sales. Inputs are not modified.
func ComputeDashboardMetrics(sales, allSales []*models.Sale, products []*models.Product, inventory []*models.InventoryEntry) Aggregate {
	agg := Aggregate{
		TotalSales:    decimal.Zero,
		CostOfSales:   decimal.Zero,
		TotalProducts: len(products),
		SalesTrend:    make([]TrendPoint, 0, len(sales)),
	}

	latest := LatestPurchases(inventory)
	for _, s := range sales {
		amount := s.Amount()
		qty := decimal.NewFromInt(int64(s.QuantitySold))

		agg.TotalSales = agg.TotalSales.Add(amount)
		agg.TotalQuantitySold += s.QuantitySold
		agg.SalesTrend = append(agg.SalesTrend, TrendPoint{Sale: s, Amount: amount})

		if entry, ok := latest[s.ProductID]; ok {
			agg.CostOfSales = agg.CostOfSales.Add(entry.PurchasePrice.Mul(qty))
		} else {
			agg.UncostedSales++
		}
	}

	agg.GrossProfit = agg.TotalSales.Sub(agg.CostOfSales)
	agg.GrossMargin = decimal.Zero
	if agg.TotalSales.IsPositive() {
		agg.GrossMargin = agg.GrossProfit.Div(agg.TotalSales).Mul(hundred)
	}

	agg.StockLevels = ComputeStockLevels(products, inventory, allSales)
	for _, lvl := range agg.StockLevels {
		if lvl.IsLowStock {
			agg.LowStockCount++
		}
	}

	return agg
}

// LatestPurchases picks, per product, the entry with the most recent
// datePurchased. Equal dates are broken by the highest id.
func LatestPurchases(inventory []*models.InventoryEntry) map[uuid.UUID]*models.InventoryEntry {
	latest := make(map[uuid.UUID]*models.InventoryEntry)
	for _, inv := range inventory {
		cur, ok := latest[inv.ProductID]
		if !ok || newerPurchase(inv, cur) {
			latest[inv.ProductID] = inv
		}
	}
	return latest
}

func newerPurchase(a, b *models.InventoryEntry) bool {
	if !a.DatePurchased.Equal(b.DatePurchased) {
		return a.DatePurchased.After(b.DatePurchased)
	}
	return a.ID.String() > b.ID.String()
}

// Metrics converts the aggregate to its wire form.
func (a Aggregate) Metrics() models.DashboardMetrics {
	trend := make([]models.SalesTrendPoint, 0, len(a.SalesTrend))
	for _, p := range a.SalesTrend {
		trend = append(trend, models.SalesTrendPoint{Date: p.Sale.DateSold, Amount: p.Amount.InexactFloat64()})
	}

	levels := a.StockLevels
	if levels == nil {
		levels = []models.StockLevel{}
	}

	return models.DashboardMetrics{
		TotalSales:        a.TotalSales.InexactFloat64(),
		GrossMargin:       a.GrossMargin.InexactFloat64(),
		TotalProducts:     a.TotalProducts,
		LowStockCount:     a.LowStockCount,
		CostOfSales:       a.CostOfSales.InexactFloat64(),
		GrossProfit:       a.GrossProfit.InexactFloat64(),
		TotalQuantitySold: a.TotalQuantitySold,
		StockLevels:       levels,
		SalesTrend:        trend,
	}
}
