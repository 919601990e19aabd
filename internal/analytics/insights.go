package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"retailpulse/internal/models"
)

const (
	// MaxInsights caps every insight list.
	MaxInsights = 5
	// SummaryInsights is how many a summarized view shows.
	SummaryInsights = 4

	insightWindowDays = 30
	reorderCoverDays  = 30
	monthlyGrowthBand = 10.0
)

// InsightInput carries the pre-fetched records for GenerateInsights.
type InsightInput struct {
	Products  []*models.Product
	Inventory []*models.InventoryEntry
	// WindowSales are the sales inside InsightWindow(Now).
	WindowSales []*models.Sale
	// AllSales is used for on-hand stock. When nil, WindowSales is used instead.
	AllSales []*models.Sale
	Now      time.Time
}

// InsightWindow is the trailing calendar month ending at now.
func InsightWindow(now time.Time) models.DateRange {
	return models.DateRange{Start: AddMonths(now, -1), End: now}
}

// GenerateInsights runs the stock and month-over-month rules in order and
// falls back to a single health message when neither fires.
func GenerateInsights(in InsightInput) []models.Insight {
	insights := stockAlerts(in)
	if ins, ok := monthOverMonth(in.WindowSales, in.Now); ok {
		insights = append(insights, ins)
	}

	if len(insights) == 0 {
		insights = append(insights, models.Insight{
			Type:    models.InsightInfo,
			Title:   "Business Health",
			Message: "Your business metrics are stable. Continue monitoring key performance indicators.",
			Action:  "Focus on customer retention and product diversification.",
		})
	}

	return Truncate(insights, MaxInsights)
}

func stockAlerts(in InsightInput) []models.Insight {
	stockSales := in.AllSales
	if stockSales == nil {
		stockSales = in.WindowSales
	}
	onHand := StockOnHand(in.Inventory, stockSales)

	soldInWindow := make(map[uuid.UUID]int)
	for _, s := range in.WindowSales {
		soldInWindow[s.ProductID] += s.QuantitySold
	}

	var out []models.Insight
	for _, p := range in.Products {
		sold := soldInWindow[p.ID]
		current := onHand[p.ID]
		// avgDailySales > 0 iff sold > 0
		if current >= LowStockThreshold || sold <= 0 {
			continue
		}

		typ := models.InsightWarning
		if current < CriticalStockThreshold {
			typ = models.InsightCritical
		}

		out = append(out, models.Insight{
			Type:  typ,
			Title: "Stock Alert",
			Message: fmt.Sprintf("%s (SKU: %s) needs reorder. Current: %d units, expected stockout in %d days.",
				p.Name, p.SKU, current, daysOfStock(current, sold)),
			Action: fmt.Sprintf("Reorder %d units to maintain %d-day stock.", reorderQuantity(sold), reorderCoverDays),
		})
	}
	return out
}

// daysOfStock is floor(current / (sold / windowDays)), never below zero.
func daysOfStock(current, sold int) int {
	days := int(math.Floor(float64(current*insightWindowDays) / float64(sold)))
	if days < 0 {
		return 0
	}
	return days
}

// reorderQuantity is ceil(avgDailySales * reorderCoverDays).
func reorderQuantity(sold int) int {
	n := sold * reorderCoverDays
	return (n + insightWindowDays - 1) / insightWindowDays
}

func monthOverMonth(sales []*models.Sale, now time.Time) (models.Insight, bool) {
	if len(sales) == 0 {
		return models.Insight{}, false
	}

	cy, cm, _ := now.Date()
	py, pm, _ := time.Date(cy, cm-1, 1, 0, 0, 0, 0, now.Location()).Date()

	current, prior := decimal.Zero, decimal.Zero
	for _, s := range sales {
		y, m, _ := s.DateSold.In(now.Location()).Date()
		switch {
		case y == cy && m == cm:
			current = current.Add(s.Amount())
		case y == py && m == pm:
			prior = prior.Add(s.Amount())
		}
	}

	if !prior.IsPositive() {
		return models.Insight{}, false
	}

	growth := current.Sub(prior).Div(prior).Mul(hundred).InexactFloat64()
	switch {
	case growth > monthlyGrowthBand:
		return models.Insight{
			Type:    models.InsightSuccess,
			Title:   "Growth Opportunity",
			Message: fmt.Sprintf("Sales are up %.1f%% this month. Consider expanding inventory for trending products.", growth),
			Action:  "Review top-selling items and increase stock levels.",
		}, true
	case growth < -monthlyGrowthBand:
		return models.Insight{
			Type:    models.InsightWarning,
			Title:   "Sales Decline",
			Message: fmt.Sprintf("Sales are down %.1f%% this month. Review pricing and marketing strategies.", math.Abs(growth)),
			Action:  "Analyze product performance and consider promotional campaigns.",
		}, true
	}
	return models.Insight{}, false
}

// Truncate returns at most n insights. n <= 0 leaves the list alone.
func Truncate(insights []models.Insight, n int) []models.Insight {
	if n > 0 && len(insights) > n {
		return insights[:n]
	}
	return insights
}
