package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"retailpulse/internal/models"
)

const (
	marginFloor       = 25.0
	marginCeiling     = 35.0
	weeklyGrowthBand  = 15.0
	weekPoints        = 7
	placeholderUnit   = 100.0
	minTurnoverRatio  = 2.0
	lowStockSKUListed = 3
)

// AnalyzeMetrics is the in-depth variant: it reads an already computed
// DashboardMetrics and evaluates every rule independently.
func AnalyzeMetrics(m models.DashboardMetrics, now time.Time) []models.Insight {
	var insights []models.Insight

	insights = append(insights, stockSummary(m.StockLevels)...)
	if ins, ok := marginBand(m.GrossMargin); ok {
		insights = append(insights, ins)
	}
	if ins, ok := weekOverWeek(m.SalesTrend); ok {
		insights = append(insights, ins)
	}
	if now.Month() >= time.October {
		insights = append(insights, models.Insight{
			Type:    models.InsightInfo,
			Title:   "Seasonal Opportunity",
			Message: "Q4 typically sees increased retail activity. Prepare for holiday shopping season.",
			Action:  "Increase inventory for popular items and plan promotional campaigns.",
		})
	}
	if slowTurnover(m) {
		insights = append(insights, models.Insight{
			Type:    models.InsightInfo,
			Title:   "Inventory Optimization",
			Message: "Some products may be moving slowly. Consider reviewing your inventory mix.",
			Action:  "Analyze product performance and consider markdowns for slow-moving items.",
		})
	}

	if len(insights) == 0 {
		insights = append(insights, models.Insight{
			Type:    models.InsightInfo,
			Title:   "Business Health Check",
			Message: "Your business metrics are within normal ranges. Continue monitoring key performance indicators.",
			Action:  "Focus on customer retention and explore opportunities for sustainable growth.",
		})
	}

	return Truncate(insights, MaxInsights)
}

func stockSummary(levels []models.StockLevel) []models.Insight {
	var critical, low []string
	for _, lvl := range levels {
		switch {
		case lvl.IsCritical:
			critical = append(critical, lvl.SKU)
		case lvl.IsLowStock:
			low = append(low, lvl.SKU)
		}
	}

	var out []models.Insight
	if len(critical) > 0 {
		out = append(out, models.Insight{
			Type:    models.InsightCritical,
			Title:   "Critical Stock Alert",
			Message: fmt.Sprintf("%d product(s) have critical stock levels. Immediate reordering required to avoid stockouts.", len(critical)),
			Action:  fmt.Sprintf("Review %s and place urgent orders.", strings.Join(critical, ", ")),
		})
	}
	if len(low) > 0 {
		listed := low
		suffix := ""
		if len(low) > lowStockSKUListed {
			listed = low[:lowStockSKUListed]
			suffix = " and others"
		}
		out = append(out, models.Insight{
			Type:    models.InsightWarning,
			Title:   "Low Stock Warning",
			Message: fmt.Sprintf("%d product(s) are running low on stock. Plan reorders soon to maintain inventory levels.", len(low)),
			Action:  fmt.Sprintf("Schedule reorders for %s%s.", strings.Join(listed, ", "), suffix),
		})
	}
	return out
}

func marginBand(margin float64) (models.Insight, bool) {
	switch {
	case margin < marginFloor:
		return models.Insight{
			Type:    models.InsightWarning,
			Title:   "Margin Below Target",
			Message: fmt.Sprintf("Current gross margin of %.1f%% is below the recommended 30%%. Consider reviewing pricing strategy.", margin),
			Action:  "Analyze product costs and adjust selling prices to improve profitability.",
		}, true
	case margin > marginCeiling:
		return models.Insight{
			Type:    models.InsightSuccess,
			Title:   "Excellent Margins",
			Message: fmt.Sprintf("Gross margin of %.1f%% is excellent. You have room for competitive pricing or promotional campaigns.", margin),
			Action:  "Consider strategic discounts to drive volume while maintaining profitability.",
		}, true
	}
	return models.Insight{}, false
}

// weekOverWeek compares the average of the last 7 trend points against the 7
// before them. Fewer than 14 points skips the rule.
func weekOverWeek(trend []models.SalesTrendPoint) (models.Insight, bool) {
	if len(trend) < 2*weekPoints {
		return models.Insight{}, false
	}

	recent := averageAmount(trend[len(trend)-weekPoints:])
	earlier := averageAmount(trend[len(trend)-2*weekPoints : len(trend)-weekPoints])
	if earlier <= 0 {
		return models.Insight{}, false
	}

	growth := (recent - earlier) / earlier * 100
	switch {
	case growth > weeklyGrowthBand:
		return models.Insight{
			Type:    models.InsightSuccess,
			Title:   "Strong Sales Growth",
			Message: fmt.Sprintf("Sales are up %.1f%% over the past week. Your business is showing positive momentum.", growth),
			Action:  "Capitalize on this trend by ensuring adequate inventory and marketing support.",
		}, true
	case growth < -weeklyGrowthBand:
		return models.Insight{
			Type:    models.InsightWarning,
			Title:   "Sales Decline",
			Message: fmt.Sprintf("Sales are down %.1f%% compared to the previous week. Investigate potential causes.", math.Abs(growth)),
			Action:  "Review market conditions, competitor activity, and customer feedback to address the decline.",
		}, true
	}
	return models.Insight{}, false
}

func averageAmount(points []models.SalesTrendPoint) float64 {
	var sum float64
	for _, p := range points {
		sum += p.Amount
	}
	return sum / float64(len(points))
}

// slowTurnover values stock at a flat placeholder per unit.
func slowTurnover(m models.DashboardMetrics) bool {
	var units int
	for _, lvl := range m.StockLevels {
		units += lvl.CurrentStock
	}
	stockValue := float64(units) * placeholderUnit
	if m.TotalSales <= 0 || stockValue <= 0 {
		return false
	}
	return m.TotalSales/stockValue < minTurnoverRatio
}
