package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	minPriceFactor = decimal.RequireFromString("1.15")
	targetDivisor  = decimal.RequireFromString("0.7")
	premiumDivisor = decimal.RequireFromString("0.6")
)

// PricingInput is a single purchase line to price.
type PricingInput struct {
	Quantity      int             `json:"quantity" validate:"gt=0"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
}

// PricingResult holds totals for the line plus suggested selling prices at
// 15%, 30% and 40% margin. Prices are rounded to cents.
type PricingResult struct {
	TotalCost      decimal.Decimal `json:"total_cost"`
	UnitProfit     decimal.Decimal `json:"unit_profit"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
	GrossMargin    decimal.Decimal `json:"gross_margin"`
	Markup         decimal.Decimal `json:"markup"`
	BreakEvenPrice decimal.Decimal `json:"break_even_price"`
	MinPrice       decimal.Decimal `json:"min_price"`
	TargetPrice    decimal.Decimal `json:"target_price"`
	PremiumPrice   decimal.Decimal `json:"premium_price"`
}

func CalculatePricing(in PricingInput) PricingResult {
	qty := decimal.NewFromInt(int64(in.Quantity))
	unitProfit := in.SellingPrice.Sub(in.PurchasePrice)

	return PricingResult{
		TotalCost:      in.PurchasePrice.Mul(qty).Round(2),
		UnitProfit:     unitProfit.Round(2),
		TotalProfit:    unitProfit.Mul(qty).Round(2),
		GrossMargin:    Margin(in.PurchasePrice, in.SellingPrice).Round(1),
		Markup:         Markup(in.PurchasePrice, in.SellingPrice).Round(1),
		BreakEvenPrice: in.PurchasePrice.Round(2),
		MinPrice:       in.PurchasePrice.Mul(minPriceFactor).Round(2),
		TargetPrice:    in.PurchasePrice.Div(targetDivisor).Round(2),
		PremiumPrice:   in.PurchasePrice.Div(premiumDivisor).Round(2),
	}
}

// Markup is profit as a percentage of cost; 0 when cost is 0.
func Markup(cost, price decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return price.Sub(cost).Div(cost).Mul(hundred)
}

// Margin is profit as a percentage of the selling price; 0 when price is 0.
func Margin(cost, price decimal.Decimal) decimal.Decimal {
	if price.IsZero() {
		return decimal.Zero
	}
	return price.Sub(cost).Div(price).Mul(hundred)
}

// PriceFromMargin returns the price giving targetMargin percent. Margins of
// 100 or more are impossible and return 0.
func PriceFromMargin(cost, targetMargin decimal.Decimal) decimal.Decimal {
	if targetMargin.GreaterThanOrEqual(hundred) {
		return decimal.Zero
	}
	return cost.Div(decimal.NewFromInt(1).Sub(targetMargin.Div(hundred)))
}

func PriceFromMarkup(cost, markup decimal.Decimal) decimal.Decimal {
	return cost.Mul(decimal.NewFromInt(1).Add(markup.Div(hundred)))
}

// BreakEvenUnits is fixed costs over the unit contribution margin; 0 when
// each unit does not contribute.
func BreakEvenUnits(fixedCosts, pricePerUnit, variableCostPerUnit decimal.Decimal) decimal.Decimal {
	contribution := pricePerUnit.Sub(variableCostPerUnit)
	if !contribution.IsPositive() {
		return decimal.Zero
	}
	return fixedCosts.Div(contribution)
}

func ReorderPoint(leadTimeDays int, dailySalesRate float64, safetyStock int) float64 {
	return float64(leadTimeDays)*dailySalesRate + float64(safetyStock)
}

// EconomicOrderQuantity is sqrt(2DS/H); 0 when holding cost is 0.
func EconomicOrderQuantity(annualDemand, orderingCost, holdingCostPerUnit float64) float64 {
	if holdingCostPerUnit == 0 {
		return 0
	}
	return math.Sqrt(2 * annualDemand * orderingCost / holdingCostPerUnit)
}

// InventoryTurnover is cost of goods sold over average inventory value;
// 0 when there is no inventory value.
func InventoryTurnover(costOfGoodsSold, averageInventoryValue decimal.Decimal) decimal.Decimal {
	if averageInventoryValue.IsZero() {
		return decimal.Zero
	}
	return costOfGoodsSold.Div(averageInventoryValue)
}
