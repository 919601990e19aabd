package handlers

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"retailpulse/internal/analytics"
	"retailpulse/internal/common"
)

// RetailMathsHandlers exposes the pricing and stock calculators. They are
// stateless and need no store.
type RetailMathsHandlers struct{}

func NewRetailMathsHandlers() *RetailMathsHandlers {
	return &RetailMathsHandlers{}
}

// Pricing handles POST /api/retail-maths/pricing
func (h *RetailMathsHandlers) Pricing(c echo.Context) error {
	var req analytics.PricingInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	if req.PurchasePrice.IsNegative() || req.SellingPrice.IsNegative() {
		return common.SendClientError(c, "prices cannot be negative")
	}
	return c.JSON(http.StatusOK, analytics.CalculatePricing(req))
}

type PriceRequest struct {
	Cost   decimal.Decimal  `json:"cost"`
	Margin *decimal.Decimal `json:"margin"`
	Markup *decimal.Decimal `json:"markup"`
}

// Price handles POST /api/retail-maths/price: a selling price from cost and
// either a target margin or a markup, both in percent.
func (h *RetailMathsHandlers) Price(c echo.Context) error {
	var req PriceRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	var price decimal.Decimal
	switch {
	case req.Margin != nil:
		if req.Margin.GreaterThanOrEqual(decimal.NewFromInt(100)) {
			return common.SendValidationError(c, "margin", "must be below 100")
		}
		price = analytics.PriceFromMargin(req.Cost, *req.Margin)
	case req.Markup != nil:
		price = analytics.PriceFromMarkup(req.Cost, *req.Markup)
	default:
		return common.SendValidationError(c, "margin", "margin or markup is required")
	}

	return c.JSON(http.StatusOK, map[string]decimal.Decimal{
		"price":  price.Round(2),
		"margin": analytics.Margin(req.Cost, price).Round(1),
		"markup": analytics.Markup(req.Cost, price).Round(1),
	})
}

type BreakEvenRequest struct {
	FixedCosts          decimal.Decimal `json:"fixed_costs"`
	PricePerUnit        decimal.Decimal `json:"price_per_unit"`
	VariableCostPerUnit decimal.Decimal `json:"variable_cost_per_unit"`
}

// BreakEven handles POST /api/retail-maths/break-even
func (h *RetailMathsHandlers) BreakEven(c echo.Context) error {
	var req BreakEvenRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	units := analytics.BreakEvenUnits(req.FixedCosts, req.PricePerUnit, req.VariableCostPerUnit)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"units":   units.Ceil().IntPart(),
		"revenue": units.Ceil().Mul(req.PricePerUnit).Round(2),
	})
}

type ReorderRequest struct {
	LeadTimeDays       int     `json:"lead_time_days" validate:"gte=0"`
	DailySalesRate     float64 `json:"daily_sales_rate" validate:"gte=0"`
	SafetyStock        int     `json:"safety_stock" validate:"gte=0"`
	AnnualDemand       float64 `json:"annual_demand" validate:"gte=0"`
	OrderingCost       float64 `json:"ordering_cost" validate:"gte=0"`
	HoldingCostPerUnit float64 `json:"holding_cost_per_unit" validate:"gte=0"`
}

// Reorder handles POST /api/retail-maths/reorder: reorder point and economic
// order quantity, both rounded up to whole units.
func (h *RetailMathsHandlers) Reorder(c echo.Context) error {
	var req ReorderRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	return c.JSON(http.StatusOK, map[string]int{
		"reorder_point":           int(math.Ceil(analytics.ReorderPoint(req.LeadTimeDays, req.DailySalesRate, req.SafetyStock))),
		"economic_order_quantity": int(math.Ceil(analytics.EconomicOrderQuantity(req.AnnualDemand, req.OrderingCost, req.HoldingCostPerUnit))),
	})
}

type TurnoverRequest struct {
	CostOfGoodsSold       decimal.Decimal `json:"cost_of_goods_sold"`
	AverageInventoryValue decimal.Decimal `json:"average_inventory_value"`
}

// Turnover handles POST /api/retail-maths/turnover
func (h *RetailMathsHandlers) Turnover(c echo.Context) error {
	var req TurnoverRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	turns := analytics.InventoryTurnover(req.CostOfGoodsSold, req.AverageInventoryValue)
	days := decimal.Zero
	if turns.IsPositive() {
		days = decimal.NewFromInt(365).Div(turns)
	}
	return c.JSON(http.StatusOK, map[string]decimal.Decimal{
		"turnover":          turns.Round(2),
		"days_of_inventory": days.Round(1),
	})
}
