package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"retailpulse/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func product(sku, name string) *models.Product {
	return &models.Product{ID: uuid.New(), SKU: sku, Name: name}
}

func receipt(p *models.Product, price string, qty int, at time.Time) *models.InventoryEntry {
	return &models.InventoryEntry{
		ID:               uuid.New(),
		ProductID:        p.ID,
		PurchasePrice:    decimal.RequireFromString(price),
		QuantityReceived: qty,
		DatePurchased:    at,
		GRNNumber:        "GRN-" + p.SKU,
	}
}

func sale(p *models.Product, price string, qty int, at time.Time) *models.Sale {
	return &models.Sale{
		ID:           uuid.New(),
		ProductID:    p.ID,
		SalesPrice:   decimal.RequireFromString(price),
		QuantitySold: qty,
		DateSold:     at,
	}
}
