package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryEntry is a stock receipt (goods received). Entries are never edited.
type InventoryEntry struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	ProductID        uuid.UUID       `json:"product_id" db:"product_id"`
	PurchasePrice    decimal.Decimal `json:"purchase_price" db:"purchase_price"`
	QuantityReceived int             `json:"quantity_received" db:"quantity_received"`
	DatePurchased    time.Time       `json:"date_purchased" db:"date_purchased"`
	GRNNumber        string          `json:"grn_number" db:"grn_number"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

type CreateInventoryEntryRequest struct {
	ProductID        uuid.UUID       `json:"product_id" validate:"required"`
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	QuantityReceived int             `json:"quantity_received" validate:"required,gt=0"`
	DatePurchased    time.Time       `json:"date_purchased" validate:"required"`
	GRNNumber        string          `json:"grn_number" validate:"required,max=64"`
}
