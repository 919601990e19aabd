package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a stock depletion event. Sales are never edited.
type Sale struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	ProductID    uuid.UUID       `json:"product_id" db:"product_id"`
	SalesPrice   decimal.Decimal `json:"sales_price" db:"sales_price"`
	QuantitySold int             `json:"quantity_sold" db:"quantity_sold"`
	DateSold     time.Time       `json:"date_sold" db:"date_sold"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// Amount is the line value of the sale.
func (s *Sale) Amount() decimal.Decimal {
	return s.SalesPrice.Mul(decimal.NewFromInt(int64(s.QuantitySold)))
}

type CreateSaleRequest struct {
	ProductID    uuid.UUID       `json:"product_id" validate:"required"`
	SalesPrice   decimal.Decimal `json:"sales_price"`
	QuantitySold int             `json:"quantity_sold" validate:"required,gt=0"`
	DateSold     time.Time       `json:"date_sold" validate:"required"`
}

// DateRange is an inclusive [Start, End] window.
type DateRange struct {
	Start time.Time
	End   time.Time
}
