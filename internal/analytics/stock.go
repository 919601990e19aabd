package analytics

import (
	"github.com/google/uuid"

	"retailpulse/internal/models"
)

const (
	LowStockThreshold      = 10
	CriticalStockThreshold = 5
)

// StockOnHand returns all-time received minus all-time sold per product.
// Products with no movements are absent from the map (zero stock).
func StockOnHand(inventory []*models.InventoryEntry, sales []*models.Sale) map[uuid.UUID]int {
	stock := make(map[uuid.UUID]int)
	for _, inv := range inventory {
		stock[inv.ProductID] += inv.QuantityReceived
	}
	for _, s := range sales {
		stock[s.ProductID] -= s.QuantitySold
	}
	return stock
}

// ComputeStockLevels classifies every product, in product order. Negative stock
// is kept as is.
func ComputeStockLevels(products []*models.Product, inventory []*models.InventoryEntry, allSales []*models.Sale) []models.StockLevel {
	onHand := StockOnHand(inventory, allSales)

	levels := make([]models.StockLevel, 0, len(products))
	for _, p := range products {
		current := onHand[p.ID]
		levels = append(levels, models.StockLevel{
			ProductID:    p.ID.String(),
			ProductName:  p.Name,
			SKU:          p.SKU,
			CurrentStock: current,
			IsLowStock:   current < LowStockThreshold,
			IsCritical:   current < CriticalStockThreshold,
		})
	}
	return levels
}
