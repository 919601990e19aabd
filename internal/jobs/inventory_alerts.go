package jobs

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"retailpulse/internal/analytics"
	"retailpulse/internal/models"
)

type StockAlertService struct {
	products  analytics.ProductReader
	inventory analytics.InventoryReader
	sales     analytics.SalesReader
	logger    zerolog.Logger
}

func NewStockAlertService(products analytics.ProductReader, inventory analytics.InventoryReader, sales analytics.SalesReader, logger zerolog.Logger) *StockAlertService {
	return &StockAlertService{
		products:  products,
		inventory: inventory,
		sales:     sales,
		logger:    logger.With().Str("job", "low-stock-scan").Logger(),
	}
}

// CheckLowStock returns the stock levels below the low-stock threshold, in
// product order.
func (a *StockAlertService) CheckLowStock(ctx context.Context) ([]models.StockLevel, error) {
	var (
		products  []*models.Product
		inventory []*models.InventoryEntry
		sales     []*models.Sale
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = a.products.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		inventory, err = a.inventory.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		sales, err = a.sales.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var alerts []models.StockLevel
	for _, level := range analytics.ComputeStockLevels(products, inventory, sales) {
		if level.IsLowStock {
			alerts = append(alerts, level)
		}
	}
	return alerts, nil
}

func (a *StockAlertService) LogLowStockAlerts(alerts []models.StockLevel) {
	if len(alerts) == 0 {
		a.logger.Debug().Msg("no low stock alerts")
		return
	}

	for _, alert := range alerts {
		ev := a.logger.Warn()
		if alert.IsCritical {
			ev = a.logger.Error()
		}
		ev.Str("product_id", alert.ProductID).
			Str("sku", alert.SKU).
			Str("product", alert.ProductName).
			Int("current_stock", alert.CurrentStock).
			Bool("critical", alert.IsCritical).
			Msg("low stock")
	}
}

// ScheduledLowStockScan is the scheduler entry point.
func (a *StockAlertService) ScheduledLowStockScan(ctx context.Context) error {
	alerts, err := a.CheckLowStock(ctx)
	if err != nil {
		a.logger.Error().Err(err).Msg("low stock scan failed")
		return err
	}
	a.LogLowStockAlerts(alerts)
	return nil
}
