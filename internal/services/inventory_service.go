package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"retailpulse/internal/common"
	"retailpulse/internal/models"
	"retailpulse/internal/repositories"
)

// MetricsInvalidator drops cached dashboard snapshots after a write that changes them.
type MetricsInvalidator interface {
	InvalidateMetrics(ctx context.Context) error
}

type InventoryService interface {
	Create(ctx context.Context, req *models.CreateInventoryEntryRequest) (*models.InventoryEntry, error)
	List(ctx context.Context, limit, offset int) ([]*models.InventoryEntry, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.InventoryEntry, error)
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
	productRepo   repositories.ProductRepository
	invalidator   MetricsInvalidator
	logger        zerolog.Logger
}

// NewInventoryService builds the receipt service. invalidator may be nil.
func NewInventoryService(inventoryRepo repositories.InventoryRepository, productRepo repositories.ProductRepository, invalidator MetricsInvalidator, logger zerolog.Logger) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		invalidator:   invalidator,
		logger:        logger,
	}
}

func (s *inventoryService) Create(ctx context.Context, req *models.CreateInventoryEntryRequest) (*models.InventoryEntry, error) {
	if !req.PurchasePrice.IsPositive() {
		return nil, fmt.Errorf("%w: purchase price must be positive", common.ErrInvalidInput)
	}
	if req.QuantityReceived <= 0 {
		return nil, fmt.Errorf("%w: quantity received must be positive", common.ErrInvalidInput)
	}
	if _, err := s.productRepo.GetByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	entry := &models.InventoryEntry{
		ID:               uuid.New(),
		ProductID:        req.ProductID,
		PurchasePrice:    req.PurchasePrice.Round(2),
		QuantityReceived: req.QuantityReceived,
		DatePurchased:    req.DatePurchased,
		GRNNumber:        strings.TrimSpace(req.GRNNumber),
	}
	if err := s.inventoryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	invalidateMetrics(ctx, s.invalidator, s.logger)
	return entry, nil
}

func (s *inventoryService) List(ctx context.Context, limit, offset int) ([]*models.InventoryEntry, error) {
	return s.inventoryRepo.List(ctx, limit, offset)
}

func (s *inventoryService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.InventoryEntry, error) {
	return s.inventoryRepo.ListByProduct(ctx, productID)
}

func invalidateMetrics(ctx context.Context, invalidator MetricsInvalidator, logger zerolog.Logger) {
	if invalidator == nil {
		return
	}
	if err := invalidator.InvalidateMetrics(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate metrics cache")
	}
}
