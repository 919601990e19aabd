package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"retailpulse/internal/common"
	"retailpulse/internal/models"
	"retailpulse/internal/repositories"
)

type SalesService interface {
	Create(ctx context.Context, req *models.CreateSaleRequest) (*models.Sale, error)
	List(ctx context.Context, limit, offset int) ([]*models.Sale, error)
}

type salesService struct {
	salesRepo   repositories.SalesRepository
	productRepo repositories.ProductRepository
	invalidator MetricsInvalidator
	logger      zerolog.Logger
}

func NewSalesService(salesRepo repositories.SalesRepository, productRepo repositories.ProductRepository, invalidator MetricsInvalidator, logger zerolog.Logger) SalesService {
	return &salesService{
		salesRepo:   salesRepo,
		productRepo: productRepo,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Create records a sale. Stock is not checked: selling ahead of a receipt is
// allowed and shows up as negative stock.
func (s *salesService) Create(ctx context.Context, req *models.CreateSaleRequest) (*models.Sale, error) {
	if !req.SalesPrice.IsPositive() {
		return nil, fmt.Errorf("%w: sales price must be positive", common.ErrInvalidInput)
	}
	if req.QuantitySold <= 0 {
		return nil, fmt.Errorf("%w: quantity sold must be positive", common.ErrInvalidInput)
	}
	if _, err := s.productRepo.GetByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	sale := &models.Sale{
		ID:           uuid.New(),
		ProductID:    req.ProductID,
		SalesPrice:   req.SalesPrice.Round(2),
		QuantitySold: req.QuantitySold,
		DateSold:     req.DateSold,
	}
	if err := s.salesRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	invalidateMetrics(ctx, s.invalidator, s.logger)
	return sale, nil
}

func (s *salesService) List(ctx context.Context, limit, offset int) ([]*models.Sale, error) {
	return s.salesRepo.List(ctx, limit, offset)
}
