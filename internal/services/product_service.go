package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"retailpulse/internal/common"
	"retailpulse/internal/models"
	"retailpulse/internal/repositories"
)

type ProductService interface {
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	List(ctx context.Context, limit, offset int) ([]*models.Product, error)
}

type productService struct {
	productRepo repositories.ProductRepository
	invalidator MetricsInvalidator
	logger      zerolog.Logger
}

// NewProductService creates the product service. Product changes alter the
// dashboard's product count and stock names, so invalidator (nil ok) is
// cleared after every write.
func NewProductService(productRepo repositories.ProductRepository, invalidator MetricsInvalidator, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (s *productService) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	sku := strings.TrimSpace(req.SKU)
	name := strings.TrimSpace(req.Name)
	if sku == "" || name == "" {
		return nil, fmt.Errorf("%w: sku and name are required", common.ErrInvalidInput)
	}

	if _, err := s.productRepo.GetBySKU(ctx, sku); err == nil {
		return nil, fmt.Errorf("sku %s: %w", sku, common.ErrDuplicate)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	product := &models.Product{
		ID:          uuid.New(),
		SKU:         sku,
		Name:        name,
		Description: req.Description,
	}
	// the unique index still guards concurrent creates
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	invalidateMetrics(ctx, s.invalidator, s.logger)
	return product, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be blank", common.ErrInvalidInput)
		}
		product.Name = name
	}
	if req.Description != nil {
		product.Description = req.Description
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	invalidateMetrics(ctx, s.invalidator, s.logger)
	return product, nil
}

func (s *productService) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	return s.productRepo.List(ctx, limit, offset)
}
