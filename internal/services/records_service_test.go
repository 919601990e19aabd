package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"retailpulse/internal/common"
	"retailpulse/internal/models"
)

func TestInventoryService_Create(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	inventoryRepo := &MockInventoryRepository{}
	productRepo := &MockProductRepository{}
	invalidator := &MockInvalidator{}

	productRepo.On("GetByID", ctx, productID).Return(&models.Product{ID: productID}, nil)
	inventoryRepo.On("Create", ctx, mock.AnythingOfType("*models.InventoryEntry")).Return(nil)
	invalidator.On("InvalidateMetrics", ctx).Return(nil)

	svc := NewInventoryService(inventoryRepo, productRepo, invalidator, zerolog.Nop())
	entry, err := svc.Create(ctx, &models.CreateInventoryEntryRequest{
		ProductID:        productID,
		PurchasePrice:    decimal.RequireFromString("6.005"),
		QuantityReceived: 40,
		DatePurchased:    time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
		GRNNumber:        " GRN-1 ",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.Equal(t, "GRN-1", entry.GRNNumber)
	assert.True(t, entry.PurchasePrice.Equal(decimal.RequireFromString("6.01")))
	mock.AssertExpectationsForObjects(t, inventoryRepo, productRepo, invalidator)
}

func TestInventoryService_Create_RejectsNonPositivePrice(t *testing.T) {
	inventoryRepo := &MockInventoryRepository{}
	productRepo := &MockProductRepository{}
	svc := NewInventoryService(inventoryRepo, productRepo, nil, zerolog.Nop())

	_, err := svc.Create(context.Background(), &models.CreateInventoryEntryRequest{
		ProductID:        uuid.New(),
		PurchasePrice:    decimal.Zero,
		QuantityReceived: 1,
	})

	assert.ErrorIs(t, err, common.ErrInvalidInput)
	productRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestInventoryService_Create_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	productRepo := &MockProductRepository{}
	productRepo.On("GetByID", ctx, productID).Return(nil, common.ErrNotFound)

	svc := NewInventoryService(&MockInventoryRepository{}, productRepo, nil, zerolog.Nop())
	_, err := svc.Create(ctx, &models.CreateInventoryEntryRequest{
		ProductID:        productID,
		PurchasePrice:    decimal.NewFromInt(5),
		QuantityReceived: 1,
	})

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSalesService_Create_InvalidationFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	salesRepo := &MockSalesRepository{}
	productRepo := &MockProductRepository{}
	invalidator := &MockInvalidator{}

	productRepo.On("GetByID", ctx, productID).Return(&models.Product{ID: productID}, nil)
	salesRepo.On("Create", ctx, mock.MatchedBy(func(s *models.Sale) bool {
		return s.ProductID == productID && s.QuantitySold == 3
	})).Return(nil)
	invalidator.On("InvalidateMetrics", ctx).Return(errors.New("redis down"))

	svc := NewSalesService(salesRepo, productRepo, invalidator, zerolog.Nop())
	sale, err := svc.Create(ctx, &models.CreateSaleRequest{
		ProductID:    productID,
		SalesPrice:   decimal.NewFromInt(10),
		QuantitySold: 3,
		DateSold:     time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.True(t, sale.Amount().Equal(decimal.NewFromInt(30)))
	mock.AssertExpectationsForObjects(t, salesRepo, productRepo, invalidator)
}

func TestSalesService_Create_RejectsZeroQuantity(t *testing.T) {
	svc := NewSalesService(&MockSalesRepository{}, &MockProductRepository{}, nil, zerolog.Nop())

	_, err := svc.Create(context.Background(), &models.CreateSaleRequest{
		ProductID:  uuid.New(),
		SalesPrice: decimal.NewFromInt(10),
	})

	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestLessonService_ListFiltersByCategory(t *testing.T) {
	ctx := context.Background()
	repo := &MockLessonRepository{}
	repo.On("ListByCategory", ctx, "pricing").Return([]*models.Lesson{{Title: "Markup"}}, nil)
	repo.On("List", ctx).Return([]*models.Lesson{{Title: "Markup"}, {Title: "Stock"}}, nil)

	svc := NewLessonService(repo)

	filtered, err := svc.List(ctx, " pricing ")
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	repo.AssertExpectations(t)
}

func TestLessonService_UpdateProgress(t *testing.T) {
	ctx := context.Background()
	userID, lessonID := uuid.New(), uuid.New()
	viewed := time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

	repo := &MockLessonRepository{}
	repo.On("GetByID", ctx, lessonID).Return(&models.Lesson{ID: lessonID}, nil)
	repo.On("UpsertProgress", ctx, mock.MatchedBy(func(p *models.LessonProgress) bool {
		return p.UserID == userID && p.LessonID == lessonID &&
			p.Status == models.ProgressInProgress && p.Progress == 40 && p.LastViewedAt.Equal(viewed)
	})).Return(nil)

	svc := &lessonService{lessonRepo: repo, now: func() time.Time { return viewed }}
	progress, err := svc.UpdateProgress(ctx, userID, lessonID, &models.UpdateProgressRequest{
		Status:   models.ProgressInProgress,
		Progress: 40,
	})

	require.NoError(t, err)
	assert.Equal(t, 40, progress.Progress)
	repo.AssertExpectations(t)
}

func TestLessonService_UpdateProgress_UnknownLesson(t *testing.T) {
	ctx := context.Background()
	lessonID := uuid.New()
	repo := &MockLessonRepository{}
	repo.On("GetByID", ctx, lessonID).Return(nil, common.ErrNotFound)

	_, err := NewLessonService(repo).UpdateProgress(ctx, uuid.New(), lessonID, &models.UpdateProgressRequest{
		Status: models.ProgressCompleted,
	})

	assert.ErrorIs(t, err, common.ErrNotFound)
	repo.AssertNotCalled(t, "UpsertProgress", mock.Anything, mock.Anything)
}
