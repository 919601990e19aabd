package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"retailpulse/internal/analytics"
	"retailpulse/internal/models"
)

// Mock repositories and services
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) ListAll(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Product), args.Error(1)
}

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Create(ctx context.Context, entry *models.InventoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockInventoryRepository) List(ctx context.Context, limit, offset int) ([]*models.InventoryEntry, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.InventoryEntry), args.Error(1)
}

func (m *MockInventoryRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.InventoryEntry, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]*models.InventoryEntry), args.Error(1)
}

func (m *MockInventoryRepository) ListAll(ctx context.Context) ([]*models.InventoryEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.InventoryEntry), args.Error(1)
}

type MockSalesRepository struct {
	mock.Mock
}

func (m *MockSalesRepository) Create(ctx context.Context, sale *models.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSalesRepository) List(ctx context.Context, limit, offset int) ([]*models.Sale, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Sale), args.Error(1)
}

func (m *MockSalesRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Sale, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]*models.Sale), args.Error(1)
}

func (m *MockSalesRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*models.Sale, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]*models.Sale), args.Error(1)
}

func (m *MockSalesRepository) ListAll(ctx context.Context) ([]*models.Sale, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Sale), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) List(ctx context.Context) ([]*models.Lesson, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) ListByCategory(ctx context.Context, category string) ([]*models.Lesson, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) UpsertProgress(ctx context.Context, progress *models.LessonProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockLessonRepository) ListProgress(ctx context.Context, userID uuid.UUID) ([]*models.LessonProgress, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.LessonProgress), args.Error(1)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) InvalidateMetrics(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) UploadObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, contentType)
	return args.Error(0)
}

func (m *MockMinioService) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

type MockSnapshotSource struct {
	mock.Mock
}

func (m *MockSnapshotSource) Dashboard(ctx context.Context, periodKey string, opts analytics.DashboardOptions) (*models.DashboardMetrics, error) {
	args := m.Called(ctx, periodKey, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardMetrics), args.Error(1)
}

func (m *MockSnapshotSource) Insights(ctx context.Context) ([]models.Insight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Insight), args.Error(1)
}
