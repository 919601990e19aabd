package handlers

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"retailpulse/internal/analytics"
	"retailpulse/internal/common"
	"retailpulse/internal/jobs"
	"retailpulse/internal/models"
	"retailpulse/internal/services"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = common.NewRequestValidator()
	return e
}

// newContext builds a request context; a non-empty body is sent as JSON.
func newContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withUser(c echo.Context, userID uuid.UUID) {
	ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
	c.SetRequest(c.Request().WithContext(ctx))
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Product), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenResponse), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ValidateToken(token string) (*services.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenClaims), args.Error(1)
}

type MockLessonService struct {
	mock.Mock
}

func (m *MockLessonService) List(ctx context.Context, category string) ([]*models.Lesson, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]*models.Lesson), args.Error(1)
}

func (m *MockLessonService) GetByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockLessonService) ListProgress(ctx context.Context, userID uuid.UUID) ([]*models.LessonProgress, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.LessonProgress), args.Error(1)
}

func (m *MockLessonService) UpdateProgress(ctx context.Context, userID, lessonID uuid.UUID, req *models.UpdateProgressRequest) (*models.LessonProgress, error) {
	args := m.Called(ctx, userID, lessonID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LessonProgress), args.Error(1)
}

type MockAnalyticsProvider struct {
	mock.Mock
}

func (m *MockAnalyticsProvider) Dashboard(ctx context.Context, periodKey string, opts analytics.DashboardOptions) (*models.DashboardMetrics, error) {
	args := m.Called(ctx, periodKey, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardMetrics), args.Error(1)
}

func (m *MockAnalyticsProvider) Insights(ctx context.Context) ([]models.Insight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Insight), args.Error(1)
}

func (m *MockAnalyticsProvider) Analysis(ctx context.Context, periodKey string, opts analytics.DashboardOptions) (*models.AnalysisResponse, error) {
	args := m.Called(ctx, periodKey, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalysisResponse), args.Error(1)
}

type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) RefreshAllPeriods(ctx context.Context) (*jobs.AnalyticsRefreshResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jobs.AnalyticsRefreshResult), args.Error(1)
}

type MockLowStockChecker struct {
	mock.Mock
}

func (m *MockLowStockChecker) CheckLowStock(ctx context.Context) ([]models.StockLevel, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.StockLevel), args.Error(1)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

var errDown = errors.New("connection refused")

