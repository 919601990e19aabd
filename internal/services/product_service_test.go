package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"retailpulse/internal/common"
	"retailpulse/internal/models"
)

type ProductServiceTestSuite struct {
	suite.Suite
	service         ProductService
	mockProductRepo *MockProductRepository
	mockInvalidator *MockInvalidator
	ctx             context.Context
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockProductRepo = &MockProductRepository{}
	suite.mockInvalidator = &MockInvalidator{}
	suite.service = NewProductService(suite.mockProductRepo, suite.mockInvalidator, zerolog.Nop())
	suite.ctx = context.Background()
}

func (suite *ProductServiceTestSuite) TearDownTest() {
	suite.mockProductRepo.AssertExpectations(suite.T())
	suite.mockInvalidator.AssertExpectations(suite.T())
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func (suite *ProductServiceTestSuite) TestCreate_Success() {
	desc := "500g bag"
	req := &models.CreateProductRequest{SKU: " RICE-500 ", Name: "Rice", Description: &desc}

	suite.mockProductRepo.On("GetBySKU", suite.ctx, "RICE-500").Return(nil, common.ErrNotFound)
	suite.mockProductRepo.On("Create", suite.ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.SKU == "RICE-500" && p.Name == "Rice" && p.ID != uuid.Nil
	})).Return(nil)
	suite.mockInvalidator.On("InvalidateMetrics", suite.ctx).Return(nil).Once()

	product, err := suite.service.Create(suite.ctx, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "RICE-500", product.SKU)
	assert.Equal(suite.T(), &desc, product.Description)
}

func (suite *ProductServiceTestSuite) TestCreate_DuplicateSKU() {
	req := &models.CreateProductRequest{SKU: "RICE-500", Name: "Rice"}
	suite.mockProductRepo.On("GetBySKU", suite.ctx, "RICE-500").Return(&models.Product{SKU: "RICE-500"}, nil)

	product, err := suite.service.Create(suite.ctx, req)

	assert.Nil(suite.T(), product)
	assert.ErrorIs(suite.T(), err, common.ErrDuplicate)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
	suite.mockInvalidator.AssertNotCalled(suite.T(), "InvalidateMetrics", mock.Anything)
}

func (suite *ProductServiceTestSuite) TestCreate_LookupFailure() {
	req := &models.CreateProductRequest{SKU: "RICE-500", Name: "Rice"}
	suite.mockProductRepo.On("GetBySKU", suite.ctx, "RICE-500").Return(nil, errors.New("connection reset"))

	_, err := suite.service.Create(suite.ctx, req)

	assert.EqualError(suite.T(), err, "connection reset")
}

func (suite *ProductServiceTestSuite) TestCreate_BlankName() {
	_, err := suite.service.Create(suite.ctx, &models.CreateProductRequest{SKU: "X", Name: "   "})
	assert.ErrorIs(suite.T(), err, common.ErrInvalidInput)
}

func (suite *ProductServiceTestSuite) TestUpdate_OnlyNameAndDescription() {
	id := uuid.New()
	existing := &models.Product{ID: id, SKU: "RICE-500", Name: "Rice"}
	name := "Basmati Rice"

	suite.mockProductRepo.On("GetByID", suite.ctx, id).Return(existing, nil)
	suite.mockProductRepo.On("Update", suite.ctx, existing).Return(nil)
	suite.mockInvalidator.On("InvalidateMetrics", suite.ctx).Return(nil).Once()

	product, err := suite.service.Update(suite.ctx, id, &models.UpdateProductRequest{Name: &name})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Basmati Rice", product.Name)
	assert.Equal(suite.T(), "RICE-500", product.SKU)
	assert.Nil(suite.T(), product.Description)
}

func (suite *ProductServiceTestSuite) TestUpdate_NotFound() {
	id := uuid.New()
	suite.mockProductRepo.On("GetByID", suite.ctx, id).Return(nil, common.ErrNotFound)

	_, err := suite.service.Update(suite.ctx, id, &models.UpdateProductRequest{})

	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *ProductServiceTestSuite) TestList() {
	products := []*models.Product{{SKU: "A"}, {SKU: "B"}}
	suite.mockProductRepo.On("List", suite.ctx, 50, 0).Return(products, nil)

	result, err := suite.service.List(suite.ctx, 50, 0)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
}

func (suite *ProductServiceTestSuite) TestUpdate_RepoFailureKeepsCache() {
	id := uuid.New()
	existing := &models.Product{ID: id, SKU: "RICE-500", Name: "Rice"}
	suite.mockProductRepo.On("GetByID", suite.ctx, id).Return(existing, nil)
	suite.mockProductRepo.On("Update", suite.ctx, existing).Return(errors.New("connection reset"))

	_, err := suite.service.Update(suite.ctx, id, &models.UpdateProductRequest{})

	assert.Error(suite.T(), err)
	suite.mockInvalidator.AssertNotCalled(suite.T(), "InvalidateMetrics", mock.Anything)
}

func TestProductService_NilInvalidator(t *testing.T) {
	ctx := context.Background()
	repo := &MockProductRepository{}
	repo.On("GetBySKU", ctx, "TEA-1").Return(nil, common.ErrNotFound)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	product, err := NewProductService(repo, nil, zerolog.Nop()).Create(ctx, &models.CreateProductRequest{SKU: "TEA-1", Name: "Tea"})

	assert.NoError(t, err)
	assert.Equal(t, "Tea", product.Name)
	repo.AssertExpectations(t)
}
