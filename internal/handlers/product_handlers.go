package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"retailpulse/internal/common"
	"retailpulse/internal/models"
	"retailpulse/internal/services"
)

// ProductHandlers handles HTTP requests for products
type ProductHandlers struct {
	productService services.ProductService
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

// CreateProduct handles POST /api/products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	var req models.CreateProductRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	product, err := h.productService.Create(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err, "Product")
	}
	return c.JSON(http.StatusCreated, product)
}

// GetProduct handles GET /api/products/:id
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	product, err := h.productService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Product")
	}
	return c.JSON(http.StatusOK, product)
}

// UpdateProduct handles PUT /api/products/:id
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req models.UpdateProductRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	product, err := h.productService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return respondError(c, err, "Product")
	}
	return c.JSON(http.StatusOK, product)
}

// ListProducts handles GET /api/products, newest first.
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	products, err := h.productService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, err, "Product")
	}
	return c.JSON(http.StatusOK, products)
}
