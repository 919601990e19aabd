package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"retailpulse/internal/common"
	"retailpulse/internal/models"
	"retailpulse/internal/services"
)

type SalesHandlers struct {
	salesService services.SalesService
}

func NewSalesHandlers(salesService services.SalesService) *SalesHandlers {
	return &SalesHandlers{salesService: salesService}
}

// CreateSale handles POST /api/sales
func (h *SalesHandlers) CreateSale(c echo.Context) error {
	var req models.CreateSaleRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	sale, err := h.salesService.Create(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err, "Product")
	}
	return c.JSON(http.StatusCreated, sale)
}

// ListSales handles GET /api/sales
func (h *SalesHandlers) ListSales(c echo.Context) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	sales, err := h.salesService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, err, "Sale")
	}
	return c.JSON(http.StatusOK, sales)
}
