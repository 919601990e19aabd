package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"retailpulse/internal/common"
	"retailpulse/internal/models"
	"retailpulse/internal/services"
)

type InventoryHandlers struct {
	inventoryService services.InventoryService
}

func NewInventoryHandlers(inventoryService services.InventoryService) *InventoryHandlers {
	return &InventoryHandlers{inventoryService: inventoryService}
}

// CreateEntry handles POST /api/inventory
func (h *InventoryHandlers) CreateEntry(c echo.Context) error {
	var req models.CreateInventoryEntryRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	entry, err := h.inventoryService.Create(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err, "Product")
	}
	return c.JSON(http.StatusCreated, entry)
}

// ListEntries handles GET /api/inventory
func (h *InventoryHandlers) ListEntries(c echo.Context) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	entries, err := h.inventoryService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, err, "Inventory entry")
	}
	return c.JSON(http.StatusOK, entries)
}

// ListByProduct handles GET /api/inventory/product/:productId
func (h *InventoryHandlers) ListByProduct(c echo.Context) error {
	productID, err := common.ValidateUUID(c.Param("productId"), "productId")
	if err != nil {
		return common.SendValidationError(c, "productId", err.Error())
	}

	entries, err := h.inventoryService.ListByProduct(c.Request().Context(), productID)
	if err != nil {
		return respondError(c, err, "Inventory entry")
	}
	return c.JSON(http.StatusOK, entries)
}
