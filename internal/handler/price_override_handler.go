package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rjnat/cursorpos-admin/internal/service"
	"github.com/rjnat/cursorpos-admin/pkg/logger"
	"github.com/rjnat/cursorpos-admin/prometheus"
	"go.uber.org/zap"
)

// PriceOverrideHandler exposes the tenant-scoped price override endpoints
type PriceOverrideHandler struct {
	overrides *service.PriceOverrideService
}

// NewPriceOverrideHandler creates a price override handler
func NewPriceOverrideHandler(overrides *service.PriceOverrideService) *PriceOverrideHandler {
	return &PriceOverrideHandler{overrides: overrides}
}

// Create handles POST /price-overrides
func (h *PriceOverrideHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}

	var req service.PriceOverrideRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	override, err := h.overrides.CreateOverride(requestContext(c), tenantID, req)
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordEntityCreated("price_override")
	return c.JSON(http.StatusCreated, override)
}

// Get handles GET /price-overrides/:id
func (h *PriceOverrideHandler) Get(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	override, err := h.overrides.GetOverrideByID(requestContext(c), tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, override)
}

// ListByStore handles GET /price-overrides/store/:storeId
func (h *PriceOverrideHandler) ListByStore(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	storeID, err := uuidParam(c, "storeId")
	if err != nil {
		return err
	}
	if c.QueryParam("active") == "true" {
		overrides, err := h.overrides.GetActiveOverridesForStore(requestContext(c), tenantID, storeID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, overrides)
	}
	page, err := h.overrides.GetOverridesByStore(requestContext(c), tenantID, storeID, pageableFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// ListByProduct handles GET /price-overrides/product/:productId
func (h *PriceOverrideHandler) ListByProduct(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	productID, err := uuidParam(c, "productId")
	if err != nil {
		return err
	}
	page, err := h.overrides.GetOverridesByProduct(requestContext(c), tenantID, productID, pageableFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// GetActive handles GET /price-overrides/store/:storeId/product/:productId/active
func (h *PriceOverrideHandler) GetActive(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	storeID, err := uuidParam(c, "storeId")
	if err != nil {
		return err
	}
	productID, err := uuidParam(c, "productId")
	if err != nil {
		return err
	}
	override, err := h.overrides.GetActiveOverride(requestContext(c), tenantID, storeID, productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, override)
}

// Update handles PUT /price-overrides/:id
func (h *PriceOverrideHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req service.UpdatePriceOverrideRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	override, err := h.overrides.UpdateOverride(requestContext(c), tenantID, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, override)
}

// Delete handles DELETE /price-overrides/:id
func (h *PriceOverrideHandler) Delete(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.overrides.DeleteOverride(requestContext(c), tenantID, id); err != nil {
		return respondError(c, err)
	}
	prometheus.RecordEntityDeleted("price_override")
	return c.NoContent(http.StatusNoContent)
}

// Activate handles POST /price-overrides/:id/activate
func (h *PriceOverrideHandler) Activate(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	override, err := h.overrides.ActivateOverride(requestContext(c), tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, override)
}

// Deactivate handles POST /price-overrides/:id/deactivate
func (h *PriceOverrideHandler) Deactivate(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	override, err := h.overrides.DeactivateOverride(requestContext(c), tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, override)
}
