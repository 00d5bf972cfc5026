package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rjnat/cursorpos-admin/internal/service"
	"github.com/rjnat/cursorpos-admin/pkg/logger"
	"github.com/rjnat/cursorpos-admin/prometheus"
	"go.uber.org/zap"
)

// StoreHandler exposes the tenant-scoped store endpoints
type StoreHandler struct {
	stores *service.StoreService
}

// NewStoreHandler creates a store handler
func NewStoreHandler(stores *service.StoreService) *StoreHandler {
	return &StoreHandler{stores: stores}
}

// Create handles POST /stores
func (h *StoreHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}

	var req service.StoreRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	store, err := h.stores.CreateStore(requestContext(c), tenantID, req)
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordEntityCreated("store")
	return c.JSON(http.StatusCreated, store)
}

// Get handles GET /stores/:id
func (h *StoreHandler) Get(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	store, err := h.stores.GetStoreByID(requestContext(c), tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, store)
}

// GetByCode handles GET /stores/code/:code
func (h *StoreHandler) GetByCode(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	store, err := h.stores.GetStoreByCode(requestContext(c), tenantID, c.Param("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, store)
}

// List handles GET /stores
func (h *StoreHandler) List(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	page, err := h.stores.GetAllStores(requestContext(c), tenantID, pageableFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Count handles GET /stores/count
func (h *StoreHandler) Count(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	count, err := h.stores.CountStores(requestContext(c), tenantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// Update handles PUT /stores/:id
func (h *StoreHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req service.UpdateStoreRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	store, err := h.stores.UpdateStore(requestContext(c), tenantID, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, store)
}

// Delete handles DELETE /stores/:id
func (h *StoreHandler) Delete(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.stores.DeleteStore(requestContext(c), tenantID, id); err != nil {
		return respondError(c, err)
	}
	prometheus.RecordEntityDeleted("store")
	return c.NoContent(http.StatusNoContent)
}

// Activate handles POST /stores/:id/activate
func (h *StoreHandler) Activate(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	store, err := h.stores.ActivateStore(requestContext(c), tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, store)
}

// Deactivate handles POST /stores/:id/deactivate
func (h *StoreHandler) Deactivate(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	store, err := h.stores.DeactivateStore(requestContext(c), tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, store)
}
