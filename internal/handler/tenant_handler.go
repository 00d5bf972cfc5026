package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rjnat/cursorpos-admin/internal/service"
	"github.com/rjnat/cursorpos-admin/pkg/logger"
	"github.com/rjnat/cursorpos-admin/prometheus"
	"go.uber.org/zap"
)

// TenantHandler exposes the platform-level tenant endpoints
type TenantHandler struct {
	tenants *service.TenantService
}

// NewTenantHandler creates a tenant handler
func NewTenantHandler(tenants *service.TenantService) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// Create handles POST /tenants
func (h *TenantHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	var req service.CreateTenantRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	tenant, err := h.tenants.CreateTenant(requestContext(c), req)
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordEntityCreated("tenant")
	return c.JSON(http.StatusCreated, tenant)
}

// Get handles GET /tenants/:id
func (h *TenantHandler) Get(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	tenant, err := h.tenants.GetTenantByID(requestContext(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// GetByCode handles GET /tenants/code/:code
func (h *TenantHandler) GetByCode(c echo.Context) error {
	tenant, err := h.tenants.GetTenantByCode(requestContext(c), c.Param("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// List handles GET /tenants
func (h *TenantHandler) List(c echo.Context) error {
	page, err := h.tenants.GetAllTenants(requestContext(c), pageableFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Update handles PUT /tenants/:id
func (h *TenantHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req service.UpdateTenantRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	tenant, err := h.tenants.UpdateTenant(requestContext(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// Delete handles DELETE /tenants/:id
func (h *TenantHandler) Delete(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.tenants.DeleteTenant(requestContext(c), id); err != nil {
		return respondError(c, err)
	}
	prometheus.RecordEntityDeleted("tenant")
	return c.NoContent(http.StatusNoContent)
}

// Activate handles POST /tenants/:id/activate
func (h *TenantHandler) Activate(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	tenant, err := h.tenants.ActivateTenant(requestContext(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// Deactivate handles POST /tenants/:id/deactivate
func (h *TenantHandler) Deactivate(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	tenant, err := h.tenants.DeactivateTenant(requestContext(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}
