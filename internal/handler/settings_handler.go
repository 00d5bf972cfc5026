package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rjnat/cursorpos-admin/internal/service"
	"github.com/rjnat/cursorpos-admin/pkg/logger"
	"github.com/rjnat/cursorpos-admin/prometheus"
	"go.uber.org/zap"
)

// SettingsHandler exposes the tenant-scoped settings endpoints
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler creates a settings handler
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Create handles POST /settings
func (h *SettingsHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}

	var req service.SettingsRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	setting, err := h.settings.CreateSetting(requestContext(c), tenantID, req)
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordEntityCreated("setting")
	return c.JSON(http.StatusCreated, setting)
}

// Get handles GET /settings/:id
func (h *SettingsHandler) Get(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	setting, err := h.settings.GetSettingByID(requestContext(c), tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, setting)
}

// GetByKey handles GET /settings/key/:key
func (h *SettingsHandler) GetByKey(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	setting, err := h.settings.GetSettingByKey(requestContext(c), tenantID, c.Param("key"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, setting)
}

// ListByCategory handles GET /settings/category/:category
func (h *SettingsHandler) ListByCategory(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	settings, err := h.settings.GetSettingsByCategory(requestContext(c), tenantID, c.Param("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// List handles GET /settings
func (h *SettingsHandler) List(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	page, err := h.settings.GetAllSettings(requestContext(c), tenantID, pageableFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Upsert handles PUT /settings
func (h *SettingsHandler) Upsert(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}

	var req service.SettingsRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	setting, err := h.settings.UpsertSetting(requestContext(c), tenantID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, setting)
}

// Delete handles DELETE /settings/:id
func (h *SettingsHandler) Delete(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.settings.DeleteSetting(requestContext(c), tenantID, id); err != nil {
		return respondError(c, err)
	}
	prometheus.RecordEntityDeleted("setting")
	return c.NoContent(http.StatusNoContent)
}
