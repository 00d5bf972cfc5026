package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthHandler reports service and database health
type HealthHandler struct {
	db          *gorm.DB
	serviceName string
}

// NewHealthHandler creates a health handler
func NewHealthHandler(db *gorm.DB, serviceName string) *HealthHandler {
	return &HealthHandler{db: db, serviceName: serviceName}
}

// Health returns 200 when the service and its database are reachable
func (h *HealthHandler) Health(c echo.Context) error {
	status := "ok"
	dbStatus := "ok"

	sqlDB, err := h.db.DB()
	if err != nil {
		dbStatus = "error"
		status = "degraded"
	} else if err := sqlDB.PingContext(c.Request().Context()); err != nil {
		dbStatus = "error"
		status = "degraded"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, echo.Map{
		"status":   status,
		"service":  h.serviceName,
		"database": dbStatus,
	})
}
