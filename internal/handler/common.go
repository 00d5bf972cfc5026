package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rjnat/cursorpos-admin/internal/middleware"
	"github.com/rjnat/cursorpos-admin/internal/repository"
	"github.com/rjnat/cursorpos-admin/pkg/apperr"
	"github.com/rjnat/cursorpos-admin/pkg/logger"
	"go.uber.org/zap"
)

// respondError maps a service error to an HTTP response
func respondError(c echo.Context, err error) error {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.FromEcho(c).Error("Request failed", zap.Error(err))
		return c.JSON(status, echo.Map{"error": "internal server error"})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

// tenantFrom extracts the tenant ID set by the auth middleware
func tenantFrom(c echo.Context) (string, error) {
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		return "", echo.NewHTTPError(http.StatusBadRequest, "tenant_id is required in the token")
	}
	return tenantID, nil
}

// uuidParam parses a path parameter as a UUID
func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// pageableFrom builds pagination settings from query parameters
func pageableFrom(c echo.Context) repository.Pageable {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	return repository.Pageable{
		Page: page,
		Size: size,
		Sort: c.QueryParam("sort"),
	}
}

// requestContext returns the request context with the request-scoped
// logger attached, so services log with the request ID.
func requestContext(c echo.Context) context.Context {
	return logger.WithContext(c.Request().Context(), logger.FromEcho(c))
}
