package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rjnat/cursorpos-admin/pkg/jwtutil"
	"github.com/rjnat/cursorpos-admin/pkg/logger"
	"go.uber.org/zap"
)

// AuthMiddleware validates the JWT token and stores the claims in the
// request context. Tenant scoping is enforced separately by
// RequireTenant so that platform-level routes can use this middleware
// alone.
func AuthMiddleware(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Error("Invalid JWT token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("user_role", claims.Role)
			if claims.TenantID != "" {
				c.Set("tenant_id", claims.TenantID)
			}

			return next(c)
		}
	}
}

// RequireTenant rejects requests whose token carries no tenant
func RequireTenant(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := GetTenantIDFromContext(c); !ok {
			logger.FromEcho(c).Warn("JWT token does not contain tenant_id")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id is required in the token"})
		}
		return next(c)
	}
}

// GetTenantIDFromContext retrieves the tenant ID from the context.
// Returns "", false if tenant ID is not found.
func GetTenantIDFromContext(c echo.Context) (string, bool) {
	tenantID, ok := c.Get("tenant_id").(string)
	if !ok || tenantID == "" {
		return "", false
	}
	return tenantID, true
}
