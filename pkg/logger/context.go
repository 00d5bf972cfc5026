package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ctxKey struct{}

// echoLoggerKey is where the request-id and logging middlewares store
// the request-scoped logger on the Echo context.
const echoLoggerKey = "logger"

// WithContext binds a logger to ctx so downstream services log with
// the request's fields.
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger bound to ctx, or the global logger
// when none is bound.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return GetLogger()
}

// FromEcho returns the request-scoped logger, enriched with the tenant
// claim once the auth middleware has run.
func FromEcho(c echo.Context) *zap.Logger {
	l, ok := c.Get(echoLoggerKey).(*zap.Logger)
	if !ok {
		l = GetLogger()
	}
	if tenantID, ok := c.Get("tenant_id").(string); ok && tenantID != "" {
		l = l.With(zap.String("tenant_id", tenantID))
	}
	return l
}
