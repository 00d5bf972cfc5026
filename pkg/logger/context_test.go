package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newEchoContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestWithContextRoundTrip(t *testing.T) {
	l := zap.NewNop()
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestFromEchoEnrichesWithTenant(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	c := newEchoContext()
	c.Set("logger", zap.New(core))
	c.Set("tenant_id", "acme")

	FromEcho(c).Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "acme", logs.All()[0].ContextMap()["tenant_id"])
}

func TestMiddlewareReusesBoundLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	bound := zap.New(core).With(zap.String("request_id", "req-1"))

	c := newEchoContext()
	c.Set("logger", bound)

	h := Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-1", logs.All()[0].ContextMap()["request_id"])
}
