package context

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newEchoContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	return e.NewContext(req, httptest.NewRecorder())
}

func TestRequestID_RoundTripOnEchoContext(t *testing.T) {
	c := newEchoContext()

	SetRequestID(c, "req-123")
	assert.Equal(t, "req-123", RequestID(c))
}

func TestRequestID_MintsWhenUnset(t *testing.T) {
	c := newEchoContext()

	id := RequestID(c)
	assert.NotEmpty(t, id)
}

func TestRequestIDFrom_RoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-456")
	assert.Equal(t, "req-456", RequestIDFrom(ctx))
}

func TestRequestIDFrom_EmptyWhenAbsent(t *testing.T) {
	assert.Empty(t, RequestIDFrom(context.Background()))
}

func TestGetLoggerOrDefault(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	scoped := fallback.With(slog.String("request_id", "req-789"))

	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))

	ctx := WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, GetLoggerOrDefault(ctx, fallback))
}
