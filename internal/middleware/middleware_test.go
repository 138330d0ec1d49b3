package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"form-intake/internal/transport/httpdto"
	"form-intake/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return &logger.Logger{Logger: zap.New(core)}, logs
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDIsGeneratedAndPropagated(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	var seen any
	r.GET("/", func(c *gin.Context) {
		seen = c.Request.Context().Value(logger.RequestIdKey)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 32)
	assert.Equal(t, id, seen)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}

func TestLoggingMiddlewareRecordsStatus(t *testing.T) {
	l, logs := observedLogger()
	r := gin.New()
	r.Use(LoggingMiddleware(l))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/health", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}

func TestErrorHandlerKeepsWrittenBody(t *testing.T) {
	l, logs := observedLogger()
	r := gin.New()
	r.Use(ErrorHandler(l))
	r.GET("/written", func(c *gin.Context) {
		_ = c.Error(errors.New("db down"))
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Internal server error: db down"))
	})
	r.GET("/bare", func(c *gin.Context) {
		_ = c.Error(errors.New("queue down"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/written", nil))
	assert.JSONEq(t, `{"detail":"Internal server error: db down"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bare", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Internal server error: queue down"}`, w.Body.String())

	assert.Equal(t, 2, logs.FilterMessage("request error").Len())
}

func TestRecoveryWritesErrorBody(t *testing.T) {
	l, logs := observedLogger()
	r := gin.New()
	r.Use(Recovery(l))
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body httpdto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body.Detail)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestMiddlewareFallsBackToGlobalLogger(t *testing.T) {
	l, logs := observedLogger()
	previous := logger.GetGlobalLogger()
	logger.SetGlobalLogger(l)
	t.Cleanup(func() { logger.SetGlobalLogger(previous) })

	r := gin.New()
	r.Use(LoggingMiddleware(nil), ErrorHandler(nil))
	r.GET("/bare", func(c *gin.Context) { _ = c.Error(errors.New("queue down")) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bare", nil))

	assert.Equal(t, 1, logs.FilterMessage("request").Len())
	assert.Equal(t, 1, logs.FilterMessage("request error").Len())
}
