package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stock-scoring/config"
	"stock-scoring/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger_SetsRequestID(t *testing.T) {
	e := echo.New()
	e.Use(NewRequestLogger(logger.NewNop()))
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	tests := []struct {
		name   string
		header string
	}{
		{name: "generated when absent"},
		{name: "propagated when present", header: "req-123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set(HeaderRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			got := rec.Header().Get(HeaderRequestID)
			assert.NotEmpty(t, got)
			if tt.header != "" {
				assert.Equal(t, tt.header, got)
			}
		})
	}
}

func TestRateLimiter_Denies(t *testing.T) {
	e := echo.New()
	e.Use(NewRateLimiterMiddleware(config.RateLimit{RequestPerSecond: 1, Burst: 1, ExpiresIn: time.Minute}))
	e.GET("/api/v1/analyze/:symbol", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	codes := []int{}
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analyze/AAPL", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, http.StatusOK, codes[0])
	assert.Contains(t, codes, http.StatusTooManyRequests)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
