package middleware

import (
	"time"

	"stock-scoring/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const HeaderRequestID = "X-Request-ID"

// NewRequestLogger tags every request with a request id, stores a child logger carrying it in the
// request context and logs the outcome once the handler returns.
func NewRequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			requestID := req.Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(HeaderRequestID, requestID)

			reqLog := log.With(logger.StringField("request_id", requestID))
			c.SetRequest(req.WithContext(logger.NewContext(req.Context(), reqLog)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			reqLog.Info("HTTP request",
				logger.StringField("method", req.Method),
				logger.StringField("path", c.Path()),
				logger.IntField("status", c.Response().Status),
				logger.DurationField("latency", time.Since(start)),
			)
			return nil
		}
	}
}
