package middleware

import (
	"net/http"

	"stock-scoring/config"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Response represents the error response structure
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// NewRateLimiterMiddleware limits requests per client IP. The health endpoint is never limited.
func NewRateLimiterMiddleware(cfg config.RateLimit) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health"
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(cfg.RequestPerSecond),
				Burst:     cfg.Burst,
				ExpiresIn: cfg.ExpiresIn,
			},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, Response{
				Status:  http.StatusForbidden,
				Message: "Access forbidden: Rate limiter error occurred",
			})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, Response{
				Status:  http.StatusTooManyRequests,
				Message: "Too many requests: Rate limit exceeded. Please try again later",
			})
		},
	})
}
