package http

import (
	"net/http"

	"stock-scoring/internal/dto"
	"stock-scoring/pkg/utils"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupHealth() {
	h.echo.GET("/health", h.Health)
}

func (h *HttpAPIHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Timestamp: utils.TimeNowMarket()})
}
