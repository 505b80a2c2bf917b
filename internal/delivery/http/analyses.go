package http

import (
	"net/http"
	"strconv"

	"stock-scoring/internal/dto"

	"github.com/labstack/echo/v4"
)

const maxRecentLimit = 100

func (h *HttpAPIHandler) SetupAnalyses(base *echo.Group) {
	v1 := base.Group("/v1/analyses")
	{
		v1.GET("/recent", h.RecentAnalyses)
	}
}

func (h *HttpAPIHandler) RecentAnalyses(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRecentLimit {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("limit must be between 1 and 100"))
		}
		limit = n
	}

	symbol := c.QueryParam("symbol")
	if symbol != "" && !IsValidSymbol(symbol) {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid symbol"))
	}

	recent, err := h.service.AnalyzerService.GetRecent(c.Request().Context(), symbol, limit)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", recent))
}
