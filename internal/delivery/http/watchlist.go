package http

import (
	"net/http"

	"stock-scoring/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupWatchlist(base *echo.Group) {
	v1 := base.Group("/v1/watchlist")
	{
		v1.GET("", h.ListWatchlist)
		v1.POST("", h.AddWatchlist)
		v1.DELETE("/:symbol", h.RemoveWatchlist)
	}
}

func (h *HttpAPIHandler) ListWatchlist(c echo.Context) error {
	items, err := h.service.WatchlistService.List(c.Request().Context())
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", items))
}

func (h *HttpAPIHandler) AddWatchlist(c echo.Context) error {
	req := new(dto.AddWatchlistRequest)
	if err := h.bindAndValidate(c, req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	item, err := h.service.WatchlistService.Add(c.Request().Context(), *req)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "added to watchlist", item))
}

func (h *HttpAPIHandler) RemoveWatchlist(c echo.Context) error {
	symbol := c.Param("symbol")
	if !IsValidSymbol(symbol) {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid symbol"))
	}
	if err := h.service.WatchlistService.Remove(c.Request().Context(), symbol); err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("removed from watchlist", nil))
}
