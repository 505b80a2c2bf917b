package http

import (
	"net/http"

	"stock-scoring/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupAnalyze(base *echo.Group) {
	v1 := base.Group("/v1/analyze")
	{
		v1.POST("", h.Analyze)
		v1.GET("/:symbol", h.AnalyzeSymbol)
	}
}

func (h *HttpAPIHandler) Analyze(c echo.Context) error {
	req := new(dto.AnalyzeRequest)
	if err := h.bindAndValidate(c, req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	return h.analyze(c, req.Symbol, req.AnalysisMode)
}

func (h *HttpAPIHandler) AnalyzeSymbol(c echo.Context) error {
	symbol := c.Param("symbol")
	if !IsValidSymbol(symbol) {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid symbol"))
	}
	return h.analyze(c, symbol, c.QueryParam("mode"))
}

func (h *HttpAPIHandler) analyze(c echo.Context, symbol, rawMode string) error {
	mode, ok := dto.ParseAnalysisMode(rawMode)
	if !ok {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("analysis_mode must be standard or comprehensive"))
	}

	result, err := h.service.AnalyzerService.Analyze(c.Request().Context(), symbol, mode)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("analysis completed", result))
}
