package http

import (
	"errors"
	"net/http"

	"stock-scoring/internal/dto"
	"stock-scoring/internal/extractor"
	"stock-scoring/internal/service"
	"stock-scoring/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
	log       *logger.Logger
}

func NewHttpAPIHandler(echo *echo.Echo, validator *goValidator.Validate, service *service.Service, log *logger.Logger) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		validator: validator,
		service:   service,
		log:       log,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.SetupHealth()

	base := h.echo.Group("/api")
	h.SetupAnalyze(base)
	h.SetupWatchlist(base)
	h.SetupAnalyses(base)
	h.SetupJobs(base)
}

// errorResponse maps service errors onto response codes.
func (h *HttpAPIHandler) errorResponse(c echo.Context, err error) error {
	var response *dto.BaseResponse
	switch {
	case errors.Is(err, extractor.ErrQuoteUnavailable):
		response = dto.NewNotFoundResponse(err.Error())
	case errors.Is(err, service.ErrWatchlistItemNotFound), errors.Is(err, service.ErrJobNotFound):
		response = dto.NewNotFoundResponse(err.Error())
	case errors.Is(err, service.ErrWatchlistItemExists):
		response = dto.NewBaseResponse(http.StatusConflict, err.Error(), nil)
	default:
		h.log.ErrorContext(c.Request().Context(), "Request failed", logger.ErrorField(err), logger.StringField("path", c.Path()))
		response = dto.NewBaseResponse(http.StatusInternalServerError, "internal server error", nil)
	}
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.New("invalid request body")
	}
	return h.validator.Struct(req)
}
