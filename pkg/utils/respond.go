package utils

import (
	"errors"
	"net/http"

	"foodtruck-ordering/internal/models"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the standard error body returned by all handlers.
type ErrorResponse struct {
	Message string `json:"message"`
}

// RespondWithJSON writes v as a JSON response with the given status code.
func RespondWithJSON(c echo.Context, code int, v interface{}) error {
	return c.JSON(code, v)
}

// RespondWithError writes a standard error body with the given status code.
func RespondWithError(c echo.Context, code int, message string) error {
	return c.JSON(code, ErrorResponse{Message: message})
}

// HandleServiceError maps service-layer errors onto HTTP responses. Every
// failure from the address pipeline surfaces as a user-facing message; none
// of them crash the surrounding flow.
func HandleServiceError(c echo.Context, err error) error {
	var outOfArea *models.OutOfServiceAreaError
	switch {
	case errors.As(err, &outOfArea):
		return RespondWithError(c, http.StatusUnprocessableEntity, outOfArea.Error())
	case errors.Is(err, models.ErrAddressNotFound):
		return RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrRouteNotFound):
		return RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, models.ErrServiceUnavailable):
		return RespondWithError(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, models.ErrAddressRequired), errors.Is(err, models.ErrEmptyCart):
		return RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		return RespondWithError(c, http.StatusNotFound, err.Error())
	default:
		c.Logger().Errorf("unhandled service error: %v", err)
		return RespondWithError(c, http.StatusInternalServerError, "An internal error occurred")
	}
}
