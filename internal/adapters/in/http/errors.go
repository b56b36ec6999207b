package http

import (
	"errors"
	"net/http"

	"rentalorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorResponse maps core error conditions to transport status codes:
// unknown ids to 404, invalid state / lost races / bad values to 400,
// anything else to 500. Conflicts deliberately read as invalid-state to the
// caller: retrying a confirm after someone else moved the order would just
// re-fail deterministically.
func errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, MessageResponse{Message: err.Error()})
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrConcurrencyConflict),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired):
		return c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, MessageResponse{Message: "internal error"})
	}
}
