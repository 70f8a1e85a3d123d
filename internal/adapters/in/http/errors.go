package http

import (
	"errors"
	"net/http"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrAlreadyAssigned),
		errors.Is(err, errs.ErrAlreadyExists),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errs.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps domain errors to status codes. Internal errors are logged
// and replaced by a generic message.
func writeError(c echo.Context, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
		message = "Internal server error"
	}

	return c.JSON(status, ErrorResponse{Code: status, Message: message})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: message})
}
