package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mesapos/restaurant-pos/internal/core/domain"
)

type errorResponse struct {
	Message string `json:"message"`
}

// statusRule maps a domain error, wrapped or not, to a response code. A fixed
// message replaces the error text when set.
type statusRule struct {
	target error
	code   int
	fixed  string
}

var statusRules = []statusRule{
	{domain.ErrInvalidInput, http.StatusBadRequest, ""},
	{domain.ErrEmptyOrder, http.StatusBadRequest, ""},
	{domain.ErrSelfDelete, http.StatusBadRequest, ""},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	{domain.ErrUserNotFound, http.StatusNotFound, ""},
	{domain.ErrOrderNotFound, http.StatusNotFound, ""},
	{domain.ErrCategoryNotFound, http.StatusNotFound, ""},
	{domain.ErrProductNotFound, http.StatusNotFound, ""},
	{domain.ErrTableNotFound, http.StatusNotFound, ""},
	{domain.ErrExpenseNotFound, http.StatusNotFound, ""},
	{domain.ErrUserExists, http.StatusConflict, ""},
	{domain.ErrTableExists, http.StatusConflict, ""},
	{domain.ErrRequestInFlight, http.StatusConflict, ""},
	{domain.ErrInvalidTransition, http.StatusUnprocessableEntity, ""},
	{domain.ErrProductUnavailable, http.StatusUnprocessableEntity, ""},
}

// NewHTTPErrorHandler renders every error as {"message": ...}. Anything it
// does not recognise is logged and answered with a bare 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err)
		if code == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("route", c.Path()).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message)
	}
	for _, r := range statusRules {
		if !errors.Is(err, r.target) {
			continue
		}
		if r.fixed != "" {
			return r.code, r.fixed
		}
		return r.code, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}
