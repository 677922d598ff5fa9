package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mesapos/restaurant-pos/internal/core/domain"
)

func TestHTTPErrorHandler_MapsDomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, "owner"), http.StatusBadRequest, `invalid input: unknown role "owner"`},
		{domain.ErrSelfDelete, http.StatusBadRequest, "users cannot delete themselves"},
		{domain.ErrTableNotFound, http.StatusNotFound, "table not found"},
		{domain.ErrTableExists, http.StatusConflict, "table number already exists"},
		{fmt.Errorf("%w (from pending to ready)", domain.ErrInvalidTransition), http.StatusUnprocessableEntity, "invalid status transition (from pending to ready)"},
		{echo.NewHTTPError(http.StatusForbidden, "insufficient permissions"), http.StatusForbidden, "insufficient permissions"},
		{errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		h(tc.err, c)

		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if body["message"] != tc.msg {
			t.Fatalf("%v: message = %q, want %q", tc.err, body["message"], tc.msg)
		}
	}
}
