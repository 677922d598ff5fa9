package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mesapos/restaurant-pos/pkg/permission"
)

func runPermission(t *testing.T, role string, required ...permission.Permission) (int, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set(CtxRole, role)
	}

	called := false
	handler := RequirePermission(required...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code, called
}

func TestRequirePermission_Allows(t *testing.T) {
	code, called := runPermission(t, permission.RoleCashier, permission.ProcessPayments)
	if !called || code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", code)
	}

	code, called = runPermission(t, permission.RoleEmployee, permission.ManageRoles, permission.ViewOrders)
	if !called || code != http.StatusOK {
		t.Fatalf("any listed permission should be enough, got %d", code)
	}
}

func TestRequirePermission_Forbids(t *testing.T) {
	cases := []struct {
		role string
		perm permission.Permission
	}{
		{permission.RoleEmployee, permission.DeleteOrders},
		{permission.RoleManager, permission.CreateUsers},
		{permission.RoleCashier, permission.UpdateOrderStatus},
		{"guest", permission.ViewOrders},
		{"", permission.ViewOrders},
	}
	for _, tc := range cases {
		code, called := runPermission(t, tc.role, tc.perm)
		if called || code != http.StatusForbidden {
			t.Fatalf("%q/%s: expected 403, got %d", tc.role, tc.perm, code)
		}
	}
}
