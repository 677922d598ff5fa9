package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mesapos/restaurant-pos/internal/api/middleware"
)

// caller is the identity the Auth middleware placed on the request.
type caller struct {
	UserID   string
	Username string
	Role     string
}

// currentCaller reads the claims injected by middleware.Auth. A missing
// subject means the route was mounted without the middleware, which is a
// wiring bug; it is still reported as 401 rather than trusted.
func currentCaller(c echo.Context) (caller, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	if id == "" || role == "" {
		return caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	username, _ := c.Get(middleware.CtxUsername).(string)
	return caller{UserID: id, Username: username, Role: role}, nil
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func intParam(c echo.Context, name string) (int, error) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
	}
	return n, nil
}

const dateLayout = "2006-01-02"

// dateRange parses the from/to query parameters. Both accept a calendar
// date or an RFC 3339 timestamp; a bare "to" date includes that whole day.
// When from is absent the range starts defaultDays before to.
func dateRange(c echo.Context, now time.Time, defaultDays int) (time.Time, time.Time, error) {
	to := now
	if raw := c.QueryParam("to"); raw != "" {
		t, dateOnly, err := parseTime(raw)
		if err != nil {
			return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "to must be YYYY-MM-DD or RFC 3339")
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1)
		}
		to = t
	}

	from := to.AddDate(0, 0, -defaultDays)
	if raw := c.QueryParam("from"); raw != "" {
		t, _, err := parseTime(raw)
		if err != nil {
			return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "from must be YYYY-MM-DD or RFC 3339")
		}
		from = t
	}
	return from, to, nil
}

func parseTime(raw string) (time.Time, bool, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t.UTC(), true, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	return t.UTC(), false, err
}
