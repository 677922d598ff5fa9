package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mesapos/restaurant-pos/internal/core/domain"
	"github.com/mesapos/restaurant-pos/internal/core/ports"
)

// reportWindowDays is the default span of expense and sales queries.
const reportWindowDays = 30

// AdminHandler serves the back-office screens: settings, expenses and reports.
type AdminHandler struct {
	settings ports.SettingsService
	expenses ports.ExpenseService
	reports  ports.ReportService
	now      func() time.Time
}

func NewAdminHandler(settings ports.SettingsService, expenses ports.ExpenseService, reports ports.ReportService) *AdminHandler {
	return &AdminHandler{
		settings: settings,
		expenses: expenses,
		reports:  reports,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type settingsRequest struct {
	RestaurantName string  `json:"restaurant_name" validate:"required,max=120"`
	Currency       string  `json:"currency" validate:"required,len=3"`
	TaxRate        float64 `json:"tax_rate" validate:"gte=0,lte=1"`
}

type expenseRequest struct {
	Description string    `json:"description" validate:"required,max=200"`
	Amount      float64   `json:"amount" validate:"gt=0"`
	Category    string    `json:"category" validate:"max=60"`
	SpentAt     time.Time `json:"spent_at"`
}

// GetSettings godoc
//
// @Summary      Restaurant settings
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Settings
// @Router       /api/settings [get]
func (h *AdminHandler) GetSettings(c echo.Context) error {
	s, err := h.settings.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// UpdateSettings godoc
//
// @Summary      Update restaurant settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      settingsRequest  true  "Settings"
// @Success      200   {object}  domain.Settings
// @Failure      400   {object}  errorResponse
// @Router       /api/settings [put]
func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	var req settingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.settings.Update(c.Request().Context(), domain.Settings{
		RestaurantName: req.RestaurantName,
		Currency:       req.Currency,
		TaxRate:        req.TaxRate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// ListExpenses godoc
//
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        from  query     string  false  "Start date (YYYY-MM-DD), default 30 days before to"
// @Param        to    query     string  false  "End date (YYYY-MM-DD, inclusive), default now"
// @Success      200   {array}   domain.Expense
// @Failure      400   {object}  errorResponse
// @Router       /api/expenses [get]
func (h *AdminHandler) ListExpenses(c echo.Context) error {
	from, to, err := dateRange(c, h.now(), reportWindowDays)
	if err != nil {
		return err
	}
	items, err := h.expenses.List(c.Request().Context(), from, to)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.Expense{}
	}
	return c.JSON(http.StatusOK, items)
}

// CreateExpense godoc
//
// @Summary      Record an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      expenseRequest  true  "Expense"
// @Success      201   {object}  domain.Expense
// @Failure      400   {object}  errorResponse
// @Router       /api/expenses [post]
func (h *AdminHandler) CreateExpense(c echo.Context) error {
	who, err := currentCaller(c)
	if err != nil {
		return err
	}
	var req expenseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	e, err := h.expenses.Create(c.Request().Context(), ports.ExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		SpentAt:     req.SpentAt,
		CreatedBy:   who.Username,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

// DeleteExpense godoc
//
// @Summary      Delete an expense
// @Tags         expenses
// @Security     BearerAuth
// @Param        id  path  string  true  "Expense ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/expenses/{id} [delete]
func (h *AdminHandler) DeleteExpense(c echo.Context) error {
	if err := h.expenses.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SalesReport summarises completed orders and expenses over a date range.
//
// @Summary      Sales report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from  query     string  false  "Start date (YYYY-MM-DD), default 30 days before to"
// @Param        to    query     string  false  "End date (YYYY-MM-DD, inclusive), default now"
// @Success      200   {object}  domain.SalesReport
// @Failure      400   {object}  errorResponse
// @Router       /api/reports/sales [get]
func (h *AdminHandler) SalesReport(c echo.Context) error {
	from, to, err := dateRange(c, h.now(), reportWindowDays)
	if err != nil {
		return err
	}
	report, err := h.reports.Sales(c.Request().Context(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
