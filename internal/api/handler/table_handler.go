package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mesapos/restaurant-pos/internal/core/domain"
	"github.com/mesapos/restaurant-pos/internal/core/ports"
)

const maxQRSize = 1024

type TableHandler struct {
	tableService ports.TableService
}

func NewTableHandler(tableService ports.TableService) *TableHandler {
	return &TableHandler{tableService: tableService}
}

type createTableRequest struct {
	Number   int `json:"number" validate:"gt=0"`
	Capacity int `json:"capacity" validate:"gte=0,lte=100"`
}

// List godoc
//
// @Summary      List tables
// @Tags         tables
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Table
// @Router       /api/tables [get]
func (h *TableHandler) List(c echo.Context) error {
	tables, err := h.tableService.List(c.Request().Context())
	if err != nil {
		return err
	}
	if tables == nil {
		tables = []*domain.Table{}
	}
	return c.JSON(http.StatusOK, tables)
}

// Create registers a table and assigns its QR menu URL.
//
// @Summary      Create a table
// @Tags         tables
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTableRequest  true  "Table"
// @Success      201   {object}  domain.Table
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/tables [post]
func (h *TableHandler) Create(c echo.Context) error {
	var req createTableRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	t, err := h.tableService.Create(c.Request().Context(), req.Number, req.Capacity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

// Delete godoc
//
// @Summary      Delete a table
// @Tags         tables
// @Security     BearerAuth
// @Param        id  path  string  true  "Table ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/tables/{id} [delete]
func (h *TableHandler) Delete(c echo.Context) error {
	if err := h.tableService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RegenerateQR recomputes the table's canonical menu URL. Calling it twice
// yields the same URL.
//
// @Summary      Regenerate a table QR code
// @Tags         tables
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Table ID"
// @Success      200  {object}  domain.Table
// @Failure      404  {object}  errorResponse
// @Router       /api/tables/{id}/qr [post]
func (h *TableHandler) RegenerateQR(c echo.Context) error {
	t, err := h.tableService.RegenerateQR(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// QRImage renders the table's menu URL as a PNG.
//
// @Summary      Table QR code image
// @Tags         tables
// @Produce      png
// @Security     BearerAuth
// @Param        id    path   string  true   "Table ID"
// @Param        size  query  int     false  "Edge length in pixels (64-1024)"
// @Success      200
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/tables/{id}/qr.png [get]
func (h *TableHandler) QRImage(c echo.Context) error {
	size := 0 // generator default
	if raw := c.QueryParam("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 64 || n > maxQRSize {
			return echo.NewHTTPError(http.StatusBadRequest, "size must be between 64 and 1024")
		}
		size = n
	}

	png, err := h.tableService.QRImage(c.Request().Context(), c.Param("id"), size)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// Menu is what a guest sees after scanning the table's QR code.
//
// @Summary      Table menu
// @Description  Public. Returns the table, the categories, the available products
// @Description  and the table's active orders.
// @Tags         menu
// @Produce      json
// @Param        tableNumber  path      int  true  "Table number"
// @Success      200          {object}  domain.Menu
// @Failure      400          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Router       /api/menu/{tableNumber} [get]
func (h *TableHandler) Menu(c echo.Context) error {
	n, err := intParam(c, "tableNumber")
	if err != nil {
		return err
	}
	menu, err := h.tableService.Menu(c.Request().Context(), n)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, menu)
}
