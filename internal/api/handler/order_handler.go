package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mesapos/restaurant-pos/internal/api/metrics"
	"github.com/mesapos/restaurant-pos/internal/core/domain"
	"github.com/mesapos/restaurant-pos/internal/core/ports"
)

// HeaderIdempotencyKey lets a QR menu retry an order submission safely.
const HeaderIdempotencyKey = "Idempotency-Key"

type OrderHandler struct {
	orderService ports.OrderService
}

func NewOrderHandler(orderService ports.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type orderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type createOrderRequest struct {
	TableNumber  int                `json:"table_number" validate:"gt=0"`
	CustomerName string             `json:"customer_name" validate:"max=80"`
	Items        []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes        string             `json:"notes" validate:"max=500"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create places an order from a table's QR menu.
//
// @Summary      Create an order
// @Description  Public endpoint used by the QR menu. Send an Idempotency-Key header
// @Description  to make retries safe: a repeated key returns the original order with 200.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string              false  "Client-generated key for safe retries"
// @Param        body             body      createOrderRequest  true   "Order"
// @Success      201              {object}  domain.Order
// @Success      200              {object}  domain.Order        "Replayed submission"
// @Failure      400              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	items := make([]ports.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	res, err := h.orderService.Create(c.Request().Context(), ports.CreateOrderInput{
		TableNumber:    req.TableNumber,
		CustomerName:   req.CustomerName,
		Items:          items,
		Notes:          req.Notes,
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return err
	}

	if res.Replayed {
		metrics.OrdersCreatedTotal.WithLabelValues("replayed").Inc()
		return c.JSON(http.StatusOK, res.Order)
	}
	metrics.OrdersCreatedTotal.WithLabelValues("created").Inc()
	metrics.OrderValue.Observe(res.Order.Total)
	return c.JSON(http.StatusCreated, res.Order)
}

// List returns orders, newest first.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        active  query     bool    false  "Exclude completed orders"
// @Param        status  query     string  false  "Exact status"  Enums(pending, preparing, ready, completed)
// @Param        table   query     int     false  "Table number"
// @Success      200     {array}   domain.Order
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	var filter ports.ListOrdersFilter

	if raw := c.QueryParam("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "active must be a boolean")
		}
		filter.ActiveOnly = active
	}
	if raw := c.QueryParam("status"); raw != "" {
		status, err := domain.ParseOrderStatus(raw)
		if err != nil {
			return err
		}
		filter.Status = status
	}
	if raw := c.QueryParam("table"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "table must be a positive number")
		}
		filter.TableNumber = n
	}

	orders, err := h.orderService.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

// Get returns one order.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  errorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.orderService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateStatus moves an order along pending → preparing → ready → completed.
//
// @Summary      Update order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Order ID"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		return err
	}

	order, err := h.orderService.UpdateStatus(c.Request().Context(), c.Param("id"), status)
	if err != nil {
		return err
	}

	metrics.OrderStatusTransitionsTotal.WithLabelValues(string(order.Status)).Inc()
	return c.JSON(http.StatusOK, order)
}

// Delete removes an order.
//
// @Summary      Delete an order
// @Tags         orders
// @Security     BearerAuth
// @Param        id  path  string  true  "Order ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.orderService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
