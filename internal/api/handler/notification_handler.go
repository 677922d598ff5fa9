package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mesapos/restaurant-pos/internal/api/metrics"
	"github.com/mesapos/restaurant-pos/internal/core/domain"
	"github.com/mesapos/restaurant-pos/internal/core/ports"
)

type NotificationHandler struct {
	notificationService ports.NotificationService
}

func NewNotificationHandler(notificationService ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// Poll returns the notifications published since the caller last polled.
// The first poll of a user only positions its cursor and returns an empty list.
//
// @Summary      Poll notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Notification
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/notifications/poll [get]
func (h *NotificationHandler) Poll(c echo.Context) error {
	who, err := currentCaller(c)
	if err != nil {
		return err
	}

	items, err := h.notificationService.Poll(c.Request().Context(), who.UserID)
	if err != nil {
		return err
	}

	result := "delivered"
	if len(items) == 0 {
		result = "empty"
		items = []domain.Notification{}
	}
	metrics.NotificationPollsTotal.WithLabelValues(result).Inc()

	return c.JSON(http.StatusOK, items)
}
