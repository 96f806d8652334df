package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/zarascrunch/storefront/internal/apperr"
	"github.com/zarascrunch/storefront/internal/events"
	"github.com/zarascrunch/storefront/internal/models"
)

type AdminOrderHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

func (h *AdminOrderHandler) ListOrders(c echo.Context) error {
	var orders []models.Order
	if err := h.DB.Order("created_at DESC").Find(&orders).Error; err != nil {
		return apperr.Backend(err)
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateStatus reassigns an order status. Any of the four statuses may be
// set from any other, mirroring the admin dropdown.
func (h *AdminOrderHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid payload")
	}
	if !models.ValidOrderStatus(req.Status) {
		return apperr.Validation("unknown status")
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("order not found")
		}
		return apperr.Backend(err)
	}

	order.Status = req.Status
	if err := h.DB.Save(&order).Error; err != nil {
		return apperr.Backend(err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, itoa(order.ID), map[string]any{
		"type":    "order_status_changed",
		"orderID": order.ID,
		"status":  order.Status,
	})

	return c.JSON(http.StatusOK, order)
}
