package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/zarascrunch/storefront/internal/apperr"
	"github.com/zarascrunch/storefront/internal/cart"
	"github.com/zarascrunch/storefront/internal/events"
	"github.com/zarascrunch/storefront/internal/logging"
	"github.com/zarascrunch/storefront/internal/models"
)

type CheckoutHandler struct {
	DB       *gorm.DB
	Store    cart.Store
	Producer *events.Producer
}

// CheckoutInput is the typed checkout payload. Items carry the prices the
// shopper saw; those snapshots, not live product rows, end up on the order.
type CheckoutInput struct {
	CustomerName string      `json:"customer_name"`
	Phone        string      `json:"phone"`
	DeliveryType string      `json:"delivery_type"`
	Address      string      `json:"address"`
	Total        int         `json:"total"`
	Items        []cart.Item `json:"items"`
}

// Validate applies the checkout policy fail-fast: the first violation wins.
func (in *CheckoutInput) Validate() error {
	if in.CustomerName == "" || in.Phone == "" || len(in.Items) == 0 {
		return apperr.Validation("missing required fields")
	}
	if in.DeliveryType != models.DeliveryTypeDelivery && in.DeliveryType != models.DeliveryTypePickup {
		return apperr.Validation("delivery type must be Delivery or Pickup")
	}
	if in.DeliveryType == models.DeliveryTypeDelivery && in.Address == "" {
		return apperr.Validation("address is required for delivery")
	}
	return nil
}

// Checkout turns the cart plus customer fields into a persisted order with
// its line items. Both inserts run in one transaction, so a failed item
// insert leaves no orphaned order behind.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	var input CheckoutInput
	if err := c.Bind(&input); err != nil {
		return apperr.Validation("invalid payload")
	}
	if err := input.Validate(); err != nil {
		return err
	}

	var order models.Order
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			CustomerName: input.CustomerName,
			Phone:        input.Phone,
			DeliveryType: input.DeliveryType,
			Address:      input.Address,
			TotalPrice:   input.Total,
			Status:       models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, it := range input.Items {
			oi := models.OrderItem{
				OrderID:     order.ID,
				ProductID:   it.ProductID,
				ProductName: it.Name,
				Quantity:    it.Quantity,
				Price:       it.Price,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return apperr.Backend(txErr)
	}

	// The submitted order supersedes the session cart.
	if token, err := c.Cookie(cartCookieName); err == nil && token.Value != "" {
		if err := h.Store.Delete(c.Request().Context(), token.Value); err != nil {
			logging.FromContext(c.Request().Context()).Warn("cart clear after checkout failed", "error", err)
		}
	}

	publish(c, h.Producer, events.TopicOrderEvents, itoa(order.ID), map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"total":   order.TotalPrice,
		"items":   len(input.Items),
	})

	location := fmt.Sprintf("/success/%d", order.ID)
	c.Response().Header().Set(echo.HeaderLocation, location)
	return c.JSON(http.StatusSeeOther, echo.Map{"order_id": order.ID, "redirect": location})
}

// GetOrder backs the confirmation view: it re-reads the persisted order
// and its items by id.
func (h *CheckoutHandler) GetOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("order not found")
		}
		return apperr.Backend(err)
	}

	var items []models.OrderItem
	if err := h.DB.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return apperr.Backend(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"order": order, "items": items})
}
