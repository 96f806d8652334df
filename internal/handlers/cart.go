package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/zarascrunch/storefront/internal/apperr"
	"github.com/zarascrunch/storefront/internal/cart"
	"github.com/zarascrunch/storefront/internal/models"
)

const cartCookieName = "cart_token"

type CartHandler struct {
	DB    *gorm.DB
	Store cart.Store
}

// sessionToken reads the shopper's cart cookie, issuing a fresh token on
// first contact.
func sessionToken(c echo.Context) string {
	if ck, err := c.Cookie(cartCookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	token := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     cartCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

type cartView struct {
	Items     []cart.Item `json:"items"`
	Total     int         `json:"total"`
	ItemCount int         `json:"item_count"`
}

func view(cc cart.Cart) cartView {
	items := cc.Items
	if items == nil {
		items = []cart.Item{}
	}
	return cartView{Items: items, Total: cc.Total(), ItemCount: cc.Count()}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	cc, err := h.Store.Load(c.Request().Context(), sessionToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view(cc))
}

// AddToCart adds one unit of a product: a repeated add increments the
// existing line instead of duplicating it.
func (h *CartHandler) AddToCart(c echo.Context) error {
	var req struct {
		ProductID uint `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid payload")
	}
	if req.ProductID == 0 {
		return apperr.Validation("product_id is required")
	}

	product, err := h.lookupProduct(req.ProductID)
	if err != nil {
		return err
	}

	token := sessionToken(c)
	ctx := c.Request().Context()

	cc, err := h.Store.Load(ctx, token)
	if err != nil {
		return err
	}
	cc.Add(product)
	if err := h.Store.Save(ctx, token, cc); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view(cc))
}

// lookupProduct resolves a product from the table, falling back to the
// static catalog the same way the menu listing does.
func (h *CartHandler) lookupProduct(id uint) (models.Product, error) {
	var product models.Product
	err := h.DB.First(&product, id).Error
	if err == nil {
		return product, nil
	}
	for _, p := range fallbackProducts {
		if p.ID == id {
			return p, nil
		}
	}
	if err == gorm.ErrRecordNotFound {
		return models.Product{}, apperr.NotFound("product not found")
	}
	return models.Product{}, apperr.Backend(err)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid payload")
	}

	token := sessionToken(c)
	ctx := c.Request().Context()

	cc, err := h.Store.Load(ctx, token)
	if err != nil {
		return err
	}
	cc.SetQuantity(id, req.Quantity)
	if err := h.Store.Save(ctx, token, cc); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view(cc))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	token := sessionToken(c)
	ctx := c.Request().Context()

	cc, err := h.Store.Load(ctx, token)
	if err != nil {
		return err
	}
	cc.Remove(id)
	if err := h.Store.Save(ctx, token, cc); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view(cc))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	token := sessionToken(c)
	ctx := c.Request().Context()

	cc, err := h.Store.Load(ctx, token)
	if err != nil {
		return err
	}
	cc.Clear()
	if err := h.Store.Save(ctx, token, cc); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view(cc))
}
