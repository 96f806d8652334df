package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zarascrunch/storefront/internal/models"
)

func seedProduct(t *testing.T, env *testEnv, name string, price int) models.Product {
	p := models.Product{
		Name:        name,
		Description: "test product",
		Price:       price,
		Category:    models.CategorySmallChops,
		IsAvailable: true,
	}
	require.NoError(t, env.DB.Create(&p).Error)
	return p
}

func decodeCart(t *testing.T, data []byte) cartView {
	var v cartView
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

func TestGetCartEmpty(t *testing.T) {
	env := newTestEnv(t)
	h := &CartHandler{DB: env.DB, Store: env.Store}

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil, cartCookie("t1"))
	require.NoError(t, h.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	v := decodeCart(t, rec.Body.Bytes())
	require.Empty(t, v.Items)
	require.Equal(t, 0, v.Total)
	require.Equal(t, 0, v.ItemCount)
}

func TestAddToCartAccumulates(t *testing.T) {
	env := newTestEnv(t)
	h := &CartHandler{DB: env.DB, Store: env.Store}
	p := seedProduct(t, env, "Pepper Chicken", 3500)

	for i := 0; i < 3; i++ {
		rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", map[string]uint{"product_id": p.ID}, cartCookie("t1"))
		require.NoError(t, h.AddToCart(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil, cartCookie("t1"))
	require.NoError(t, h.GetCart(c))

	v := decodeCart(t, rec.Body.Bytes())
	require.Len(t, v.Items, 1)
	require.Equal(t, 3, v.Items[0].Quantity)
	require.Equal(t, 10500, v.Total)
	require.Equal(t, 3, v.ItemCount)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	h := &CartHandler{DB: env.DB, Store: env.Store}

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", map[string]uint{"product_id": 424242}, cartCookie("t1"))
	require.Error(t, h.AddToCart(c))
}

func TestAddFallbackProductToCart(t *testing.T) {
	env := newTestEnv(t)
	h := &CartHandler{DB: env.DB, Store: env.Store}

	// 9005 is the fallback milkshake, never present in the table
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", map[string]uint{"product_id": 9005}, cartCookie("t1"))
	require.NoError(t, h.AddToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	v := decodeCart(t, rec.Body.Bytes())
	require.Len(t, v.Items, 1)
	require.Equal(t, 2000, v.Items[0].Price)
}

func TestUpdateQuantityFloorsAtOne(t *testing.T) {
	env := newTestEnv(t)
	h := &CartHandler{DB: env.DB, Store: env.Store}
	p := seedProduct(t, env, "Milkshake", 2000)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", map[string]uint{"product_id": p.ID}, cartCookie("t1"))
	require.NoError(t, h.AddToCart(c))

	rec, c := env.doJSONRequest(http.MethodPatch, "/", map[string]int{"quantity": 0}, cartCookie("t1"))
	c.SetParamNames("id")
	c.SetParamValues(itoa(p.ID))
	require.NoError(t, h.UpdateQuantity(c))

	v := decodeCart(t, rec.Body.Bytes())
	require.Equal(t, 1, v.Items[0].Quantity)

	rec, c = env.doJSONRequest(http.MethodPatch, "/", map[string]int{"quantity": 5}, cartCookie("t1"))
	c.SetParamNames("id")
	c.SetParamValues(itoa(p.ID))
	require.NoError(t, h.UpdateQuantity(c))

	v = decodeCart(t, rec.Body.Bytes())
	require.Equal(t, 5, v.Items[0].Quantity)
	require.Equal(t, 10000, v.Total)
}

func TestRemoveItemAndClear(t *testing.T) {
	env := newTestEnv(t)
	h := &CartHandler{DB: env.DB, Store: env.Store}
	p1 := seedProduct(t, env, "Samosa", 2000)
	p2 := seedProduct(t, env, "Cupcakes", 1500)

	for _, p := range []models.Product{p1, p1, p2} {
		_, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", map[string]uint{"product_id": p.ID}, cartCookie("t1"))
		require.NoError(t, h.AddToCart(c))
	}

	// p1 x2 at 2000 plus p2 x1 at 1500
	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil, cartCookie("t1"))
	require.NoError(t, h.GetCart(c))
	v := decodeCart(t, rec.Body.Bytes())
	require.Equal(t, 5500, v.Total)
	require.Equal(t, 3, v.ItemCount)

	rec, c = env.doJSONRequest(http.MethodDelete, "/", nil, cartCookie("t1"))
	c.SetParamNames("id")
	c.SetParamValues(itoa(p1.ID))
	require.NoError(t, h.RemoveItem(c))
	v = decodeCart(t, rec.Body.Bytes())
	require.Len(t, v.Items, 1)
	require.Equal(t, 1500, v.Total)

	rec, c = env.doJSONRequest(http.MethodDelete, "/api/v1/cart", nil, cartCookie("t1"))
	require.NoError(t, h.ClearCart(c))
	v = decodeCart(t, rec.Body.Bytes())
	require.Empty(t, v.Items)
	require.Equal(t, 0, v.Total)
}

func TestCartSessionsAreIsolated(t *testing.T) {
	env := newTestEnv(t)
	h := &CartHandler{DB: env.DB, Store: env.Store}
	p := seedProduct(t, env, "Shawarma", 3000)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", map[string]uint{"product_id": p.ID}, cartCookie("alice"))
	require.NoError(t, h.AddToCart(c))

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil, cartCookie("bob"))
	require.NoError(t, h.GetCart(c))
	v := decodeCart(t, rec.Body.Bytes())
	require.Empty(t, v.Items)
}

func TestCartCookieIssuedOnFirstTouch(t *testing.T) {
	env := newTestEnv(t)
	h := &CartHandler{DB: env.DB, Store: env.Store}

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil)
	require.NoError(t, h.GetCart(c))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, cartCookieName, cookies[0].Name)
	require.NotEmpty(t, cookies[0].Value)
}
