package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tienda-shop/tienda/internal/models"
)

func TestCheckoutHandler_Success(t *testing.T) {
	env := newTestEnv(t)

	user := env.register("buyer")
	env.topUp(user.ID, "100.00")
	product := env.seedProduct("widget", "W-1", 10, "19.99")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/checkout/1", map[string]int{"quantity": 3})
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(product.ID), 10))
	c.Set("userID", user.ID)

	require.NoError(t, env.Checkout.Checkout(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var purchase models.Purchase
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &purchase))
	require.EqualValues(t, 3, purchase.Quantity)
	require.True(t, purchase.Amount.Equal(decimal.RequireFromString("59.97")))

	var got models.Product
	require.NoError(t, env.DB.First(&got, product.ID).Error)
	require.EqualValues(t, 7, got.Stock)
}

func TestCheckoutHandler_Oversell(t *testing.T) {
	env := newTestEnv(t)

	user := env.register("buyer")
	env.topUp(user.ID, "500.00")
	product := env.seedProduct("widget", "W-1", 10, "19.99")

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/checkout/1", map[string]int{"quantity": 11})
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(product.ID), 10))
	c.Set("userID", user.ID)

	err := env.Checkout.Checkout(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)

	var got models.Product
	require.NoError(t, env.DB.First(&got, product.ID).Error)
	require.EqualValues(t, 10, got.Stock)
}

func TestCheckoutHandler_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	user := env.register("buyer")

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/checkout/999", map[string]int{"quantity": 1})
	c.SetParamNames("id")
	c.SetParamValues("999")
	c.Set("userID", user.ID)

	err := env.Checkout.Checkout(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestCheckoutHandler_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct("widget", "W-1", 10, "19.99")

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/checkout/1", map[string]int{"quantity": 1})
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := env.Checkout.Checkout(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestCheckoutHandler_BadID(t *testing.T) {
	env := newTestEnv(t)
	user := env.register("buyer")

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/checkout/abc", map[string]int{"quantity": 1})
	c.SetParamNames("id")
	c.SetParamValues("abc")
	c.Set("userID", user.ID)

	err := env.Checkout.Checkout(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)
}
