package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tienda-shop/tienda/internal/logging"
	"github.com/tienda-shop/tienda/internal/service"
	"github.com/tienda-shop/tienda/internal/transport"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

func (h *CheckoutHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	productID, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	purchase, err := h.Svc.Checkout(ctx, productID, userID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("checkout_failed", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidation):
			l.Warn("checkout_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("checkout_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "checkout failed")
		}
	}

	l.Info("checkout_success", "purchase_id", purchase.ID, "product_id", purchase.ProductID, "quantity", purchase.Quantity)
	return c.JSON(http.StatusCreated, purchase)
}
