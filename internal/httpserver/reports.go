package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tienda-shop/tienda/internal/logging"
	"github.com/tienda-shop/tienda/internal/service"
	"github.com/tienda-shop/tienda/internal/util"
)

type ReportHTTP struct {
	Svc *service.ReportService
}

func (h *ReportHTTP) TopProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reports.top_products")

	rows, err := h.Svc.TopProducts(ctx)
	if err != nil {
		l.Error("top_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot build report")
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHTTP) TopCustomers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reports.top_customers")

	rows, err := h.Svc.TopCustomers(ctx)
	if err != nil {
		l.Error("top_customers_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot build report")
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHTTP) PurchaseHistory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reports.history")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, purchases, err := h.Svc.PurchaseHistory(ctx, offset, limit)
	if err != nil {
		l.Error("history_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot build report")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": purchases,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}
