package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "place_order_error", "invalid body", err)
	}

	o, err := h.Svc.PlaceOrder(ctx, req.Shipping, req.Payment)
	if err != nil {
		return opError(l, "place_order_error", err)
	}

	l.Info("place_order_success", "order_id", o.ID, "total", o.Total.String())
	return c.JSON(http.StatusCreated, o)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "order.list")

	orders, err := h.Svc.UserOrders()
	if err != nil {
		return opError(l, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "order.get")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(l, "get_order_error", "id is not an integer", err)
	}

	o, err := h.Svc.Order(id)
	if err != nil {
		return opError(l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHTTP) Dashboard(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "admin.dashboard")

	d, err := h.Svc.Dashboard()
	if err != nil {
		return opError(l, "dashboard_error", err)
	}
	return c.JSON(http.StatusOK, d)
}
