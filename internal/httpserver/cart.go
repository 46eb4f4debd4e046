package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Svc.Summary(c.Request().Context()))
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "cart_add_error", "invalid body", err)
	}

	if _, err := h.Svc.Add(ctx, req.ProductID, req.Quantity); err != nil {
		return opError(l, "cart_add_error", err)
	}

	l.Info("cart_add_success", "product_id", req.ProductID)
	return c.JSON(http.StatusOK, h.Svc.Summary(ctx))
}

func (h *CartHTTP) SetQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.set_quantity")

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		return badRequest(l, "cart_update_error", "productId is not an integer", err)
	}
	var req transport.SetQuantityRequest
	if err := c.Bind(&req); err != nil || req.Quantity == nil {
		return badRequest(l, "cart_update_error", "quantity is required", err)
	}

	h.Svc.SetQuantity(ctx, productID, *req.Quantity)
	return c.JSON(http.StatusOK, h.Svc.Summary(ctx))
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		return badRequest(l, "cart_remove_error", "productId is not an integer", err)
	}

	h.Svc.Remove(ctx, productID)
	return c.JSON(http.StatusOK, h.Svc.Summary(ctx))
}
