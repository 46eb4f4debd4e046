package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/state"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "register_error", "invalid body", err)
	}

	u, err := h.Svc.Register(ctx, req.Email, req.Password)
	if err != nil {
		return opError(l, "register_error", err)
	}

	l.Info("register_success", "username", u.Username)
	return c.JSON(http.StatusCreated, transport.NewAuthResponse(u))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "login_error", "invalid body", err)
	}

	u, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return opError(l, "login_error", err)
	}

	l.Info("login_success", "username", u.Username)
	return c.JSON(http.StatusOK, transport.NewAuthResponse(u))
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	h.Svc.Logout(ctx)
	logging.FromContext(ctx).Info("logout_success")
	return c.NoContent(http.StatusNoContent)
}

type SessionHTTP struct {
	App     *state.App
	Catalog *service.CatalogService
}

func (h *SessionHTTP) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, transport.NewSessionResponse(h.App))
}

func (h *SessionHTTP) SetSort(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "session.set_sort")

	var req transport.SortRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "set_sort_error", "invalid body", err)
	}
	if err := h.Catalog.SetSort(req.Sort); err != nil {
		return opError(l, "set_sort_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewSessionResponse(h.App))
}
