package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/router"
	"github.com/Skotchmaster/storefront/internal/view"
)

type ViewHTTP struct {
	Views *view.Renderer
}

// Render parses the fragment query parameter and returns the view description.
func (h *ViewHTTP) Render(c echo.Context) error {
	ctx := c.Request().Context()
	fragment := c.QueryParam("fragment")

	rt := router.Parse(fragment)
	if rt.Kind == router.Invalid {
		logging.FromContext(ctx).Info("route_fallback", "fragment", fragment)
	}
	return c.JSON(http.StatusOK, h.Views.Render(ctx, rt))
}
