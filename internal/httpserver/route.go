package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/middleware/dispatch"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/state"
	"github.com/Skotchmaster/storefront/internal/view"
)

type Deps struct {
	App         *state.App
	Dispatcher  *dispatch.Dispatcher
	AuthHandler *AuthHTTP
	Session     *SessionHTTP
	Catalog     *CatalogHTTP
	Cart        *CartHTTP
	Orders      *OrderHTTP
	Views       *ViewHTTP
}

func NewDeps(app *state.App, svc *service.Services) *Deps {
	return &Deps{
		App:         app,
		Dispatcher:  &dispatch.Dispatcher{},
		AuthHandler: &AuthHTTP{Svc: svc.Auth},
		Session:     &SessionHTTP{App: app, Catalog: svc.Catalog},
		Catalog:     &CatalogHTTP{Svc: svc.Catalog, App: app},
		Cart:        &CartHTTP{Svc: svc.Cart},
		Orders:      &OrderHTTP{Svc: svc.Orders},
		Views:       &ViewHTTP{Views: view.New(app, svc)},
	}
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1", d.Dispatcher.Serialize)

	v1.GET("/view", d.Views.Render)
	v1.GET("/categories", d.Catalog.Categories)

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", d.AuthHandler.Register)
	authGroup.POST("/login", d.AuthHandler.Login)
	authGroup.POST("/logout", d.AuthHandler.Logout)

	v1.GET("/session", d.Session.Get)
	v1.PUT("/session/sort", d.Session.SetSort)

	products := v1.Group("/products")
	products.GET("", d.Catalog.GetProducts)
	products.GET("/search", d.Catalog.SearchProducts)
	products.GET("/:id", d.Catalog.GetProduct)

	cart := v1.Group("/cart")
	cart.GET("", d.Cart.GetCart)
	cart.POST("", d.Cart.AddToCart)
	cart.PUT("/:productId", d.Cart.SetQuantity)
	cart.DELETE("/:productId", d.Cart.RemoveFromCart)

	orders := v1.Group("/orders")
	orders.POST("", d.Orders.PlaceOrder)
	orders.GET("", d.Orders.ListOrders)
	orders.GET("/:id", d.Orders.GetOrder)

	admin := v1.Group("/admin", auth.RequireAdmin(d.App))
	admin.GET("/dashboard", d.Orders.Dashboard)
	admin.POST("/products", d.Catalog.CreateProduct)
	admin.PATCH("/products/:id", d.Catalog.PatchProduct)
	admin.DELETE("/products/:id", d.Catalog.DeleteProduct)
}
