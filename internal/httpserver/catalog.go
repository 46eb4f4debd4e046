package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/router"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/state"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
	App *state.App
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(l, "get_product_error", "id is not an integer", err)
	}

	p, err := h.Svc.Product(id)
	if err != nil {
		return opError(l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

// GetProducts lists the catalog in the session's sort order. category and new
// narrow the list.
func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	newOnly, _ := strconv.ParseBool(c.QueryParam("new"))

	items := h.Svc.List(service.ListOptions{
		Category: c.QueryParam("category"),
		NewOnly:  newOnly,
		Sort:     h.App.CurrentSort,
	})
	data, meta := util.Paginate(items, page, size)

	l.Info("get_products_success", "total", meta.Total)
	return c.JSON(http.StatusOK, map[string]any{"data": data, "meta": meta})
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	products, err := h.Svc.Search(ctx, c.QueryParam("q"))
	if err != nil {
		return opError(l, "search_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": len(products), "products": products})
}

func (h *CatalogHTTP) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, router.CategoryMenu(h.Svc.Categories()))
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "product_create_error", "invalid body", err)
	}
	in, err := req.Input()
	if err != nil {
		return badRequest(l, "product_create_error", "Please enter a valid price.", err)
	}

	p, err := h.Svc.AddProduct(ctx, in)
	if err != nil {
		return opError(l, "product_create_error", err)
	}

	l.Info("product_create_success", "product_id", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *CatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(l, "product_patch_error", "id is not an integer", err)
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "product_patch_error", "invalid body", err)
	}
	in, err := req.Input()
	if err != nil {
		return badRequest(l, "product_patch_error", "Invalid price value.", err)
	}

	p, err := h.Svc.UpdateProduct(ctx, id, in)
	if err != nil {
		return opError(l, "product_patch_error", err)
	}

	l.Info("product_patch_success", "product_id", p.ID)
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(l, "product_delete_error", "id is not an integer", err)
	}

	h.Svc.DeleteProduct(ctx, id)
	l.Info("product_delete_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
