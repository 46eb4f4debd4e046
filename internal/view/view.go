// Package view turns application state into per-route view descriptions. Mounting
// them (HTML, JSON) is left to the caller.
package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/router"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/state"
)

const siteName = "E-Commerce"

// View is a complete description of one page. Redirect, when set, asks the
// presentation layer to navigate there instead of mounting Body.
type View struct {
	Route      router.Route       `json:"route"`
	Title      string             `json:"title"`
	Sidebar    bool               `json:"sidebar"`
	Categories []router.MenuEntry `json:"categories,omitempty"`
	Redirect   string             `json:"redirect,omitempty"`
	Notice     string             `json:"notice,omitempty"`
	Body       any                `json:"body,omitempty"`
}

// FormatPrice renders an amount as "AED 0.00".
func FormatPrice(d decimal.Decimal) string {
	return "AED " + d.StringFixed(2)
}

func title(page string) string {
	return page + " - " + siteName
}

type Renderer struct {
	App *state.App
	Svc *service.Services
}

func New(app *state.App, svc *service.Services) *Renderer {
	return &Renderer{App: app, Svc: svc}
}

// Render builds the view for a route. Unrecognized routes render home and ask for a
// redirect to "#home".
func (r *Renderer) Render(ctx context.Context, rt router.Route) View {
	var v View
	switch rt.Kind {
	case router.Home:
		v = r.home()
	case router.Collection:
		v = r.collection("", false)
	case router.CollectionCategory:
		v = r.collection(rt.Category, false)
	case router.NewArrivals:
		v = r.collection("", true)
	case router.ProductDetail:
		v = r.product(rt.ID)
	case router.Cart:
		v = r.cart(ctx)
	case router.Checkout:
		v = r.checkout()
	case router.Confirmation:
		v = r.confirmation(ctx)
	case router.Orders:
		v = r.orders()
	case router.OrderDetail:
		v = r.orderDetail(rt.ID)
	case router.Admin:
		v = r.admin()
	case router.Login:
		v = View{Title: title("Login"), Body: AuthForm{Form: "login", AltLabel: "Register here", AltLink: "#register"}}
	case router.Register:
		v = View{Title: title("Register"), Body: AuthForm{Form: "register", AltLabel: "Login here", AltLink: "#login"}}
	default:
		v = r.home()
		v.Redirect = "#home"
		rt = router.Route{Kind: router.Home}
	}

	v.Route = rt
	v.Sidebar = rt.ShowSidebar()
	if v.Sidebar {
		v.Categories = router.CategoryMenu(r.Svc.Catalog.Categories())
	}
	return v
}

type ProductCard struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	IsNew bool   `json:"isNew"`
	Price string `json:"price"`
	Link  string `json:"link"`
}

func card(p models.Product) ProductCard {
	return ProductCard{
		ID:    p.ID,
		Name:  p.Name,
		Image: p.Image,
		IsNew: p.IsNew,
		Price: FormatPrice(p.Price),
		Link:  router.Route{Kind: router.ProductDetail, ID: p.ID}.Fragment(),
	}
}

func cards(ps []models.Product) []ProductCard {
	out := make([]ProductCard, 0, len(ps))
	for _, p := range ps {
		out = append(out, card(p))
	}
	return out
}

type Grid struct {
	Heading  string        `json:"heading"`
	Products []ProductCard `json:"products"`
	Empty    string        `json:"empty,omitempty"`
}

type SortOption struct {
	Value    state.Sort `json:"value"`
	Label    string     `json:"label"`
	Selected bool       `json:"selected"`
}

type CollectionPage struct {
	Grid
	Sort []SortOption `json:"sort"`
}

var sortLabels = []SortOption{
	{Value: state.SortPriceAsc, Label: "Price: Low to High"},
	{Value: state.SortPriceDesc, Label: "Price: High to Low"},
	{Value: state.SortNameAsc, Label: "Name: A to Z"},
	{Value: state.SortNameDesc, Label: "Name: Z to A"},
}

func (r *Renderer) home() View {
	r.App.CurrentCategory = ""
	r.App.ShowNewOnly = false

	g := Grid{Heading: "New This Week", Products: cards(r.Svc.Catalog.NewArrivals())}
	if len(g.Products) == 0 {
		g.Empty = "No new arrivals this week. Check back later!"
	}
	return View{Title: title("Home"), Body: g}
}

func (r *Renderer) collection(category string, newOnly bool) View {
	r.App.CurrentCategory = category
	r.App.ShowNewOnly = newOnly

	heading := "All Products"
	switch {
	case newOnly:
		heading = "New Arrivals"
	case category != "":
		heading = category + " Collection"
	}

	list := r.Svc.Catalog.List(service.ListOptions{Category: category, NewOnly: newOnly, Sort: r.App.CurrentSort})
	page := CollectionPage{Grid: Grid{Heading: heading, Products: cards(list)}}
	if len(list) == 0 {
		page.Empty = "No products found."
	}
	for _, o := range sortLabels {
		o.Selected = o.Value == r.App.CurrentSort
		page.Sort = append(page.Sort, o)
	}
	return View{Title: title("Collection"), Body: page}
}

type ProductPage struct {
	ProductCard
	Description string `json:"description"`
	Quantities  []int  `json:"quantities"`
	GuestNotice string `json:"guestNotice,omitempty"`
}

func (r *Renderer) product(id int) View {
	p, err := r.Svc.Catalog.Product(id)
	if err != nil {
		return View{Title: title("Product"), Notice: service.Message(err)}
	}
	page := ProductPage{
		ProductCard: card(p),
		Description: p.Description,
		Quantities:  []int{1, 2, 3, 4, 5},
	}
	if r.App.CurrentUser == nil {
		page.GuestNotice = "You are not logged in. You can add items to cart as guest, but will need to login to checkout."
	}
	return View{Title: title(p.Name), Body: page}
}

type CartRow struct {
	ProductID int    `json:"productId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type CartPage struct {
	Rows     []CartRow `json:"rows"`
	Total    string    `json:"total"`
	Checkout string    `json:"checkout"`
}

func (r *Renderer) cart(ctx context.Context) View {
	v := View{Title: title("Your Cart")}
	sum := r.Svc.Cart.Summary(ctx)
	if len(sum.Lines) == 0 {
		v.Notice = "Your shopping cart is empty."
		return v
	}

	page := CartPage{Total: FormatPrice(sum.Total), Checkout: "#checkout"}
	if r.App.CurrentUser == nil {
		page.Checkout = "#login"
	}
	for _, l := range sum.Lines {
		page.Rows = append(page.Rows, CartRow{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     FormatPrice(l.Price),
			Quantity:  l.Quantity,
			Subtotal:  FormatPrice(l.Subtotal),
		})
	}
	v.Body = page
	return v
}

type Form struct {
	ID     string   `json:"id"`
	Fields []string `json:"fields"`
}

func (r *Renderer) checkout() View {
	if r.App.CurrentUser == nil {
		return View{Title: title("Checkout"), Redirect: "#login"}
	}
	return View{Title: title("Checkout"), Body: Form{
		ID:     "checkout",
		Fields: []string{"name", "address", "city", "zip", "cardNumber"},
	}}
}

type ItemRow struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

type OrderPage struct {
	ID       int       `json:"id"`
	Date     string    `json:"date"`
	Customer string    `json:"customer"`
	ShipTo   string    `json:"shipTo"`
	Total    string    `json:"total"`
	Items    []ItemRow `json:"items"`
}

func orderPage(o models.Order) OrderPage {
	page := OrderPage{
		ID:       o.ID,
		Date:     o.Date,
		Customer: o.User,
		ShipTo:   o.Shipping.Name + ", " + o.Shipping.Address,
		Total:    FormatPrice(o.Total),
		Items:    make([]ItemRow, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		page.Items = append(page.Items, ItemRow{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: FormatPrice(it.Price),
			LineTotal: FormatPrice(it.LineTotal()),
		})
	}
	return page
}

func (r *Renderer) confirmation(ctx context.Context) View {
	v := View{Title: title("Order Confirmation")}
	o, err := r.Svc.Orders.Confirm(ctx)
	if err != nil {
		v.Notice = service.Message(err)
		return v
	}
	v.Body = orderPage(o)
	return v
}

type OrderRow struct {
	ID     int    `json:"id"`
	Date   string `json:"date"`
	Total  string `json:"total"`
	Status string `json:"status"`
	Link   string `json:"link"`
}

type OrdersPage struct {
	Orders []OrderRow `json:"orders"`
	Empty  string     `json:"empty,omitempty"`
}

func (r *Renderer) orders() View {
	orders, err := r.Svc.Orders.UserOrders()
	if errors.Is(err, service.ErrUnauthorized) {
		return View{Title: title("My Orders"), Redirect: "#login"}
	}

	page := OrdersPage{Orders: make([]OrderRow, 0, len(orders))}
	for _, o := range orders {
		page.Orders = append(page.Orders, OrderRow{
			ID:     o.ID,
			Date:   o.Date,
			Total:  FormatPrice(o.Total),
			Status: "Confirmed",
			Link:   router.Route{Kind: router.OrderDetail, ID: o.ID}.Fragment(),
		})
	}
	if len(orders) == 0 {
		page.Empty = "You have not placed any orders yet."
	}
	return View{Title: title("My Orders"), Body: page}
}

func (r *Renderer) orderDetail(id int) View {
	o, err := r.Svc.Orders.Order(id)
	if err != nil {
		return View{Title: title("Order"), Notice: service.Message(err)}
	}
	return View{Title: title(fmt.Sprintf("Order %d Details", o.ID)), Body: orderPage(o)}
}

type ChartPoint struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

type AdminPage struct {
	Products    int           `json:"products"`
	Orders      int           `json:"orders"`
	Users       int           `json:"users"`
	Sales       string        `json:"sales"`
	Chart       []ChartPoint  `json:"chart"`
	ProductRows []ProductCard `json:"productRows"`
	OrderRows   []AdminOrder  `json:"orderRows"`
}

type AdminOrder struct {
	ID    int    `json:"id"`
	User  string `json:"user"`
	Date  string `json:"date"`
	Total string `json:"total"`
}

func (r *Renderer) admin() View {
	d, err := r.Svc.Orders.Dashboard()
	if err != nil {
		return View{Title: title("Admin Dashboard"), Notice: service.Message(err)}
	}

	page := AdminPage{
		Products:    d.ProductCount,
		Orders:      d.OrderCount,
		Users:       d.UserCount,
		Sales:       FormatPrice(d.TotalSales),
		Chart:       make([]ChartPoint, 0, len(d.SalesByCategory)),
		ProductRows: cards(d.Products),
		OrderRows:   make([]AdminOrder, 0, len(d.Orders)),
	}
	for _, c := range d.SalesByCategory {
		page.Chart = append(page.Chart, ChartPoint{Category: c.Category, Revenue: c.Revenue.InexactFloat64()})
	}
	for _, o := range d.Orders {
		page.OrderRows = append(page.OrderRows, AdminOrder{ID: o.ID, User: o.User, Date: o.Date, Total: FormatPrice(o.Total)})
	}
	return View{Title: title("Admin Dashboard"), Body: page}
}

type AuthForm struct {
	Form     string `json:"form"`
	AltLabel string `json:"altLabel"`
	AltLink  string `json:"altLink"`
}
