// Package router maps URL fragments to storefront routes.
package router

import (
	"net/url"
	"strconv"
	"strings"
)

type Kind int

const (
	Invalid Kind = iota
	Home
	Collection
	CollectionCategory
	NewArrivals
	ProductDetail
	Cart
	Checkout
	Confirmation
	Orders
	OrderDetail
	Admin
	Login
	Register
)

var kindNames = map[Kind]string{
	Invalid:            "invalid",
	Home:               "home",
	Collection:         "collection",
	CollectionCategory: "collection-category",
	NewArrivals:        "new",
	ProductDetail:      "product",
	Cart:               "cart",
	Checkout:           "checkout",
	Confirmation:       "confirmation",
	Orders:             "orders",
	OrderDetail:        "order",
	Admin:              "admin",
	Login:              "login",
	Register:           "register",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Route is a parsed fragment. Category is set for CollectionCategory and ID for
// ProductDetail and OrderDetail.
type Route struct {
	Kind     Kind   `json:"kind"`
	Category string `json:"category,omitempty"`
	ID       int    `json:"id,omitempty"`
}

const (
	collectionPrefix = "collection-"
	productPrefix    = "product-"
	orderPrefix      = "order-"
)

var exact = map[string]Kind{
	"":             Home,
	"home":         Home,
	"collection":   Collection,
	"new":          NewArrivals,
	"cart":         Cart,
	"checkout":     Checkout,
	"confirmation": Confirmation,
	"orders":       Orders,
	"admin":        Admin,
	"login":        Login,
	"register":     Register,
}

// Parse never fails: anything unrecognized is an Invalid route.
func Parse(fragment string) Route {
	f := strings.TrimPrefix(strings.TrimSpace(fragment), "#")

	if k, ok := exact[f]; ok {
		return Route{Kind: k}
	}

	switch {
	case strings.HasPrefix(f, collectionPrefix):
		cat, err := url.PathUnescape(strings.TrimPrefix(f, collectionPrefix))
		if err != nil || cat == "" {
			return Route{Kind: Invalid}
		}
		return Route{Kind: CollectionCategory, Category: cat}
	case strings.HasPrefix(f, productPrefix):
		if id, ok := parseID(strings.TrimPrefix(f, productPrefix)); ok {
			return Route{Kind: ProductDetail, ID: id}
		}
	case strings.HasPrefix(f, orderPrefix):
		if id, ok := parseID(strings.TrimPrefix(f, orderPrefix)); ok {
			return Route{Kind: OrderDetail, ID: id}
		}
	}
	return Route{Kind: Invalid}
}

func parseID(s string) (int, bool) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Fragment renders the route back to its canonical "#..." form.
func (r Route) Fragment() string {
	switch r.Kind {
	case CollectionCategory:
		return "#" + collectionPrefix + url.PathEscape(r.Category)
	case ProductDetail:
		return "#" + productPrefix + strconv.Itoa(r.ID)
	case OrderDetail:
		return "#" + orderPrefix + strconv.Itoa(r.ID)
	case Invalid:
		return "#home"
	}
	return "#" + r.Kind.String()
}

// ShowSidebar is true only for the browsing routes.
func (r Route) ShowSidebar() bool {
	switch r.Kind {
	case Home, Collection, CollectionCategory, NewArrivals:
		return true
	}
	return false
}
