package service

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/state"
)

const minCardLength = 12

type ShippingInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

// PaymentInput is checked and dropped; it is never stored.
type PaymentInput struct {
	CardNumber string `json:"cardNumber"`
}

type CategorySales struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type Dashboard struct {
	ProductCount    int              `json:"productCount"`
	UserCount       int              `json:"userCount"`
	OrderCount      int              `json:"orderCount"`
	TotalSales      decimal.Decimal  `json:"totalSales"`
	SalesByCategory []CategorySales  `json:"salesByCategory"`
	Products        []models.Product `json:"products"`
	Orders          []models.Order   `json:"orders"`
}

type OrderService struct {
	App    *state.App
	Events EventPublisher
}

// PlaceOrder snapshots the signed-in user's cart into a new order, clears the cart
// and records the order as the last one placed.
func (s *OrderService) PlaceOrder(ctx context.Context, ship ShippingInput, pay PaymentInput) (models.Order, error) {
	if s.App.CurrentUser == nil {
		return models.Order{}, fail(ErrUnauthorized, "You must be logged in to place an order.")
	}

	ship.Name = strings.TrimSpace(ship.Name)
	ship.Address = strings.TrimSpace(ship.Address)
	ship.City = strings.TrimSpace(ship.City)
	ship.Zip = strings.TrimSpace(ship.Zip)
	card := strings.TrimSpace(pay.CardNumber)

	if ship.Name == "" || ship.Address == "" || ship.City == "" || ship.Zip == "" || card == "" {
		return models.Order{}, fail(ErrValidation, "Please fill in all shipping and payment details.")
	}
	if utf8.RuneCountInString(card) < minCardLength {
		return models.Order{}, fail(ErrValidation, "Please enter a valid credit card number.")
	}

	lines := s.App.Cart(ctx)
	if len(lines) == 0 {
		return models.Order{}, fail(ErrValidation, "Your cart is empty.")
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		it := models.OrderItem{
			ProductID: l.ProductID,
			Name:      "Unknown Product",
			Price:     decimal.Zero,
			Quantity:  l.Quantity,
		}
		if p, ok := s.App.FindProduct(l.ProductID); ok {
			it.Name = p.Name
			it.Category = p.Category
			it.Price = p.Price
		}
		items = append(items, it)
	}

	o := models.Order{
		ID:    s.App.NextOrderID(),
		User:  s.App.CurrentUser.Username,
		Date:  s.App.Now().Format(state.DateLayout),
		Items: items,
		Total: models.SumItems(items),
		Shipping: models.Shipping{
			Name:    ship.Name,
			Address: ship.Address + ", " + ship.City + ", " + ship.Zip,
		},
	}

	orders := append(append([]models.Order{}, s.App.Orders...), o)
	s.App.PutOrders(ctx, orders)
	s.App.DropCart(ctx)
	s.App.SetLastOrder(ctx, o.ID)

	publish(ctx, s.Events, events.OrderPlaced, o.User, map[string]any{"orderId": o.ID, "total": o.Total})
	return o, nil
}

func (s *OrderService) UserOrders() ([]models.Order, error) {
	if s.App.CurrentUser == nil {
		return nil, fail(ErrUnauthorized, "Please log in to view your orders.")
	}
	out := []models.Order{}
	for _, o := range s.App.Orders {
		if o.User == s.App.CurrentUser.Username {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *OrderService) canView(o models.Order) bool {
	u := s.App.CurrentUser
	return u != nil && (u.IsAdmin || u.Username == o.User)
}

// Order returns an order visible to its owner or an admin.
func (s *OrderService) Order(id int) (models.Order, error) {
	o, ok := s.App.FindOrder(id)
	if !ok {
		return models.Order{}, fail(ErrNotFound, "Order not found.")
	}
	if !s.canView(o) {
		return models.Order{}, fail(ErrForbidden, "You are not authorized to view this order.")
	}
	return o, nil
}

// Confirm returns the last placed order and forgets it after an authorized read.
func (s *OrderService) Confirm(ctx context.Context) (models.Order, error) {
	id, ok := s.App.LastOrder(ctx)
	if !ok {
		return models.Order{}, fail(ErrNotFound, "No recent order to confirm.")
	}
	o, err := s.Order(id)
	if err != nil {
		return models.Order{}, err
	}
	s.App.ClearLastOrder(ctx)
	return o, nil
}

// SalesByCategory sums order line revenue per current product category.
func (s *OrderService) SalesByCategory() []CategorySales {
	cats := map[string]struct{}{}
	for _, p := range s.App.Products {
		cats[p.Category] = struct{}{}
	}
	names := make([]string, 0, len(cats))
	for c := range cats {
		names = append(names, c)
	}
	sort.Strings(names)

	out := make([]CategorySales, 0, len(names))
	for _, c := range names {
		sum := decimal.Zero
		for _, o := range s.App.Orders {
			for _, it := range o.Items {
				if it.Category == c {
					sum = sum.Add(it.LineTotal())
				}
			}
		}
		out = append(out, CategorySales{Category: c, Revenue: sum})
	}
	return out
}

func (s *OrderService) Dashboard() (Dashboard, error) {
	if !s.App.IsAdmin() {
		return Dashboard{}, fail(ErrForbidden, "You must be an admin to view this page.")
	}
	total := decimal.Zero
	for _, o := range s.App.Orders {
		total = total.Add(o.Total)
	}
	return Dashboard{
		ProductCount:    len(s.App.Products),
		UserCount:       len(s.App.Users),
		OrderCount:      len(s.App.Orders),
		TotalSales:      total,
		SalesByCategory: s.SalesByCategory(),
		Products:        append([]models.Product{}, s.App.Products...),
		Orders:          append([]models.Order{}, s.App.Orders...),
	}, nil
}
