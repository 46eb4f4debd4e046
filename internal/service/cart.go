package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/state"
)

type CartService struct {
	App    *state.App
	Events EventPublisher
}

// PricedLine is a cart line valued against the live catalog.
type PricedLine struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type Summary struct {
	Lines []PricedLine    `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

func (s *CartService) Lines(ctx context.Context) []models.CartLine {
	return s.App.Cart(ctx)
}

// Add merges quantity into the line for productID, creating it when missing.
func (s *CartService) Add(ctx context.Context, productID, quantity int) ([]models.CartLine, error) {
	if _, ok := s.App.FindProduct(productID); !ok {
		return nil, fail(ErrNotFound, "Product not found.")
	}
	if quantity < 1 {
		quantity = 1
	}

	lines := s.App.Cart(ctx)
	merged := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, models.CartLine{ProductID: productID, Quantity: quantity})
	}

	s.save(ctx, lines)
	return lines, nil
}

// SetQuantity sets an existing line; n <= 0 removes it. Without a line it does nothing.
func (s *CartService) SetQuantity(ctx context.Context, productID, n int) []models.CartLine {
	lines := s.App.Cart(ctx)
	idx := -1
	for i, l := range lines {
		if l.ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return lines
	}

	if n <= 0 {
		lines = append(lines[:idx], lines[idx+1:]...)
	} else {
		lines[idx].Quantity = n
	}
	s.save(ctx, lines)
	return lines
}

func (s *CartService) Remove(ctx context.Context, productID int) []models.CartLine {
	return s.SetQuantity(ctx, productID, 0)
}

func (s *CartService) save(ctx context.Context, lines []models.CartLine) {
	s.App.PutCart(ctx, lines)
	publish(ctx, s.Events, events.CartUpdated, s.App.Identity(), lines)
}

// Summary prices the cart from the live catalog. A missing product shows as
// "Product <id>" at zero.
func (s *CartService) Summary(ctx context.Context) Summary {
	out := Summary{Lines: []PricedLine{}, Total: decimal.Zero}
	for _, l := range s.App.Cart(ctx) {
		pl := PricedLine{
			ProductID: l.ProductID,
			Name:      fmt.Sprintf("Product %d", l.ProductID),
			Price:     decimal.Zero,
			Quantity:  l.Quantity,
		}
		if p, ok := s.App.FindProduct(l.ProductID); ok {
			pl.Name = p.Name
			pl.Price = p.Price
		}
		pl.Subtotal = pl.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		out.Total = out.Total.Add(pl.Subtotal)
		out.Lines = append(out.Lines, pl)
	}
	return out
}
