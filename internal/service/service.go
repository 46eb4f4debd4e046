// Package service holds the storefront operations. Every operation validates its
// input first and either fails without touching state or applies and persists the
// whole change.
package service

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/state"
)

type EventPublisher interface {
	Publish(ctx context.Context, typ, user string, payload any)
}

type ProductIndex interface {
	IndexProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id int) error
	SearchIDs(ctx context.Context, query string, size int) ([]int, error)
}

type Services struct {
	Auth    *AuthService
	Catalog *CatalogService
	Cart    *CartService
	Orders  *OrderService
}

// New wires the services over one application state. events and index may be nil.
func New(app *state.App, events EventPublisher, index ProductIndex) *Services {
	return &Services{
		Auth:    &AuthService{App: app, Events: events},
		Catalog: &CatalogService{App: app, Events: events, Index: index},
		Cart:    &CartService{App: app, Events: events},
		Orders:  &OrderService{App: app, Events: events},
	}
}

func publish(ctx context.Context, p EventPublisher, typ, user string, payload any) {
	if p == nil {
		return
	}
	p.Publish(ctx, typ, user, payload)
}
