package state

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/storage"
)

// Bootstrap builds the application state. When users, products and orders are not
// all present in the store the seed is written; otherwise the stored collections are
// hydrated and validated. The persisted session is then resolved against Users.
func Bootstrap(ctx context.Context, store *storage.Store, seed Seed, opts ...Option) (*App, error) {
	a := newApp(store, opts...)
	l := a.log

	var (
		users    []models.User
		products []models.Product
		orders   []models.Order
	)
	hasUsers := store.Load(ctx, storage.KeyUsers, &users)
	hasProducts := store.Load(ctx, storage.KeyProducts, &products)
	hasOrders := store.Load(ctx, storage.KeyOrders, &orders)

	if !(hasUsers && hasProducts && hasOrders) {
		su, sp, so, err := seed.build(a.now())
		if err != nil {
			return nil, fmt.Errorf("build seed: %w", err)
		}
		a.PutUsers(ctx, su)
		a.PutProducts(ctx, sp)
		a.PutOrders(ctx, so)
		l.Info("state_seeded", "users", len(su), "products", len(sp), "orders", len(so))
	} else {
		a.hydrate(ctx, users, products, orders)
		l.Info("state_hydrated", "users", len(a.Users), "products", len(a.Products), "orders", len(a.Orders))
	}

	var username string
	if store.Load(ctx, storage.KeyCurrentUser, &username) && username != "" {
		if u, ok := a.FindUser(username); ok {
			a.CurrentUser = &u
		} else {
			l.Warn("state_stale_session", "username", username)
		}
	}
	return a, nil
}

func (a *App) hydrate(ctx context.Context, users []models.User, products []models.Product, orders []models.Order) {
	l := a.log

	keptUsers := make([]models.User, 0, len(users))
	seenUsers := make(map[string]struct{}, len(users))
	for _, u := range users {
		if u.Username == "" {
			l.Warn("state_record_dropped", "collection", storage.KeyUsers, "reason", "empty username")
			continue
		}
		if _, dup := seenUsers[u.Username]; dup {
			l.Warn("state_record_dropped", "collection", storage.KeyUsers, "username", u.Username, "reason", "duplicate username")
			continue
		}
		seenUsers[u.Username] = struct{}{}
		keptUsers = append(keptUsers, u)
	}

	keptProducts := make([]models.Product, 0, len(products))
	seenProducts := make(map[int]struct{}, len(products))
	for _, p := range products {
		reason := ""
		switch {
		case p.ID <= 0:
			reason = "non-positive id"
		case p.Price.IsNegative():
			reason = "negative price"
		}
		if _, dup := seenProducts[p.ID]; reason == "" && dup {
			reason = "duplicate id"
		}
		if reason != "" {
			l.Warn("state_record_dropped", "collection", storage.KeyProducts, "id", p.ID, "reason", reason)
			continue
		}
		seenProducts[p.ID] = struct{}{}
		keptProducts = append(keptProducts, p)
	}

	keptOrders := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.ID <= 0 {
			l.Warn("state_record_dropped", "collection", storage.KeyOrders, "id", o.ID, "reason", "non-positive id")
			continue
		}
		if o.Items == nil {
			o.Items = []models.OrderItem{}
		}
		keptOrders = append(keptOrders, o)
	}

	a.Users, a.Products, a.Orders = keptUsers, keptProducts, keptOrders
	if len(keptUsers) != len(users) {
		a.PutUsers(ctx, keptUsers)
	}
	if len(keptProducts) != len(products) {
		a.PutProducts(ctx, keptProducts)
	}
	if len(keptOrders) != len(orders) {
		a.PutOrders(ctx, keptOrders)
	}
}
