package state

import (
	"context"
	"log/slog"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/storage"
)

const DateLayout = "2006-01-02"

type Sort string

const (
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
	SortNameAsc   Sort = "name-asc"
	SortNameDesc  Sort = "name-desc"
)

func (s Sort) Valid() bool {
	switch s {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return true
	}
	return false
}

// App is the storefront's application state. Collections are mirrors of the store;
// every Put* call replaces the mirror and persists it immediately. The session
// fields other than CurrentUser are view state and are never persisted.
type App struct {
	Users    []models.User
	Products []models.Product
	Orders   []models.Order

	CurrentUser     *models.User
	CurrentCategory string
	CurrentSort     Sort
	ShowNewOnly     bool

	store *storage.Store
	log   *slog.Logger
	now   func() time.Time
}

type Option func(*App)

func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

func newApp(store *storage.Store, opts ...Option) *App {
	a := &App{
		CurrentSort: SortPriceAsc,
		store:       store,
		log:         slog.Default(),
		now:         time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *App) Now() time.Time { return a.now() }

func (a *App) Logger() *slog.Logger { return a.log }

// Identity is the current username, or "" for a guest.
func (a *App) Identity() string {
	if a.CurrentUser == nil {
		return ""
	}
	return a.CurrentUser.Username
}

func (a *App) IsAdmin() bool {
	return a.CurrentUser != nil && a.CurrentUser.IsAdmin
}

func (a *App) PutUsers(ctx context.Context, users []models.User) {
	a.Users = users
	a.store.Save(ctx, storage.KeyUsers, a.Users)
}

func (a *App) PutProducts(ctx context.Context, products []models.Product) {
	a.Products = products
	a.store.Save(ctx, storage.KeyProducts, a.Products)
}

func (a *App) PutOrders(ctx context.Context, orders []models.Order) {
	a.Orders = orders
	a.store.Save(ctx, storage.KeyOrders, a.Orders)
}

func (a *App) SetSession(ctx context.Context, u models.User) {
	a.CurrentUser = &u
	a.store.Save(ctx, storage.KeyCurrentUser, u.Username)
}

func (a *App) ClearSession(ctx context.Context) {
	a.CurrentUser = nil
	a.store.Remove(ctx, storage.KeyCurrentUser)
}

// CartFor loads the cart stored for username ("" = guest); absent means empty.
func (a *App) CartFor(ctx context.Context, username string) []models.CartLine {
	var lines []models.CartLine
	if !a.store.Load(ctx, storage.CartKey(username), &lines) || lines == nil {
		return []models.CartLine{}
	}
	return lines
}

func (a *App) Cart(ctx context.Context) []models.CartLine {
	return a.CartFor(ctx, a.Identity())
}

func (a *App) PutCartFor(ctx context.Context, username string, lines []models.CartLine) {
	a.store.Save(ctx, storage.CartKey(username), lines)
}

func (a *App) PutCart(ctx context.Context, lines []models.CartLine) {
	a.PutCartFor(ctx, a.Identity(), lines)
}

func (a *App) DropCartFor(ctx context.Context, username string) {
	a.store.Remove(ctx, storage.CartKey(username))
}

func (a *App) HasCartFor(ctx context.Context, username string) bool {
	var lines []models.CartLine
	return a.store.Load(ctx, storage.CartKey(username), &lines)
}

func (a *App) LastOrder(ctx context.Context) (int, bool) {
	var id int
	if !a.store.Load(ctx, storage.KeyLastOrder, &id) || id == 0 {
		return 0, false
	}
	return id, true
}

func (a *App) SetLastOrder(ctx context.Context, id int) {
	a.store.Save(ctx, storage.KeyLastOrder, id)
}

func (a *App) ClearLastOrder(ctx context.Context) {
	a.store.Remove(ctx, storage.KeyLastOrder)
}

func (a *App) FindUser(username string) (models.User, bool) {
	for _, u := range a.Users {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}

func (a *App) FindProduct(id int) (models.Product, bool) {
	for _, p := range a.Products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (a *App) FindOrder(id int) (models.Order, bool) {
	for _, o := range a.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}

// NextProductID is max(id)+1, or 1 for an empty catalog. Ids are never reused.
func (a *App) NextProductID() int {
	next := 1
	for _, p := range a.Products {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}

func (a *App) NextOrderID() int {
	next := 1
	for _, o := range a.Orders {
		if o.ID >= next {
			next = o.ID + 1
		}
	}
	return next
}

func (a *App) DropCart(ctx context.Context) {
	a.DropCartFor(ctx, a.Identity())
}
