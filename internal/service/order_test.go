package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/storage"
)

var (
	goodShip = ShippingInput{Name: "Test User", Address: "1 Loop Rd", City: "Dubai", Zip: "00000"}
	goodPay  = PaymentInput{CardNumber: "4111111111111111"}
)

func TestPlaceOrder_SeededCheckoutEndToEnd(t *testing.T) {
	e := newEnv(t)
	e.login(t, "testuser@example.com", "test1234")

	_, err := e.svc.Cart.Add(e.ctx, 2, 1)
	require.NoError(t, err)
	_, err = e.svc.Cart.Add(e.ctx, 4, 3)
	require.NoError(t, err)

	o, err := e.svc.Orders.PlaceOrder(e.ctx, goodShip, goodPay)
	require.NoError(t, err)

	assert.Equal(t, 2, o.ID)
	assert.Equal(t, "testuser@example.com", o.User)
	assert.Equal(t, "2026-05-20", o.Date)
	assert.Equal(t, "1 Loop Rd, Dubai, 00000", o.Shipping.Address)
	assert.True(t, models.SumItems(o.Items).Equal(o.Total))
	assert.True(t, decimal.NewFromInt(300).Equal(o.Total), o.Total.String())

	assert.False(t, e.has(storage.CartKey("testuser@example.com")))
	last, ok := e.app.LastOrder(e.ctx)
	require.True(t, ok)
	assert.Equal(t, o.ID, last)

	var stored []models.Order
	require.True(t, e.store.Load(e.ctx, storage.KeyOrders, &stored))
	require.Len(t, stored, 2)
	raw, _, _ := e.backend.Get(e.ctx, storage.KeyOrders)
	assert.NotContains(t, raw, goodPay.CardNumber)
	assert.Equal(t, events.OrderPlaced, e.events.types[len(e.events.types)-1])
}

func TestPlaceOrder_Failures(t *testing.T) {
	tests := []struct {
		name    string
		login   bool
		fill    bool
		ship    ShippingInput
		pay     PaymentInput
		wantErr error
		wantMsg string
	}{
		{"guest", false, true, goodShip, goodPay, ErrUnauthorized, "You must be logged in to place an order."},
		{"missing city", true, true, ShippingInput{Name: "a", Address: "b", Zip: "c"}, goodPay, ErrValidation, "Please fill in all shipping and payment details."},
		{"blank name", true, true, ShippingInput{Name: "   ", Address: "b", City: "c", Zip: "d"}, goodPay, ErrValidation, "Please fill in all shipping and payment details."},
		{"missing card", true, true, goodShip, PaymentInput{}, ErrValidation, "Please fill in all shipping and payment details."},
		{"short card", true, true, goodShip, PaymentInput{CardNumber: "12345678901"}, ErrValidation, "Please enter a valid credit card number."},
		{"empty cart", true, false, goodShip, goodPay, ErrValidation, "Your cart is empty."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			if tt.fill {
				_, err := e.svc.Cart.Add(e.ctx, 1, 1)
				require.NoError(t, err)
			}
			if tt.login {
				e.login(t, "testuser@example.com", "test1234")
			}

			_, err := e.svc.Orders.PlaceOrder(e.ctx, tt.ship, tt.pay)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantMsg, Message(err))
			assert.Len(t, e.app.Orders, 1)
			_, ok := e.app.LastOrder(e.ctx)
			assert.False(t, ok)
			if tt.fill {
				assert.NotEmpty(t, e.svc.Cart.Lines(e.ctx))
			}
		})
	}
}

func TestPlaceOrder_SnapshotsMissingProduct(t *testing.T) {
	e := newEnv(t)
	e.login(t, "testuser@example.com", "test1234")
	e.app.PutCart(e.ctx, []models.CartLine{{ProductID: 1, Quantity: 1}, {ProductID: 404, Quantity: 2}})

	o, err := e.svc.Orders.PlaceOrder(e.ctx, goodShip, goodPay)
	require.NoError(t, err)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Unknown Product", o.Items[1].Name)
	assert.Equal(t, "", o.Items[1].Category)
	assert.True(t, o.Items[1].Price.IsZero())
	assert.True(t, decimal.NewFromInt(90).Equal(o.Total))

	_, err = e.svc.Catalog.UpdateProduct(e.ctx, 1, ProductInput{Price: ptr("999")})
	require.NoError(t, err)
	got, err := e.svc.Orders.Order(o.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(90).Equal(got.Total), "totals are never recomputed")
}

func TestOrderAuthorization(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.Orders.Order(1)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = e.svc.Orders.Order(50)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = e.svc.Auth.Register(e.ctx, "other@example.com", "pw")
	require.NoError(t, err)
	_, err = e.svc.Orders.Order(1)
	require.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "You are not authorized to view this order.", Message(err))

	e.login(t, "testuser@example.com", "test1234")
	o, err := e.svc.Orders.Order(1)
	require.NoError(t, err)
	assert.Equal(t, 1, o.ID)

	e.login(t, "admin@example.com", "admin123")
	_, err = e.svc.Orders.Order(1)
	require.NoError(t, err)
}

func TestConfirm(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.Orders.Confirm(e.ctx)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "No recent order to confirm.", Message(err))

	e.login(t, "testuser@example.com", "test1234")
	_, err = e.svc.Cart.Add(e.ctx, 3, 1)
	require.NoError(t, err)
	placed, err := e.svc.Orders.PlaceOrder(e.ctx, goodShip, goodPay)
	require.NoError(t, err)

	e.svc.Auth.Logout(e.ctx)
	_, err = e.svc.Orders.Confirm(e.ctx)
	require.ErrorIs(t, err, ErrForbidden)
	_, ok := e.app.LastOrder(e.ctx)
	assert.True(t, ok, "denied read keeps lastOrder")

	e.login(t, "testuser@example.com", "test1234")
	o, err := e.svc.Orders.Confirm(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, o.ID)
	assert.False(t, e.has(storage.KeyLastOrder))
}

func TestUserOrders(t *testing.T) {
	e := newEnv(t)
	_, err := e.svc.Orders.UserOrders()
	require.ErrorIs(t, err, ErrUnauthorized)

	e.login(t, "testuser@example.com", "test1234")
	orders, err := e.svc.Orders.UserOrders()
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	e.login(t, "admin@example.com", "admin123")
	orders, err = e.svc.Orders.UserOrders()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestDashboard(t *testing.T) {
	e := newEnv(t)
	_, err := e.svc.Orders.Dashboard()
	require.ErrorIs(t, err, ErrForbidden)

	e.login(t, "testuser@example.com", "test1234")
	_, err = e.svc.Orders.Dashboard()
	require.ErrorIs(t, err, ErrForbidden)

	e.login(t, "admin@example.com", "admin123")
	d, err := e.svc.Orders.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, 4, d.ProductCount)
	assert.Equal(t, 2, d.UserCount)
	assert.Equal(t, 1, d.OrderCount)
	assert.True(t, decimal.NewFromInt(250).Equal(d.TotalSales))
	require.Len(t, d.SalesByCategory, 2)
	assert.Equal(t, "Dress", d.SalesByCategory[0].Category)
	assert.True(t, decimal.NewFromInt(90).Equal(d.SalesByCategory[0].Revenue))
	assert.Equal(t, "Shoes", d.SalesByCategory[1].Category)
	assert.True(t, decimal.NewFromInt(160).Equal(d.SalesByCategory[1].Revenue))
}
