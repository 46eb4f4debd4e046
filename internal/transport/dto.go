package transport

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/state"
)

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

type AuthResponse struct {
	User     UserResponse `json:"user"`
	Redirect string       `json:"redirect"`
}

func NewAuthResponse(u models.User) AuthResponse {
	return AuthResponse{
		User:     UserResponse{Username: u.Username, IsAdmin: u.IsAdmin},
		Redirect: service.RedirectFor(u),
	}
}

type SessionResponse struct {
	User     *UserResponse `json:"user"`
	Category string        `json:"category,omitempty"`
	Sort     state.Sort    `json:"sort"`
	NewOnly  bool          `json:"newOnly"`
}

func NewSessionResponse(a *state.App) SessionResponse {
	resp := SessionResponse{Category: a.CurrentCategory, Sort: a.CurrentSort, NewOnly: a.ShowNewOnly}
	if a.CurrentUser != nil {
		resp.User = &UserResponse{Username: a.CurrentUser.Username, IsAdmin: a.CurrentUser.IsAdmin}
	}
	return resp
}

type SortRequest struct {
	Sort state.Sort `json:"sort"`
}

type AddToCartRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// ProductRequest accepts price as a JSON number or a string.
type ProductRequest struct {
	Name        *string         `json:"name"`
	Category    *string         `json:"category"`
	Price       json.RawMessage `json:"price"`
	Image       *string         `json:"image"`
	IsNew       bool            `json:"isNew"`
	Description *string         `json:"description"`
}

var ErrPriceType = errors.New("price must be a number or a string")

func (r ProductRequest) Input() (service.ProductInput, error) {
	in := service.ProductInput{
		Name:        r.Name,
		Category:    r.Category,
		Image:       r.Image,
		IsNew:       r.IsNew,
		Description: r.Description,
	}

	raw := bytes.TrimSpace(r.Price)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return service.ProductInput{}, ErrPriceType
		}
		in.Price = &s
	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		s := string(raw)
		in.Price = &s
	default:
		return service.ProductInput{}, ErrPriceType
	}
	return in, nil
}

type PlaceOrderRequest struct {
	Shipping service.ShippingInput `json:"shipping"`
	Payment  service.PaymentInput  `json:"payment"`
}
