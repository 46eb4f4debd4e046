package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// prices are persisted as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type User struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	IsAdmin  bool   `json:"isAdmin"  yaml:"isAdmin"`
}

type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	IsNew       bool            `json:"isNew"`
	Description string          `json:"description"`
}

type CartLine struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// OrderItem is a copy of the product at purchase time; ProductID may dangle.
type OrderItem struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

func (it OrderItem) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

type Shipping struct {
	Name    string `json:"name"    yaml:"name"`
	Address string `json:"address" yaml:"address"`
}

type Order struct {
	ID       int             `json:"id"`
	User     string          `json:"user"`
	Date     string          `json:"date"`
	Items    []OrderItem     `json:"items"`
	Total    decimal.Decimal `json:"total"`
	Shipping Shipping        `json:"shipping"`
}

func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}
