package state

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Skotchmaster/storefront/internal/models"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedProduct struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Price       string `yaml:"price"`
	Image       string `yaml:"image"`
	IsNew       bool   `yaml:"isNew"`
	Description string `yaml:"description"`
}

type seedItem struct {
	ProductID int    `yaml:"productId"`
	Name      string `yaml:"name"`
	Category  string `yaml:"category"`
	Price     string `yaml:"price"`
	Quantity  int    `yaml:"quantity"`
}

type seedOrder struct {
	User     string          `yaml:"user"`
	Items    []seedItem      `yaml:"items"`
	Shipping models.Shipping `yaml:"shipping"`
}

// Seed is the first-run data set: accounts, a catalog and an optional demo order.
type Seed struct {
	Users     []models.User `yaml:"users"`
	Products  []seedProduct `yaml:"products"`
	DemoOrder *seedOrder    `yaml:"demoOrder"`
}

// LoadSeed parses the YAML seed at path, or the embedded default when path is empty.
func LoadSeed(path string) (Seed, error) {
	data := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Seed{}, fmt.Errorf("read seed file: %w", err)
		}
		data = b
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Seed{}, fmt.Errorf("parse seed: %w", err)
	}
	return s, nil
}

func DefaultSeed() Seed {
	s, err := ParseSeed(defaultSeed)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Seed) build(now time.Time) ([]models.User, []models.Product, []models.Order, error) {
	users := append([]models.User{}, s.Users...)

	products := make([]models.Product, 0, len(s.Products))
	for _, p := range s.Products {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("seed product %d: invalid price %q: %w", p.ID, p.Price, err)
		}
		products = append(products, models.Product{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			Price:       price,
			Image:       p.Image,
			IsNew:       p.IsNew,
			Description: p.Description,
		})
	}

	orders := []models.Order{}
	if s.DemoOrder != nil {
		items := make([]models.OrderItem, 0, len(s.DemoOrder.Items))
		for _, it := range s.DemoOrder.Items {
			price, err := decimal.NewFromString(it.Price)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("seed order item %d: invalid price %q: %w", it.ProductID, it.Price, err)
			}
			items = append(items, models.OrderItem{
				ProductID: it.ProductID,
				Name:      it.Name,
				Category:  it.Category,
				Price:     price,
				Quantity:  it.Quantity,
			})
		}
		orders = append(orders, models.Order{
			ID:       1,
			User:     s.DemoOrder.User,
			Date:     now.Format(DateLayout),
			Items:    items,
			Total:    models.SumItems(items),
			Shipping: s.DemoOrder.Shipping,
		})
	}

	return users, products, orders, nil
}
