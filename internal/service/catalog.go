package service

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/state"
)

const PlaceholderImage = "https://via.placeholder.com/200?text=No+Image"

const searchLimit = 50

// ProductInput carries admin form fields. A nil pointer means the field was not sent.
type ProductInput struct {
	Name        *string
	Category    *string
	Price       *string
	Image       *string
	IsNew       bool
	Description *string
}

type ListOptions struct {
	Category string
	NewOnly  bool
	Sort     state.Sort
}

type CatalogService struct {
	App    *state.App
	Events EventPublisher
	Index  ProductIndex
}

func parsePrice(raw string) (decimal.Decimal, bool) {
	p, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || p.IsNegative() {
		return decimal.Decimal{}, false
	}
	return p, true
}

func (s *CatalogService) AddProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	if in.Name == nil || *in.Name == "" || in.Category == nil || *in.Category == "" || in.Price == nil || in.Image == nil {
		return models.Product{}, fail(ErrValidation, "Please fill out all product fields.")
	}
	price, ok := parsePrice(*in.Price)
	if !ok {
		return models.Product{}, fail(ErrValidation, "Please enter a valid price.")
	}

	p := models.Product{
		ID:       s.App.NextProductID(),
		Name:     *in.Name,
		Category: *in.Category,
		Price:    price,
		Image:    *in.Image,
		IsNew:    in.IsNew,
	}
	if p.Image == "" {
		p.Image = PlaceholderImage
	}
	if in.Description != nil {
		p.Description = *in.Description
	}

	products := append(append([]models.Product{}, s.App.Products...), p)
	s.App.PutProducts(ctx, products)

	s.mirror(ctx, p)
	publish(ctx, s.Events, events.ProductCreated, s.App.Identity(), p)
	return p, nil
}

// UpdateProduct overwrites the non-empty supplied fields. IsNew is always taken
// from the input.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int, in ProductInput) (models.Product, error) {
	idx := -1
	for i, p := range s.App.Products {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Product{}, fail(ErrNotFound, "Product not found.")
	}

	p := s.App.Products[idx]
	if in.Price != nil {
		price, ok := parsePrice(*in.Price)
		if !ok {
			return models.Product{}, fail(ErrValidation, "Invalid price value.")
		}
		p.Price = price
	}
	if in.Name != nil && *in.Name != "" {
		p.Name = *in.Name
	}
	if in.Category != nil && *in.Category != "" {
		p.Category = *in.Category
	}
	if in.Image != nil && *in.Image != "" {
		p.Image = *in.Image
	}
	if in.Description != nil && *in.Description != "" {
		p.Description = *in.Description
	}
	p.IsNew = in.IsNew

	products := append([]models.Product{}, s.App.Products...)
	products[idx] = p
	s.App.PutProducts(ctx, products)

	s.mirror(ctx, p)
	publish(ctx, s.Events, events.ProductUpdated, s.App.Identity(), p)
	return p, nil
}

// DeleteProduct removes the product if present. Orders keep their snapshots.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int) {
	products := make([]models.Product, 0, len(s.App.Products))
	for _, p := range s.App.Products {
		if p.ID != id {
			products = append(products, p)
		}
	}
	s.App.PutProducts(ctx, products)

	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_delete_failed", "product_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, events.ProductDeleted, s.App.Identity(), map[string]int{"id": id})
}

func (s *CatalogService) mirror(ctx context.Context, p models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "product_id", p.ID, "error", err)
	}
}

func (s *CatalogService) Product(id int) (models.Product, error) {
	p, ok := s.App.FindProduct(id)
	if !ok {
		return models.Product{}, fail(ErrNotFound, "Product not found.")
	}
	return p, nil
}

// List filters by category and new flag, then orders by opts.Sort.
func (s *CatalogService) List(opts ListOptions) []models.Product {
	out := make([]models.Product, 0, len(s.App.Products))
	for _, p := range s.App.Products {
		if opts.Category != "" && p.Category != opts.Category {
			continue
		}
		if opts.NewOnly && !p.IsNew {
			continue
		}
		out = append(out, p)
	}
	SortProducts(out, opts.Sort)
	return out
}

func (s *CatalogService) NewArrivals() []models.Product {
	out := []models.Product{}
	for _, p := range s.App.Products {
		if p.IsNew {
			out = append(out, p)
		}
	}
	return out
}

func SortProducts(ps []models.Product, by state.Sort) {
	var less func(a, b models.Product) bool
	switch by {
	case state.SortPriceDesc:
		less = func(a, b models.Product) bool { return a.Price.GreaterThan(b.Price) }
	case state.SortNameAsc:
		less = func(a, b models.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case state.SortNameDesc:
		less = func(a, b models.Product) bool { return strings.ToLower(a.Name) > strings.ToLower(b.Name) }
	default:
		less = func(a, b models.Product) bool { return a.Price.LessThan(b.Price) }
	}
	sort.SliceStable(ps, func(i, j int) bool { return less(ps[i], ps[j]) })
}

// Categories returns the distinct product categories in alphabetical order.
func (s *CatalogService) Categories() []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, p := range s.App.Products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

func (s *CatalogService) SetSort(by state.Sort) error {
	if !by.Valid() {
		return fail(ErrValidation, "Unknown sort order.")
	}
	s.App.CurrentSort = by
	return nil
}

// Search queries the index when one is configured and falls back to a
// case-insensitive substring match over the catalog.
func (s *CatalogService) Search(ctx context.Context, q string) ([]models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fail(ErrValidation, "Please enter a search term.")
	}

	if s.Index != nil {
		ids, err := s.Index.SearchIDs(ctx, q, searchLimit)
		if err == nil {
			out := make([]models.Product, 0, len(ids))
			for _, id := range ids {
				if p, ok := s.App.FindProduct(id); ok {
					out = append(out, p)
				}
			}
			return out, nil
		}
		logging.FromContext(ctx).Warn("search_query_failed", "query", q, "error", err)
	}

	needle := strings.ToLower(q)
	out := []models.Product{}
	for _, p := range s.App.Products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}
