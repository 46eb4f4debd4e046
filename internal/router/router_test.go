package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		fragment string
		want     Route
	}{
		{"", Route{Kind: Home}},
		{"#", Route{Kind: Home}},
		{"#home", Route{Kind: Home}},
		{"home", Route{Kind: Home}},
		{"#collection", Route{Kind: Collection}},
		{"#collection-Dress", Route{Kind: CollectionCategory, Category: "Dress"}},
		{"#collection-Summer%20Wear", Route{Kind: CollectionCategory, Category: "Summer Wear"}},
		{"#collection-T-Shirts", Route{Kind: CollectionCategory, Category: "T-Shirts"}},
		{"#collection-", Route{Kind: Invalid}},
		{"#collection-%zz", Route{Kind: Invalid}},
		{"#new", Route{Kind: NewArrivals}},
		{"#product-3", Route{Kind: ProductDetail, ID: 3}},
		{"#product-abc", Route{Kind: Invalid}},
		{"#product-0", Route{Kind: Invalid}},
		{"#cart", Route{Kind: Cart}},
		{"#checkout", Route{Kind: Checkout}},
		{"#confirmation", Route{Kind: Confirmation}},
		{"#orders", Route{Kind: Orders}},
		{"#order-12", Route{Kind: OrderDetail, ID: 12}},
		{"#order-", Route{Kind: Invalid}},
		{"#admin", Route{Kind: Admin}},
		{"#login", Route{Kind: Login}},
		{"#register", Route{Kind: Register}},
		{"#nowhere", Route{Kind: Invalid}},
		{"#HOME", Route{Kind: Invalid}},
	}
	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.fragment))
		})
	}
}

func TestFragmentRoundTrip(t *testing.T) {
	for _, f := range []string{"#home", "#collection", "#collection-Summer%20Wear", "#new", "#product-7", "#order-2", "#admin", "#login"} {
		assert.Equal(t, f, Parse(f).Fragment(), f)
	}
	assert.Equal(t, "#home", Route{Kind: Invalid}.Fragment())
}

func TestShowSidebar(t *testing.T) {
	shown := map[string]bool{
		"#home": true, "#collection": true, "#collection-Shoes": true, "#new": true,
		"#cart": false, "#product-1": false, "#admin": false, "#login": false, "#orders": false,
	}
	for f, want := range shown {
		assert.Equal(t, want, Parse(f).ShowSidebar(), f)
	}
}

func TestCategoryMenu(t *testing.T) {
	menu := CategoryMenu([]string{"Shoes", "Dress", "Bags", "Shoes"})

	assert.Equal(t, []MenuEntry{
		{Label: "All", Icon: "📦", Fragment: "#collection"},
		{Label: "Bags", Icon: "📦", Fragment: "#collection-Bags"},
		{Label: "Dress", Icon: "👗", Fragment: "#collection-Dress"},
		{Label: "Shoes", Icon: "👟", Fragment: "#collection-Shoes"},
	}, menu)

	assert.Len(t, CategoryMenu(nil), 1)
}

func TestKindText(t *testing.T) {
	b, err := ProductDetail.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "product", string(b))
}
