package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmbm-clothing/storefront/internal/catalog"
)

const testProducts = `
- id: p1
  name: Classic White Shirt
  price: "120.00"
  image: /images/p1.jpg
  category: Men
  sizes: [S, M, L]
  colors: [White]
  is_bestseller: true
- id: p2
  name: Floral Maxi Dress
  price: "220.00"
  image: /images/p2.jpg
  category: Women
  sizes: [S, M]
  is_new: true
- id: p3
  name: Woven Leather Belt
  price: "85.00"
  image: /images/p3.jpg
  category: Accessories
`

func newTestStore(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.NewStoreFromYAML([]byte(testProducts))
	require.NoError(t, err)
	return store
}

func TestNewStore_EmbeddedSeed(t *testing.T) {
	store, err := catalog.NewStore()
	require.NoError(t, err)

	products := store.List()
	assert.NotEmpty(t, products)

	seen := make(map[string]bool, len(products))
	for _, p := range products {
		assert.False(t, seen[p.ID], "duplicate product id %q", p.ID)
		seen[p.ID] = true
		assert.NotEmpty(t, p.Name)
		assert.False(t, p.Price.IsNegative())
	}
}

func TestNewStoreFromYAML_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "bad_yaml", data: "not: [valid"},
		{name: "missing_id", data: "- name: No ID\n  price: \"10\"\n"},
		{name: "duplicate_id", data: "- id: p1\n  price: \"10\"\n- id: p1\n  price: \"20\"\n"},
		{name: "bad_price", data: "- id: p1\n  price: cheap\n"},
		{name: "negative_price", data: "- id: p1\n  price: \"-5\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.NewStoreFromYAML([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestStore_GetByID(t *testing.T) {
	store := newTestStore(t)

	p, err := store.GetByID("p2")
	require.NoError(t, err)
	assert.Equal(t, "Floral Maxi Dress", p.Name)
	assert.Equal(t, "220.00", p.Price.StringFixed(2))

	_, err = store.GetByID("missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestStore_ByCategory(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name     string
		category string
		wantIDs  []string
	}{
		{name: "all_pseudo_category", category: catalog.CategoryAll, wantIDs: []string{"p1", "p2", "p3"}},
		{name: "empty_means_all", category: "", wantIDs: []string{"p1", "p2", "p3"}},
		{name: "men", category: "Men", wantIDs: []string{"p1"}},
		{name: "accessories", category: "Accessories", wantIDs: []string{"p3"}},
		{name: "unknown", category: "Hats", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.ByCategory(tt.category)

			var ids []string
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestStore_FlaggedSections(t *testing.T) {
	store := newTestStore(t)

	arrivals := store.NewArrivals()
	require.Len(t, arrivals, 1)
	assert.Equal(t, "p2", arrivals[0].ID)

	bestsellers := store.Bestsellers()
	require.Len(t, bestsellers, 1)
	assert.Equal(t, "p1", bestsellers[0].ID)
}

func TestProduct_HasVariants(t *testing.T) {
	store := newTestStore(t)

	shirt, err := store.GetByID("p1")
	require.NoError(t, err)
	assert.True(t, shirt.HasVariants())

	belt, err := store.GetByID("p3")
	require.NoError(t, err)
	assert.False(t, belt.HasVariants())
}
