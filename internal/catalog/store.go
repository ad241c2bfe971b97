package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("catalog: product not found")

// CategoryAll is the pseudo-category that matches every product.
const CategoryAll = "All"

//go:embed products.yml
var seedData []byte

// Store holds the immutable product list for the whole process. It is safe
// for concurrent reads; there are no writes after construction.
type Store struct {
	products []Product
	byID     map[string]int
}

type seedProduct struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Price        string   `yaml:"price"`
	Image        string   `yaml:"image"`
	Category     string   `yaml:"category"`
	Sizes        []string `yaml:"sizes"`
	Colors       []string `yaml:"colors"`
	IsNew        bool     `yaml:"is_new"`
	IsBestseller bool     `yaml:"is_bestseller"`
}

// NewStore builds the store from the embedded seed file.
func NewStore() (*Store, error) {
	return NewStoreFromYAML(seedData)
}

// NewStoreFromYAML builds a store from YAML product data.
func NewStoreFromYAML(data []byte) (*Store, error) {
	var seeds []seedProduct
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("catalog: failed to parse product data: %w", err)
	}
	if len(seeds) == 0 {
		return nil, errors.New("catalog: product data is empty")
	}

	s := &Store{
		products: make([]Product, 0, len(seeds)),
		byID:     make(map[string]int, len(seeds)),
	}

	for _, seed := range seeds {
		if seed.ID == "" {
			return nil, fmt.Errorf("catalog: product %q has no id", seed.Name)
		}
		if _, exists := s.byID[seed.ID]; exists {
			return nil, fmt.Errorf("catalog: duplicate product id %q", seed.ID)
		}

		price, err := decimal.NewFromString(seed.Price)
		if err != nil {
			return nil, fmt.Errorf("catalog: invalid price %q for product %q: %w", seed.Price, seed.ID, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("catalog: negative price for product %q", seed.ID)
		}

		s.byID[seed.ID] = len(s.products)
		s.products = append(s.products, Product{
			ID:           seed.ID,
			Name:         seed.Name,
			Price:        price,
			Image:        seed.Image,
			Category:     seed.Category,
			Sizes:        seed.Sizes,
			Colors:       seed.Colors,
			IsNew:        seed.IsNew,
			IsBestseller: seed.IsBestseller,
		})
	}

	return s, nil
}

// List returns all products in catalog order.
func (s *Store) List() []Product {
	return append([]Product(nil), s.products...)
}

// GetByID returns the product with the given id or ErrNotFound.
func (s *Store) GetByID(id string) (Product, error) {
	idx, ok := s.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return s.products[idx], nil
}

// ByCategory returns products with a matching category label. An empty
// category or CategoryAll returns the full list.
func (s *Store) ByCategory(category string) []Product {
	if category == "" || category == CategoryAll {
		return s.List()
	}

	var out []Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// NewArrivals returns products flagged as new, in catalog order.
func (s *Store) NewArrivals() []Product {
	var out []Product
	for _, p := range s.products {
		if p.IsNew {
			out = append(out, p)
		}
	}
	return out
}

// Bestsellers returns products flagged as bestsellers, in catalog order.
func (s *Store) Bestsellers() []Product {
	var out []Product
	for _, p := range s.products {
		if p.IsBestseller {
			out = append(out, p)
		}
	}
	return out
}
