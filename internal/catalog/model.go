package catalog

import "github.com/shopspring/decimal"

// Product is a single catalog entry. Records are immutable once the store is
// built; consumers read them and never write back.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image"`
	Category     string          `json:"category"`
	Sizes        []string        `json:"sizes,omitempty"`
	Colors       []string        `json:"colors,omitempty"`
	IsNew        bool            `json:"is_new,omitempty"`
	IsBestseller bool            `json:"is_bestseller,omitempty"`
}

// HasVariants reports whether the product offers at least one size or color
// option and therefore needs an explicit selection before it can be added to
// a cart.
func (p Product) HasVariants() bool {
	return len(p.Sizes) > 0 || len(p.Colors) > 0
}
