package cart

import "github.com/shopspring/decimal"

// Line is one (product, size, color) combination reserved in a cart. Display
// fields are snapshotted from the catalog at add time so later catalog edits
// never change what the customer already reserved.
type Line struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	Quantity  int             `json:"quantity"`
}

// matches reports whether the line is identified by the given tuple. An empty
// size or color means "no selection" and only matches another empty value.
func (l Line) matches(productID, size, color string) bool {
	return l.ProductID == productID && l.Size == size && l.Color == color
}

// Subtotal is the line's unit price multiplied by its quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
