package cart

import (
	"github.com/shopspring/decimal"

	"github.com/mmbm-clothing/storefront/internal/catalog"
)

// Cart holds the line items of a single browsing session in insertion order.
// It is owned by exactly one session and performs no locking of its own; the
// session registry serializes access at its boundary.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts one unit of the product into the cart. When a line with the same
// (product, size, color) identity already exists its quantity is incremented;
// otherwise a new line is appended with quantity 1, snapshotting the
// product's display fields. Add never fails.
func (c *Cart) Add(p catalog.Product, size, color string) {
	for i := range c.lines {
		if c.lines[i].matches(p.ID, size, color) {
			c.lines[i].Quantity++
			return
		}
	}

	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Category:  p.Category,
		Size:      size,
		Color:     color,
		Quantity:  1,
	})
}

// UpdateQuantity sets the quantity of the first line whose product ID
// matches, regardless of variant. A quantity of zero or less removes that
// line; quantities are never stored negative. Nothing happens when no line
// matches.
//
// Note the asymmetry with Remove: a product held in two sizes has two lines,
// and UpdateQuantity only ever touches the first one. Callers that need
// per-variant updates must remove the product and re-add the variant they
// want.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = quantity
		}
		return
	}
}

// Remove deletes every line with the given product ID, regardless of
// selected size or color. Removal acts at product granularity even though
// Add acts at variant granularity; that is deliberate. Nothing happens when
// no line matches.
func (c *Cart) Remove(productID string) {
	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	c.lines = kept
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.lines = nil
}

// Count is the sum of quantities across all lines, recomputed on every call.
func (c *Cart) Count() int {
	count := 0
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Total is the sum of price multiplied by quantity across all lines,
// recomputed on every call so it can never drift from the line data.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}
