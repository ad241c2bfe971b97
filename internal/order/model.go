package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmbm-clothing/storefront/internal/cart"
)

type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryDelivery DeliveryMethod = "delivery"
)

type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "cash"
	PaymentMobileMoney PaymentMethod = "momo"
)

// Form is the buyer-supplied checkout input. Name and phone are always
// required; the address only when the order is delivered.
type Form struct {
	Name           string         `json:"name" validate:"required"`
	Phone          string         `json:"phone" validate:"required"`
	Email          string         `json:"email" validate:"omitempty,email"`
	DeliveryMethod DeliveryMethod `json:"delivery_method" validate:"required,oneof=pickup delivery"`
	Address        string         `json:"address" validate:"required_if=DeliveryMethod delivery"`
	PaymentMethod  PaymentMethod  `json:"payment_method" validate:"required,oneof=cash momo"`
	Notes          string         `json:"notes"`
}

// Order is the point-in-time snapshot built at submission. It is not
// persisted anywhere: it exists to build the outbound message and the
// on-screen receipt, then gets discarded.
type Order struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email,omitempty"`
	DeliveryMethod DeliveryMethod  `json:"delivery_method"`
	Address        string          `json:"address,omitempty"`
	PaymentMethod  PaymentMethod   `json:"payment_method"`
	Notes          string          `json:"notes,omitempty"`
	Items          []cart.Line     `json:"items"`
	Total          decimal.Decimal `json:"total"`
	CreatedAt      time.Time       `json:"created_at"`
}
