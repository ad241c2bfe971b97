package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/mmbm-clothing/storefront/internal/cart"
	"github.com/mmbm-clothing/storefront/internal/messaging"
)

// currencyPrefix is the fixed prefix used for every money amount in the
// composed message.
const currencyPrefix = "GH₵"

// orderIDPrefix marks order identifiers on receipts and in the outbound
// message.
const orderIDPrefix = "MMBM-"

var (
	// ErrEmptyCart means Submit was called with no lines. The surrounding
	// flow redirects away from checkout before this can happen, so hitting
	// it is a caller bug, not a user-facing condition.
	ErrEmptyCart = errors.New("order: cart is empty")

	// ErrInvalidForm wraps the validation failures of a checkout form.
	ErrInvalidForm = errors.New("order: invalid checkout form")
)

// Composer turns a cart snapshot plus buyer details into an order with a
// human-readable message, and hands the message to the external channel.
type Composer struct {
	channel  messaging.Channel
	validate *validator.Validate
	now      func() time.Time
}

// NewComposer creates a composer that hands finished orders to channel.
func NewComposer(channel messaging.Channel) *Composer {
	return &Composer{
		channel:  channel,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Submit validates the form, builds the order snapshot and itemized message,
// and hands the message off. It returns the order for receipt display along
// with the hand-off URL.
//
// The hand-off itself is fire-and-forget: a channel failure is logged and
// the submission still succeeds, because no delivery acknowledgment exists
// in the first place. Validation failures, by contrast, block submission
// entirely: no identifier is generated and nothing is sent.
func (c *Composer) Submit(ctx context.Context, lines []cart.Line, form Form) (*Order, string, error) {
	if len(lines) == 0 {
		return nil, "", ErrEmptyCart
	}

	if err := c.validate.Struct(form); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	now := c.now()

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}

	o := &Order{
		ID:             newOrderID(now),
		Name:           form.Name,
		Phone:          form.Phone,
		Email:          form.Email,
		DeliveryMethod: form.DeliveryMethod,
		Address:        form.Address,
		PaymentMethod:  form.PaymentMethod,
		Notes:          form.Notes,
		Items:          lines,
		Total:          total,
		CreatedAt:      now,
	}

	handoffURL, err := c.channel.Send(ctx, ComposeMessage(o))
	if err != nil {
		log.Warn().Err(err).Str("order_id", o.ID).Msg("order hand-off failed; continuing without it")
	}

	log.Info().
		Str("order_id", o.ID).
		Int("lines", len(lines)).
		Str("total", total.StringFixed(2)).
		Msg("order composed")

	return o, handoffURL, nil
}

// newOrderID derives a compact alphanumeric identifier from the current
// time. Uniqueness is probabilistic (millisecond resolution), which is
// acceptable for a low-volume reservation flow that never deduplicates
// globally.
func newOrderID(now time.Time) string {
	return orderIDPrefix + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
}

// ComposeMessage renders the deterministic, human-readable order summary
// sent through the hand-off channel.
func ComposeMessage(o *Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "New reservation %s\n\n", o.ID)

	for i, l := range o.Items {
		fmt.Fprintf(&b, "%d. %s x%d", i+1, l.Name, l.Quantity)
		if qualifier := variantQualifier(l); qualifier != "" {
			fmt.Fprintf(&b, " (%s)", qualifier)
		}
		fmt.Fprintf(&b, " - %s %s\n", currencyPrefix, l.Subtotal().StringFixed(2))
	}

	fmt.Fprintf(&b, "\nTotal: %s %s\n\n", currencyPrefix, o.Total.StringFixed(2))

	fmt.Fprintf(&b, "Name: %s\n", o.Name)
	fmt.Fprintf(&b, "Phone: %s\n", o.Phone)
	if o.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", o.Email)
	}
	fmt.Fprintf(&b, "Delivery: %s\n", o.DeliveryMethod)
	if o.DeliveryMethod == DeliveryDelivery {
		fmt.Fprintf(&b, "Address: %s\n", o.Address)
	}
	fmt.Fprintf(&b, "Payment: %s\n", o.PaymentMethod)
	if o.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", o.Notes)
	}

	return b.String()
}

// variantQualifier joins the line's selected size and color with a comma,
// omitting whichever axis has no selection. It returns "" when neither is
// set.
func variantQualifier(l cart.Line) string {
	switch {
	case l.Size != "" && l.Color != "":
		return l.Size + ", " + l.Color
	case l.Size != "":
		return l.Size
	case l.Color != "":
		return l.Color
	default:
		return ""
	}
}
