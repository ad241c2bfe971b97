// Package messaging is the hand-off boundary for finalized orders. The
// channel is opaque: the core gives it text, gets back something the client
// can open, and never learns whether anything was delivered.
package messaging

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// Channel transmits a composed order message to an external messaging
// application. Delivery is fire-and-forget: no acknowledgment ever comes
// back, and implementations must not retry.
type Channel interface {
	// Send hands the text to the channel and returns a URL the customer's
	// client can open to complete the hand-off.
	Send(ctx context.Context, text string) (string, error)
}

// WhatsApp composes wa.me deep links carrying the order message. Opening the
// link is the client's job; this side performs no outbound call.
type WhatsApp struct {
	phone string
}

// NewWhatsApp creates a channel targeting the given destination phone
// number. The number must be in international format; spaces, dashes and a
// leading plus are tolerated and stripped.
func NewWhatsApp(phone string) (*WhatsApp, error) {
	cleaned := strings.NewReplacer(" ", "", "-", "", "+", "").Replace(phone)
	if cleaned == "" {
		return nil, errors.New("messaging: whatsapp phone number is required")
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return nil, errors.New("messaging: whatsapp phone number must contain only digits")
		}
	}
	return &WhatsApp{phone: cleaned}, nil
}

// Send builds the deep link with the message URL-encoded into the text
// query parameter.
func (w *WhatsApp) Send(_ context.Context, text string) (string, error) {
	u := url.URL{
		Scheme:   "https",
		Host:     "wa.me",
		Path:     "/" + w.phone,
		RawQuery: url.Values{"text": {text}}.Encode(),
	}
	return u.String(), nil
}
