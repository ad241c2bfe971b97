package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/mmbm-clothing/storefront/internal/cart"
	"github.com/mmbm-clothing/storefront/internal/order"
)

type CheckoutResponse struct {
	Order      *order.Order `json:"order"`
	HandoffURL string       `json:"handoff_url,omitempty"`
}

// CheckoutHandler turns the session's cart into a finished order.
type CheckoutHandler struct {
	sessions *cart.Sessions
	composer *order.Composer
}

func NewCheckoutHandler(sessions *cart.Sessions, composer *order.Composer) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions, composer: composer}
}

func (h *CheckoutHandler) RegisterRoutes(router chi.Router) {
	router.Post("/checkout", h.handleCheckout)
}

func (h *CheckoutHandler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var form order.Form

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&form); err != nil {
		log.Warn().Err(err).Msg("Failed to decode checkout request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var (
		placed     *order.Order
		handoffURL string
	)

	err := h.sessions.With(sessionID(r.Context()), func(c *cart.Cart) error {
		o, url, err := h.composer.Submit(r.Context(), c.Lines(), form)
		if err != nil {
			return err
		}

		// The reservation went out; the cart's job is done.
		c.Clear()

		placed = o
		handoffURL = url
		return nil
	})
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:   "Validation failed",
				Details: formatValidationErrors(validationErrors),
			})
			return
		}

		log.Warn().Err(err).Msg("Failed to submit order")

		clientMessage := "Failed to submit order"
		if errors.Is(err, order.ErrEmptyCart) {
			clientMessage = "Cart is empty"
		}
		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusCreated, CheckoutResponse{
		Order:      placed,
		HandoffURL: handoffURL,
	})
}
