package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mmbm-clothing/storefront/internal/cart"
	"github.com/mmbm-clothing/storefront/internal/catalog"
	"github.com/mmbm-clothing/storefront/internal/selection"
)

type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartLineResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Image     string `json:"image"`
	Category  string `json:"category"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Count int                `json:"count"`
	Total string             `json:"total"`
}

// CartHandler serves the session-scoped cart.
type CartHandler struct {
	store    *catalog.Store
	sessions *cart.Sessions
}

func NewCartHandler(store *catalog.Store, sessions *cart.Sessions) *CartHandler {
	return &CartHandler{store: store, sessions: sessions}
}

func (h *CartHandler) RegisterRoutes(router chi.Router) {
	router.Get("/cart", h.handleGetCart)
	router.Post("/cart/items", h.handleAddItem)
	router.Put("/cart/items/{productID}", h.handleUpdateQuantity)
	router.Delete("/cart/items/{productID}", h.handleRemoveItem)
	router.Delete("/cart", h.handleClearCart)
}

func (h *CartHandler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	view := h.cartView(r)
	respondWithJSON(w, http.StatusOK, view)
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to decode add-item request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.ProductID == "" {
		respondWithError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	product, err := h.store.GetByID(req.ProductID)
	if err != nil {
		log.Warn().Err(err).Str("product_id", req.ProductID).Msg("Failed to add unknown product")
		respondWithError(w, mapErrorToStatusCode(err), "Product not found")
		return
	}

	err = h.sessions.With(sessionID(r.Context()), func(c *cart.Cart) error {
		resolver := selection.NewResolver(c.Add)
		resolver.Open(product)

		if resolver.State() != selection.AwaitingSelection {
			return nil
		}

		if req.Size != "" {
			if err := resolver.ChooseSize(req.Size); err != nil {
				return err
			}
		}
		if req.Color != "" {
			if err := resolver.ChooseColor(req.Color); err != nil {
				return err
			}
		}
		return resolver.Confirm()
	})
	if err != nil {
		log.Warn().Err(err).Str("product_id", req.ProductID).Msg("Failed to add item to cart")
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, h.cartView(r))
}

func (h *CartHandler) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req UpdateQuantityRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to decode update-quantity request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	_ = h.sessions.With(sessionID(r.Context()), func(c *cart.Cart) error {
		c.UpdateQuantity(productID, req.Quantity)
		return nil
	})

	respondWithJSON(w, http.StatusOK, h.cartView(r))
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	_ = h.sessions.With(sessionID(r.Context()), func(c *cart.Cart) error {
		c.Remove(productID)
		return nil
	})

	respondWithJSON(w, http.StatusOK, h.cartView(r))
}

func (h *CartHandler) handleClearCart(w http.ResponseWriter, r *http.Request) {
	_ = h.sessions.With(sessionID(r.Context()), func(c *cart.Cart) error {
		c.Clear()
		return nil
	})

	respondWithJSON(w, http.StatusOK, h.cartView(r))
}

func (h *CartHandler) cartView(r *http.Request) CartResponse {
	view := CartResponse{Items: []CartLineResponse{}}

	_ = h.sessions.With(sessionID(r.Context()), func(c *cart.Cart) error {
		for _, l := range c.Lines() {
			view.Items = append(view.Items, CartLineResponse{
				ProductID: l.ProductID,
				Name:      l.Name,
				Price:     l.Price.StringFixed(2),
				Image:     l.Image,
				Category:  l.Category,
				Size:      l.Size,
				Color:     l.Color,
				Quantity:  l.Quantity,
				Subtotal:  l.Subtotal().StringFixed(2),
			})
		}
		view.Count = c.Count()
		view.Total = c.Total().StringFixed(2)
		return nil
	})

	return view
}
