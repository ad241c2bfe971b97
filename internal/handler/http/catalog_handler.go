package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mmbm-clothing/storefront/internal/catalog"
)

// CatalogHandler serves the read-only product catalog.
type CatalogHandler struct {
	store *catalog.Store
}

func NewCatalogHandler(store *catalog.Store) *CatalogHandler {
	return &CatalogHandler{store: store}
}

func (h *CatalogHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.handleListProducts)
	router.Get("/products/{id}", h.handleGetProduct)
}

func (h *CatalogHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var products []catalog.Product
	switch {
	case q.Get("new") == "1":
		products = h.store.NewArrivals()
	case q.Get("bestsellers") == "1":
		products = h.store.Bestsellers()
	default:
		products = h.store.ByCategory(q.Get("category"))
	}

	if products == nil {
		products = []catalog.Product{}
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.store.GetByID(id)
	if err != nil {
		log.Warn().Err(err).Str("product_id", id).Msg("Failed to get product")
		respondWithError(w, mapErrorToStatusCode(err), "Product not found")
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}
