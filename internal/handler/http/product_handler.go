package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/tai160903/viet-coffee-server/internal/product"
)

type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.handleListProducts)
	router.Get("/products/{id}", h.handleGetProduct)
}

func (h *ProductHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to list products")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "id is required")
		return
	}

	p, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("product_id", id).Msg("Failed to get product")

		message := "Failed to get product"
		if mapErrorToStatusCode(err) == http.StatusNotFound {
			message = "Product not found"
		}

		respondWithError(w, mapErrorToStatusCode(err), message)
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}
