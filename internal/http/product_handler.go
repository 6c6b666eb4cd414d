package http

import (
	"net/http"

	"github.com/fjod/go_shop/internal/store"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type catalogProvider interface {
	Catalog() store.CatalogStore
}

type ProductHandler struct {
	shop catalogProvider
	log  *zap.Logger
}

func NewProductHandler(shop catalogProvider, log *zap.Logger) *ProductHandler {
	return &ProductHandler{shop: shop, log: log}
}

// GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.log, http.StatusOK, toCatalogResponse(h.shop.Catalog().GroupByCategory()))
}

// GET /api/v1/products/{product_id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	p, ok := h.shop.Catalog().FindByID(productID)
	if !ok {
		respondError(w, h.log, http.StatusNotFound, "product_not_found", "product "+productID+" not found")
		return
	}
	respondJSON(w, h.log, http.StatusOK, toProductResponse(p))
}
