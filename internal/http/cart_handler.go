package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type cartService interface {
	Cart(customerID int64) (*domain.Cart, error)
	AddToCart(ctx context.Context, customerID int64, productID string, qty int) (*domain.Cart, error)
	RemoveFromCart(ctx context.Context, customerID int64, productID string) (*domain.Cart, error)
}

type CartHandler struct {
	shop    cartService
	timeout time.Duration
	log     *zap.Logger
}

func NewCartHandler(shop cartService, timeout time.Duration, log *zap.Logger) *CartHandler {
	return &CartHandler{shop: shop, timeout: timeout, log: log}
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	customerID := getCustomerID(r.Context())
	if customerID == 0 {
		respondError(w, h.log, http.StatusUnauthorized, "unauthorized", "missing customer authentication")
		return
	}

	cart, err := h.shop.Cart(customerID)
	if err != nil {
		handleDomainError(w, h.log, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, toCartResponse(cart))
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	customerID := getCustomerID(r.Context())
	if customerID == 0 {
		respondError(w, h.log, http.StatusUnauthorized, "unauthorized", "missing customer authentication")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.ProductID) == "" {
		respondError(w, h.log, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if qty < 1 || qty > 99 {
		respondError(w, h.log, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	cart, err := h.shop.AddToCart(ctx, customerID, req.ProductID, qty)
	if err != nil {
		handleDomainError(w, h.log, err)
		return
	}
	respondJSON(w, h.log, http.StatusCreated, toCartResponse(cart))
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	customerID := getCustomerID(r.Context())
	if customerID == 0 {
		respondError(w, h.log, http.StatusUnauthorized, "unauthorized", "missing customer authentication")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, h.log, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	cart, err := h.shop.RemoveFromCart(ctx, customerID, productID)
	if err != nil {
		handleDomainError(w, h.log, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, toCartResponse(cart))
}
