package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/go_shop/internal/domain"
	"go.uber.org/zap"
)

type checkoutService interface {
	Checkout(ctx context.Context, customerID int64) (*domain.Order, error)
}

type CheckoutHandler struct {
	shop    checkoutService
	timeout time.Duration
	log     *zap.Logger
}

func NewCheckoutHandler(shop checkoutService, timeout time.Duration, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{shop: shop, timeout: timeout, log: log}
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	customerID := getCustomerID(r.Context())
	if customerID == 0 {
		respondError(w, h.log, http.StatusUnauthorized, "unauthorized", "missing customer authentication")
		return
	}

	order, err := h.shop.Checkout(ctx, customerID)
	if err != nil {
		handleDomainError(w, h.log, err)
		return
	}

	h.log.Info("order placed",
		zap.Int64("order_id", order.ID()),
		zap.Int64("customer_id", customerID),
		zap.String("request_id", getRequestID(r.Context())))
	respondJSON(w, h.log, http.StatusCreated, toOrderResponse(order))
}
