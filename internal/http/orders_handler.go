package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ordersService interface {
	OrdersForCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error)
	Order(ctx context.Context, orderID int64) (*domain.Order, error)
}

type invoiceProvider interface {
	Invoice(ctx context.Context, orderID int64) (string, error)
}

type OrdersHandler struct {
	orders   ordersService
	invoices invoiceProvider
	timeout  time.Duration
	log      *zap.Logger
}

func NewOrdersHandler(orders ordersService, invoices invoiceProvider, timeout time.Duration, log *zap.Logger) *OrdersHandler {
	return &OrdersHandler{
		orders:   orders,
		invoices: invoices,
		timeout:  timeout,
		log:      log,
	}
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	customerID := getCustomerID(r.Context())
	if customerID == 0 {
		respondError(w, h.log, http.StatusUnauthorized, "unauthorized", "missing customer authentication")
		return
	}

	orders, err := h.orders.OrdersForCustomer(ctx, customerID)
	if err != nil {
		handleDomainError(w, h.log, err)
		return
	}

	dtos := make([]OrderResponseDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, toOrderResponse(o))
	}
	respondJSON(w, h.log, http.StatusOK, dtos)
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, ok := h.ownedOrder(ctx, w, r)
	if !ok {
		return
	}
	respondJSON(w, h.log, http.StatusOK, toOrderResponse(order))
}

// GET /api/v1/orders/{order_id}/invoice
func (h *OrdersHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, ok := h.ownedOrder(ctx, w, r)
	if !ok {
		return
	}

	text, err := h.invoices.Invoice(ctx, order.ID())
	if err != nil {
		handleDomainError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		h.log.Warn("failed to write invoice", zap.Int64("order_id", order.ID()), zap.Error(err))
	}
}

// ownedOrder resolves {order_id} and hides orders of other customers behind 404.
func (h *OrdersHandler) ownedOrder(ctx context.Context, w http.ResponseWriter, r *http.Request) (*domain.Order, bool) {
	customerID := getCustomerID(r.Context())
	if customerID == 0 {
		respondError(w, h.log, http.StatusUnauthorized, "unauthorized", "missing customer authentication")
		return nil, false
	}

	raw := chi.URLParam(r, "order_id")
	orderID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || orderID <= 0 {
		respondError(w, h.log, http.StatusBadRequest, "invalid_order_id", "order_id must be a positive integer")
		return nil, false
	}

	order, err := h.orders.Order(ctx, orderID)
	if err != nil {
		handleDomainError(w, h.log, err)
		return nil, false
	}
	if order.Customer().ID != customerID {
		respondError(w, h.log, http.StatusNotFound, "order_not_found", "order "+raw+" not found")
		return nil, false
	}
	return order, true
}
