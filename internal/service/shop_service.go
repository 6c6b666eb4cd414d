package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/metrics"
	"github.com/fjod/go_shop/internal/publisher"
	"github.com/fjod/go_shop/internal/repository"
	"github.com/fjod/go_shop/internal/store"
	"go.uber.org/zap"
)

// session is one customer with their cart.
type session struct {
	customer domain.Customer
	cart     *domain.Cart
}

// ShopService owns the carts, the customers, the order-ID counter and the
// ledger. One instance per process; tests build their own.
type ShopService struct {
	catalog   store.CatalogStore
	ledger    repository.OrderLedger
	publisher publisher.Publisher
	metrics   *metrics.ShopMetrics
	log       *zap.Logger
	now       func() time.Time

	mu          sync.Mutex
	sessions    map[int64]*session
	nextCartID  int64
	nextOrderID int64
}

type Option func(*ShopService)

func WithClock(now func() time.Time) Option {
	return func(s *ShopService) { s.now = now }
}

func WithPublisher(p publisher.Publisher) Option {
	return func(s *ShopService) { s.publisher = p }
}

func WithMetrics(m *metrics.ShopMetrics) Option {
	return func(s *ShopService) { s.metrics = m }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *ShopService) { s.log = log }
}

func NewShopService(catalog store.CatalogStore, ledger repository.OrderLedger, opts ...Option) *ShopService {
	s := &ShopService{
		catalog:     catalog,
		ledger:      ledger,
		log:         zap.NewNop(),
		now:         time.Now,
		sessions:    make(map[int64]*session),
		nextCartID:  1,
		nextOrderID: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ShopService) Catalog() store.CatalogStore {
	return s.catalog
}

// RegisterCustomer opens a session with an empty cart for customer.
func (s *ShopService) RegisterCustomer(customer domain.Customer) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[customer.ID]; exists {
		return nil, fmt.Errorf("%w: %d", ErrCustomerExists, customer.ID)
	}

	cart := domain.NewCart(s.nextCartID)
	s.nextCartID++
	s.sessions[customer.ID] = &session{customer: customer, cart: cart}

	s.log.Debug("customer registered", zap.Int64("customer_id", customer.ID), zap.Int64("cart_id", cart.ID()))
	return cart.Clone(), nil
}

func (s *ShopService) Customer(customerID int64) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(customerID)
	if err != nil {
		return domain.Customer{}, err
	}
	return sess.customer, nil
}

// UpdateAddress changes the customer's address. Orders already placed keep the old one.
func (s *ShopService) UpdateAddress(customerID int64, address string) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(customerID)
	if err != nil {
		return domain.Customer{}, err
	}
	sess.customer.Address = address
	return sess.customer, nil
}

// Cart returns a copy of the customer's cart.
func (s *ShopService) Cart(customerID int64) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(customerID)
	if err != nil {
		return nil, err
	}
	return sess.cart.Clone(), nil
}

// AddToCart takes qty units of the product out of stock and puts a snapshot
// of it into the customer's cart.
func (s *ShopService) AddToCart(ctx context.Context, customerID int64, productID string, qty int) (*domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(customerID)
	if err != nil {
		return nil, err
	}

	product, err := s.catalog.DecrementStock(productID, qty)
	if err != nil {
		return nil, err
	}

	if err := sess.cart.AddProduct(product, qty); err != nil {
		if _, restoreErr := s.catalog.IncrementStock(product.ID, qty); restoreErr != nil {
			s.log.Error("failed to restore stock", zap.String("product_id", product.ID), zap.Error(restoreErr))
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ItemsAdded.Add(float64(qty))
	}
	s.log.Debug("product added to cart",
		zap.Int64("customer_id", customerID),
		zap.String("product_id", product.ID),
		zap.Int("quantity", qty),
		zap.Int("stock_left", product.StockQuantity))

	return sess.cart.Clone(), nil
}

// RemoveFromCart drops the product's line and returns its units to stock.
// Removing a product that is not in the cart changes nothing.
func (s *ShopService) RemoveFromCart(ctx context.Context, customerID int64, productID string) (*domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(customerID)
	if err != nil {
		return nil, err
	}

	line, removed := sess.cart.RemoveProduct(productID)
	if !removed {
		return sess.cart.Clone(), nil
	}

	if _, err := s.catalog.IncrementStock(line.Product.ID, line.Quantity); err != nil {
		// products are never deleted, so this only happens with a broken store
		s.log.Error("failed to return stock", zap.String("product_id", line.Product.ID), zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.ItemsRemoved.Add(float64(line.Quantity))
	}

	return sess.cart.Clone(), nil
}

// Checkout turns the customer's cart into the next order, records it in the
// ledger and empties the cart. Order IDs are only consumed by successful
// checkouts.
func (s *ShopService) Checkout(ctx context.Context, customerID int64) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	order, err := s.checkout(ctx, customerID)
	s.mu.Unlock()

	if err != nil {
		s.recordCheckoutFailure(err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.OrdersPlaced.Inc()
		s.metrics.OrderAmount.Observe(order.TotalAmount().InexactFloat64())
	}
	s.log.Info("order placed",
		zap.Int64("order_id", order.ID()),
		zap.Int64("customer_id", customerID),
		zap.Int("lines", len(order.Lines())),
		zap.String("total_amount", order.TotalAmount().StringFixed(2)))

	s.publish(ctx, order)
	return order, nil
}

func (s *ShopService) checkout(ctx context.Context, customerID int64) (*domain.Order, error) {
	sess, err := s.session(customerID)
	if err != nil {
		return nil, err
	}

	// work on a copy so a failing ledger append leaves the cart untouched
	cart := sess.cart.Clone()
	order, err := cart.Checkout(sess.customer, s.now(), s.nextOrderID)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.Append(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to record order: %w", err)
	}

	s.nextOrderID++
	sess.cart.Clear()
	return order, nil
}

func (s *ShopService) publish(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}

	status := "ok"
	if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
		status = "failed"
		s.log.Warn("failed to publish order event", zap.Int64("order_id", order.ID()), zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.EventsPublished.WithLabelValues(status).Inc()
	}
}

func (s *ShopService) recordCheckoutFailure(err error) {
	if s.metrics == nil {
		return
	}
	reason := "internal"
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		reason = "empty_cart"
	case errors.Is(err, domain.ErrTotalMismatch):
		reason = "total_mismatch"
	case errors.Is(err, ErrCustomerNotFound):
		reason = "unknown_customer"
	}
	s.metrics.CheckoutFailures.WithLabelValues(reason).Inc()
}

// Orders returns every placed order in placement order.
func (s *ShopService) Orders(ctx context.Context) ([]*domain.Order, error) {
	return s.ledger.All(ctx)
}

func (s *ShopService) OrdersForCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	if _, err := s.Customer(customerID); err != nil {
		return nil, err
	}
	return s.ledger.ListByCustomer(ctx, customerID)
}

func (s *ShopService) Order(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.ledger.GetByID(ctx, orderID)
}

// session must be called with s.mu held.
func (s *ShopService) session(customerID int64) (*session, error) {
	sess, ok := s.sessions[customerID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrCustomerNotFound, customerID)
	}
	return sess, nil
}
