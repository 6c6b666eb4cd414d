package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/metrics"
	"github.com/fjod/go_shop/internal/repository"
	"github.com/fjod/go_shop/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = domain.Customer{ID: 1, Name: "Alice Smith", Email: "alice.smith@example.com", Address: "123 Main St"}
	bob   = domain.Customer{ID: 2, Name: "Bob Johnson", Email: "bob.johnson@example.com", Address: "456 Oak Ave"}

	fixedNow = time.Date(2026, 10, 17, 14, 30, 0, 0, time.UTC)
)

type fixture struct {
	svc       *ShopService
	catalog   *store.Catalog
	ledger    *failingLedger
	publisher *mockPublisher
	metrics   *metrics.ShopMetrics
}

func setupService(t *testing.T) *fixture {
	t.Helper()

	catalog, err := store.NewCatalogFrom([]domain.Product{
		{ID: "P001", Name: "Widget", UnitPrice: decimal.RequireFromString("10.00"), StockQuantity: 5, Category: "Tools"},
		{ID: "P002", Name: "Gadget", UnitPrice: decimal.RequireFromString("2.50"), StockQuantity: 100, Category: "Tools"},
		{ID: "P003", Name: "Shirt", UnitPrice: decimal.RequireFromString("25.00"), StockQuantity: 0, Category: "Fashion"},
	})
	require.NoError(t, err)

	ledger := &failingLedger{MemoryLedger: repository.NewMemoryLedger()}
	pub := &mockPublisher{}
	m := metrics.NewShopMetrics(prometheus.NewRegistry())

	svc := NewShopService(catalog, ledger,
		WithClock(func() time.Time { return fixedNow }),
		WithPublisher(pub),
		WithMetrics(m))

	_, err = svc.RegisterCustomer(alice)
	require.NoError(t, err)
	_, err = svc.RegisterCustomer(bob)
	require.NoError(t, err)

	return &fixture{svc: svc, catalog: catalog, ledger: ledger, publisher: pub, metrics: m}
}

func stock(t *testing.T, c *store.Catalog, id string) int {
	t.Helper()
	p, ok := c.FindByID(id)
	require.True(t, ok)
	return p.StockQuantity
}

func TestRegisterCustomer(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.RegisterCustomer(alice)
	assert.ErrorIs(t, err, ErrCustomerExists)

	cart, err := f.svc.RegisterCustomer(domain.Customer{ID: 3, Name: "Carol"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), cart.ID())
	assert.True(t, cart.IsEmpty())
}

func TestAddToCart_Scenario(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	cart, err := f.svc.AddToCart(ctx, alice.ID, "P001", 1)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.00").Equal(cart.TotalPrice()))

	cart, err = f.svc.AddToCart(ctx, alice.ID, "p001", 2)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("30.00").Equal(cart.TotalPrice()))
	require.Equal(t, 1, cart.Len())
	assert.Equal(t, 3, cart.Lines()[0].Quantity)
	assert.Equal(t, 2, stock(t, f.catalog, "P001"))

	order, err := f.svc.Checkout(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("30.00").Equal(order.TotalAmount()))

	cart, err = f.svc.Cart(alice.ID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.TotalPrice().IsZero())
	assert.Equal(t, int64(1), cart.ID())
}

func TestAddToCart_OutOfStock(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	_, err := f.svc.AddToCart(ctx, alice.ID, "P003", 1)
	assert.ErrorIs(t, err, domain.ErrOutOfStock)

	_, err = f.svc.AddToCart(ctx, alice.ID, "P001", 6)
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
	assert.Equal(t, 5, stock(t, f.catalog, "P001"))

	cart, _ := f.svc.Cart(alice.ID)
	assert.True(t, cart.IsEmpty())
}

func TestAddToCart_Errors(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	_, err := f.svc.AddToCart(ctx, alice.ID, "P999", 1)
	assert.ErrorIs(t, err, store.ErrProductNotFound)

	_, err = f.svc.AddToCart(ctx, alice.ID, "P001", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.svc.AddToCart(ctx, 42, "P001", 1)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	assert.Equal(t, 5, stock(t, f.catalog, "P001"))
}

func TestAddToCart_SnapshotSurvivesPriceChange(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	_, err := f.svc.AddToCart(ctx, alice.ID, "P001", 2)
	require.NoError(t, err)

	require.NoError(t, f.catalog.SetPrice("P001", decimal.RequireFromString("99.00")))

	cart, _ := f.svc.Cart(alice.ID)
	assert.True(t, decimal.RequireFromString("20").Equal(cart.TotalPrice()))

	order, err := f.svc.Checkout(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("20").Equal(order.TotalAmount()))

	require.NoError(t, f.catalog.SetPrice("P001", decimal.RequireFromString("1.00")))
	stored, err := f.svc.Order(ctx, order.ID())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10").Equal(stored.Lines()[0].Product.UnitPrice))
}

func TestCart_ReturnsCopy(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	cart, err := f.svc.AddToCart(ctx, alice.ID, "P002", 1)
	require.NoError(t, err)
	require.NoError(t, cart.AddProduct(domain.Product{ID: "X", UnitPrice: decimal.NewFromInt(1)}, 1))

	live, _ := f.svc.Cart(alice.ID)
	assert.Equal(t, 1, live.Len())
}

func TestRemoveFromCart_ReturnsStock(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	_, err := f.svc.AddToCart(ctx, alice.ID, "P001", 3)
	require.NoError(t, err)
	_, err = f.svc.AddToCart(ctx, alice.ID, "P002", 4)
	require.NoError(t, err)

	cart, err := f.svc.RemoveFromCart(ctx, alice.ID, "p001")
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Len())
	assert.True(t, decimal.RequireFromString("10.00").Equal(cart.TotalPrice()))
	assert.Equal(t, 5, stock(t, f.catalog, "P001"))
	assert.Equal(t, 3.0, testutil.ToFloat64(f.metrics.ItemsRemoved))
}

func TestRemoveFromCart_AbsentIsNoop(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	_, err := f.svc.AddToCart(ctx, alice.ID, "P002", 2)
	require.NoError(t, err)

	cart, err := f.svc.RemoveFromCart(ctx, alice.ID, "P001")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("5").Equal(cart.TotalPrice()))
	assert.Equal(t, 5, stock(t, f.catalog, "P001"))
	assert.Equal(t, 98, stock(t, f.catalog, "P002"))
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	_, err := f.svc.Checkout(ctx, alice.ID)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	orders, _ := f.svc.Orders(ctx)
	assert.Empty(t, orders)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CheckoutFailures.WithLabelValues("empty_cart")))

	// a rejected checkout does not consume an order id
	_, err = f.svc.AddToCart(ctx, alice.ID, "P002", 1)
	require.NoError(t, err)
	order, err := f.svc.Checkout(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), order.ID())
}

func TestCheckout_OrderIDsIncreaseAcrossCustomers(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	var ids []int64
	for i, c := range []domain.Customer{alice, bob, alice} {
		_, err := f.svc.AddToCart(ctx, c.ID, "P002", i+1)
		require.NoError(t, err)
		order, err := f.svc.Checkout(ctx, c.ID)
		require.NoError(t, err)
		ids = append(ids, order.ID())
	}

	assert.Equal(t, []int64{1, 2, 3}, ids)
	assert.Equal(t, []int64{1, 2, 3}, f.publisher.published())
	assert.Equal(t, 3.0, testutil.ToFloat64(f.metrics.OrdersPlaced))

	aliceOrders, err := f.svc.OrdersForCustomer(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceOrders, 2)
	assert.Equal(t, int64(3), aliceOrders[1].ID())

	_, err = f.svc.OrdersForCustomer(ctx, 99)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCheckout_OrderMatchesCart(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	_, err := f.svc.AddToCart(ctx, bob.ID, "P002", 7)
	require.NoError(t, err)
	before, err := f.svc.AddToCart(ctx, bob.ID, "P001", 2)
	require.NoError(t, err)

	order, err := f.svc.Checkout(ctx, bob.ID)
	require.NoError(t, err)

	assert.True(t, before.TotalPrice().Equal(order.TotalAmount()))
	assert.Equal(t, before.Lines(), order.Lines())
	assert.Equal(t, bob, order.Customer())
	assert.Equal(t, "2026-10-17", order.Date().Format(domain.DateLayout))
}

func TestCheckout_LedgerFailureKeepsCart(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	_, err := f.svc.AddToCart(ctx, alice.ID, "P001", 1)
	require.NoError(t, err)

	f.ledger.failAppend = true
	_, err = f.svc.Checkout(ctx, alice.ID)
	assert.ErrorIs(t, err, errLedgerDown)

	cart, _ := f.svc.Cart(alice.ID)
	assert.Equal(t, 1, cart.Len())
	assert.Empty(t, f.publisher.published())

	f.ledger.failAppend = false
	order, err := f.svc.Checkout(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), order.ID())
}

func TestCheckout_PublishFailureDoesNotFailCheckout(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()
	f.publisher.err = errors.New("broker down")

	_, err := f.svc.AddToCart(ctx, alice.ID, "P001", 1)
	require.NoError(t, err)

	order, err := f.svc.Checkout(ctx, alice.ID)
	require.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.EventsPublished.WithLabelValues("failed")))
}

func TestUpdateAddress_DoesNotTouchPlacedOrders(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	_, err := f.svc.AddToCart(ctx, alice.ID, "P002", 1)
	require.NoError(t, err)
	order, err := f.svc.Checkout(ctx, alice.ID)
	require.NoError(t, err)

	updated, err := f.svc.UpdateAddress(alice.ID, "9 New Rd")
	require.NoError(t, err)
	assert.Equal(t, "9 New Rd", updated.Address)
	assert.Equal(t, "123 Main St", order.Customer().Address)

	_, err = f.svc.UpdateAddress(77, "x")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCanceledContext(t *testing.T) {
	f := setupService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.AddToCart(ctx, alice.ID, "P001", 1)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = f.svc.Checkout(ctx, alice.ID)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 5, stock(t, f.catalog, "P001"))
}

func TestConcurrentShopping(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	customers := make([]int64, 0, 20)
	for i := int64(10); i < 30; i++ {
		_, err := f.svc.RegisterCustomer(domain.Customer{ID: i})
		require.NoError(t, err)
		customers = append(customers, i)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var ids []int64
	for _, id := range customers {
		wg.Add(1)
		go func(customerID int64) {
			defer wg.Done()
			if _, err := f.svc.AddToCart(ctx, customerID, "P002", 5); err != nil {
				return
			}
			order, err := f.svc.Checkout(ctx, customerID)
			if err != nil {
				return
			}
			mu.Lock()
			ids = append(ids, order.ID())
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	// 100 units in stock, 5 per customer: all 20 succeed, nothing oversold
	assert.Len(t, ids, 20)
	assert.Equal(t, 0, stock(t, f.catalog, "P002"))

	seen := make(map[int64]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate order id %d", id)
		seen[id] = true
		assert.True(t, id >= 1 && id <= 20)
	}
}
