package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/fjod/go_shop/internal/domain"
)

// MemoryLedger keeps orders in append order for the lifetime of the process.
// Orders are immutable, so handing out the pointers is safe.
type MemoryLedger struct {
	mu     sync.RWMutex
	orders []*domain.Order
	byID   map[int64]*domain.Order
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{byID: make(map[int64]*domain.Order)}
}

func (l *MemoryLedger) Append(ctx context.Context, order *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.byID[order.ID()]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateOrder, order.ID())
	}
	l.orders = append(l.orders, order)
	l.byID[order.ID()] = order
	return nil
}

func (l *MemoryLedger) All(ctx context.Context) ([]*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*domain.Order, len(l.orders))
	copy(out, l.orders)
	return out, nil
}

func (l *MemoryLedger) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	order, exists := l.byID[id]
	if !exists {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (l *MemoryLedger) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*domain.Order, 0)
	for _, o := range l.orders {
		if o.Customer().ID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}
