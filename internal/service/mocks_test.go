package service

import (
	"context"
	"errors"
	"sync"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/repository"
)

var errLedgerDown = errors.New("ledger unavailable")

// failingLedger wraps a real ledger and fails Append while failAppend is set.
type failingLedger struct {
	*repository.MemoryLedger
	failAppend bool
}

func (l *failingLedger) Append(ctx context.Context, order *domain.Order) error {
	if l.failAppend {
		return errLedgerDown
	}
	return l.MemoryLedger.Append(ctx, order)
}

type mockPublisher struct {
	mu     sync.Mutex
	orders []int64
	err    error
}

func (p *mockPublisher) PublishOrderPlaced(_ context.Context, order *domain.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.orders = append(p.orders, order.ID())
	return nil
}

func (p *mockPublisher) Close() error { return nil }

func (p *mockPublisher) published() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]int64, len(p.orders))
	copy(out, p.orders)
	return out
}

type mockOrderSource struct {
	mu     sync.Mutex
	order  *domain.Order
	err    error
	called int
}

func (m *mockOrderSource) Order(_ context.Context, _ int64) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.called++
	return m.order, m.err
}

func (m *mockOrderSource) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.called
}
