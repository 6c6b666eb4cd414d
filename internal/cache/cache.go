package cache

import (
	"context"
	"errors"
	"strconv"
	"sync"
)

// InvoiceCache stores rendered invoices by order ID. Orders never change, so
// an entry stays valid for as long as the cache keeps it.
type InvoiceCache interface {
	Get(ctx context.Context, orderID int64) (string, error)
	Set(ctx context.Context, orderID int64, invoice string) error
	Delete(ctx context.Context, orderID int64) error
}

var ErrCacheMiss = errors.New("cache miss")

func cacheKey(orderID int64) string {
	return "invoice:" + strconv.FormatInt(orderID, 10)
}

// MemoryCache is the in-process InvoiceCache used when Redis is not configured.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[int64]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[int64]string)}
}

func (m *MemoryCache) Get(_ context.Context, orderID int64) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.entries[orderID]
	if !ok {
		return "", ErrCacheMiss
	}
	return v, nil
}

func (m *MemoryCache) Set(_ context.Context, orderID int64, invoice string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[orderID] = invoice
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, orderID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, orderID)
	return nil
}
