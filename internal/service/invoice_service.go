package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/fjod/go_shop/internal/cache"
	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/invoice"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type orderSource interface {
	Order(ctx context.Context, orderID int64) (*domain.Order, error)
}

// InvoiceService serves rendered invoices, caching them by order ID.
type InvoiceService struct {
	orders orderSource
	cache  cache.InvoiceCache
	log    *zap.Logger
	sfg    singleflight.Group // Prevents cache stampede
}

func NewInvoiceService(orders orderSource, c cache.InvoiceCache, log *zap.Logger) *InvoiceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &InvoiceService{orders: orders, cache: c, log: log}
}

func (s *InvoiceService) Invoice(ctx context.Context, orderID int64) (string, error) {
	v, err, _ := s.sfg.Do(strconv.FormatInt(orderID, 10), func() (interface{}, error) {
		text, err := s.cache.Get(ctx, orderID)
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("invoice cache get error", zap.Int64("order_id", orderID), zap.Error(err))
		}

		order, err := s.orders.Order(ctx, orderID)
		if err != nil {
			return nil, err
		}
		text = invoice.RenderOrder(order)

		go func() {
			setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.Set(setCtx, orderID, text); err != nil {
				s.log.Warn("invoice cache set error", zap.Int64("order_id", orderID), zap.Error(err))
			}
		}()

		return text, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
