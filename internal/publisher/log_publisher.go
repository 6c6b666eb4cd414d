package publisher

import (
	"context"
	"time"

	"github.com/fjod/go_shop/internal/domain"
	"go.uber.org/zap"
)

// LogPublisher writes events to the log. Used when no broker is configured.
type LogPublisher struct {
	log      *zap.Logger
	currency string
	now      func() time.Time
}

func NewLogPublisher(log *zap.Logger, currency string) *LogPublisher {
	return &LogPublisher{log: log, currency: currency, now: time.Now}
}

func (p *LogPublisher) PublishOrderPlaced(_ context.Context, order *domain.Order) error {
	ev := NewOrderPlacedEvent(order, p.currency, p.now())
	p.log.Info("order event",
		zap.String("event_type", ev.EventType),
		zap.String("event_id", ev.EventID),
		zap.Int64("order_id", ev.OrderID),
		zap.Int64("customer_id", ev.CustomerID),
		zap.Int("items", len(ev.Items)),
		zap.String("total_amount", ev.TotalAmount.StringFixed(2)),
		zap.String("currency", ev.Currency))
	return nil
}

func (p *LogPublisher) Close() error { return nil }
