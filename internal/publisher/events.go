package publisher

import (
	"context"
	"time"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const EventOrderPlaced = "order.placed"

// Publisher announces placed orders to the outside world.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, order *domain.Order) error
	Close() error
}

type OrderPlacedItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type OrderPlacedEvent struct {
	EventID     string            `json:"event_id"`
	EventType   string            `json:"event_type"`
	OrderID     int64             `json:"order_id"`
	CustomerID  int64             `json:"customer_id"`
	OrderDate   string            `json:"order_date"`
	Items       []OrderPlacedItem `json:"items"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Currency    string            `json:"currency"`
	PlacedAt    time.Time         `json:"placed_at"`
}

// NewOrderPlacedEvent builds the event payload for order.
func NewOrderPlacedEvent(order *domain.Order, currency string, placedAt time.Time) OrderPlacedEvent {
	lines := order.Lines()
	items := make([]OrderPlacedItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderPlacedItem{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.Product.UnitPrice,
			Subtotal:    l.Subtotal(),
		})
	}

	return OrderPlacedEvent{
		EventID:     uuid.NewString(),
		EventType:   EventOrderPlaced,
		OrderID:     order.ID(),
		CustomerID:  order.Customer().ID,
		OrderDate:   order.Date().Format(domain.DateLayout),
		Items:       items,
		TotalAmount: order.TotalAmount(),
		Currency:    currency,
		PlacedAt:    placedAt.UTC(),
	}
}
