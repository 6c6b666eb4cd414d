package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/pkg/circuitbreaker"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const DefaultOrdersTopic = "shop-orders"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher sends order events to a Kafka topic behind a circuit breaker.
type KafkaPublisher struct {
	writer   messageWriter
	breaker  *circuitbreaker.Breaker
	timeout  time.Duration
	currency string
	log      *zap.Logger
	now      func() time.Time
}

func NewKafkaPublisher(topic, currency string, log *zap.Logger, brokers ...string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultOrdersTopic
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
	}
	return newKafkaPublisher(w, currency, log)
}

func newKafkaPublisher(w messageWriter, currency string, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer:   w,
		breaker:  circuitbreaker.New("kafka-orders", circuitbreaker.DefaultConfig(), log),
		timeout:  5 * time.Second,
		currency: currency,
		log:      log,
		now:      time.Now,
	}
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	ev := NewOrderPlacedEvent(order, p.currency, p.now())
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.OrderID, 10)), // order id keeps one order on one partition
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.EventType)},
			{Key: "event_id", Value: []byte(ev.EventID)},
		},
	}

	err = p.breaker.Do(func() error {
		writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		return p.writer.WriteMessages(writeCtx, msg)
	})
	if err != nil {
		return fmt.Errorf("publish order %d: %w", ev.OrderID, err)
	}

	p.log.Debug("order event published", zap.Int64("order_id", ev.OrderID), zap.String("event_id", ev.EventID))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
