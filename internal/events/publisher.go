package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-backoffice/internal/domain"
)

const ordersExchange = "orders_topic"

// Publisher notifies downstream consumers (kitchen displays, notification
// senders) about order lifecycle events. Publishing is best-effort from the
// core's point of view: callers log failures and move on.
type Publisher interface {
	PublishOrderEvent(ctx context.Context, event string, order domain.Order) error
	Close()
}

type orderEvent struct {
	Event      string             `json:"event"`
	OrderID    int64              `json:"order_id"`
	UserID     int64              `json:"user_id"`
	Status     domain.OrderStatus `json:"status"`
	FullPrice  float64            `json:"full_price"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type AMQPPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Dial(host string, port int, user, pass string) (*AMQPPublisher, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%d/", user, pass, host, port)
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(ordersExchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

func (p *AMQPPublisher) PublishOrderEvent(ctx context.Context, event string, order domain.Order) error {
	body, err := json.Marshal(orderEvent{
		Event:      event,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		FullPrice:  order.FullPrice,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}
	key := fmt.Sprintf("orders.%s.%s", event, order.Status)
	return p.ch.PublishWithContext(ctx, ordersExchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

func (p *AMQPPublisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// Noop is used when no broker is configured, and in tests.
type Noop struct{}

func (Noop) PublishOrderEvent(context.Context, string, domain.Order) error { return nil }
func (Noop) Close()                                                        {}
