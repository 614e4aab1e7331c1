package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/juhyeon1114/jpashop/internal/usecase"
)

const (
	exchangeName     = "order.events"
	placedRoutingKey = "order.placed"
	cancelRoutingKey = "order.cancelled"
	placedQueueName  = "order.placed.q"
	cancelQueueName  = "order.cancelled.q"
)

// OrderEventsProducer implements usecase.OrderQueue.
type OrderEventsProducer struct {
	ch *amqp.Channel
}

// NewOrderEventsProducer sets up the exchange, queues, and bindings once at startup.
func NewOrderEventsProducer(ch *amqp.Channel) (*OrderEventsProducer, error) {
	if err := ch.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	bindings := []struct{ queue, key string }{
		{placedQueueName, placedRoutingKey},
		{cancelQueueName, cancelRoutingKey},
	}
	for _, b := range bindings {
		q, err := ch.QueueDeclare(
			b.queue,
			true,  // durable
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("declare queue %s: %w", b.queue, err)
		}
		if err := ch.QueueBind(q.Name, b.key, exchangeName, false, nil); err != nil {
			return nil, fmt.Errorf("bind queue %s: %w", b.queue, err)
		}
	}

	// publisher confirms
	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("enable confirm mode: %w", err)
	}

	return &OrderEventsProducer{ch: ch}, nil
}

func (p *OrderEventsProducer) PublishPlaced(ctx context.Context, msg usecase.OrderPlacedMsg) error {
	return p.publish(ctx, placedRoutingKey, msg)
}

func (p *OrderEventsProducer) PublishCancelled(ctx context.Context, msg usecase.OrderCancelledMsg) error {
	return p.publish(ctx, cancelRoutingKey, msg)
}

func (p *OrderEventsProducer) publish(ctx context.Context, routingKey string, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // survive broker restarts
		Body:         body,
	}

	if err := p.ch.PublishWithContext(
		ctx,
		exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		pub,
	); err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}

var _ usecase.OrderQueue = (*OrderEventsProducer)(nil)
