package queue

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler consumes one message from an order-events queue. Order events
// may be redelivered, so implementations must tolerate replays. A nil
// return acks the delivery; an error nacks it and the Router decides
// whether it is requeued.
type Handler interface {
	Handle(ctx context.Context, d amqp.Delivery) error
}
