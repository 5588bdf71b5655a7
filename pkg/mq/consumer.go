package mq

import (
	"context"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Delivery struct {
	MessageID   string
	Body        []byte
	Redelivered bool
}

type Handle func(ctx context.Context, d Delivery) error

type Consumer interface {
	Consume(ctx context.Context, prefetch int, queue string, handler Handle) error
}

type RabbitConsumer struct {
	ch *amqp.Channel
}

func NewRabbitConsumer(ch *amqp.Channel) *RabbitConsumer {
	return &RabbitConsumer{ch: ch}
}

func (c *RabbitConsumer) Consume(ctx context.Context, prefetch int, queue string, handler Handle) error {
	if prefetch <= 0 {
		prefetch = 1
	}

	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return err
	}

	deliveries, err := c.ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			_ = c.ch.Cancel("", false)
			time.Sleep(50 * time.Millisecond)
			return ctx.Err()

		case d, ok := <-deliveries:
			if !ok {
				return nil
			}

			err := handler(ctx, Delivery{MessageID: d.MessageId, Body: d.Body, Redelivered: d.Redelivered})
			if err == nil {
				_ = d.Ack(false)
				continue
			}

			_ = d.Nack(false, ShouldRequeue(err))
		}
	}
}

// ShouldRequeue reports whether a handler error marks the delivery as
// retryable.
func ShouldRequeue(err error) bool {
	var te TempError
	return errors.As(err, &te) && te.Temporary()
}
