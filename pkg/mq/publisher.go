package mq

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Message is a single persistent publication. ID is carried as the AMQP
// message id so consumers can deduplicate redeliveries.
type Message struct {
	ID         string
	Exchange   string
	RoutingKey string
	Body       []byte
}

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

type RabbitPublisher struct {
	ch *amqp.Channel
}

func NewRabbitPublisher(ch *amqp.Channel) *RabbitPublisher { return &RabbitPublisher{ch: ch} }

func (r *RabbitPublisher) Publish(ctx context.Context, msg Message) error {
	publishing := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Timestamp:    time.Now().UTC(),
		Body:         msg.Body,
	}

	return r.ch.PublishWithContext(ctx, msg.Exchange, msg.RoutingKey, false, false, publishing)
}

func (r *RabbitPublisher) Close() error {
	if r.ch != nil {
		return r.ch.Close()
	}

	return nil
}
