// Package kafka publishes order events for downstream consumers
// (notifications, fulfilment). Publishing is best-effort: a broker outage
// must never fail a committed checkout.
package kafka

import (
	"context"
	"encoding/json"

	"bookstore-api/models"

	"github.com/segmentio/kafka-go"
)

// ProducerAPI abstracts the producer so services can be tested without a
// broker.
type ProducerAPI interface {
	PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error
	Close() error
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{writer: writer}
}

func (p *Producer) PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error {
	event.Event = "order.placed"
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID.String()),
		Value: data,
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
