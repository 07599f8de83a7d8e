// Package publisher hands committed outbox events to Kafka.
package publisher

import (
	"context"

	"learnhub-checkout/internal/pkg/config"
	"learnhub-checkout/internal/usecase/shared"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// Publish keys by aggregate id so events of one order stay ordered within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, msg shared.OutboxMessage) error {
	return p.writer.WriteMessages(ctx, toKafkaMessage(msg))
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func toKafkaMessage(msg shared.OutboxMessage) kafka.Message {
	return kafka.Message{
		Key:   []byte(msg.AggregateID),
		Value: msg.Payload,
		Time:  msg.CreatedAt.UTC(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(msg.EventType)},
			{Key: "event_id", Value: []byte(msg.EventID.String())},
		},
	}
}
