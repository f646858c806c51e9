package record

import (
	"context"
	"encoding/json"

	"go-tenure/internal/events"

	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=record_event_publisher.go -destination=mock/record_event_publisher_mock.go -package=mock
type EventPublisher interface {
	PublishRecordCreated(ctx context.Context, event events.RecordCreatedEvent) error
}

type noopEventPublisher struct{}

func (noopEventPublisher) PublishRecordCreated(context.Context, events.RecordCreatedEvent) error {
	return nil
}

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type kafkaEventPublisher struct {
	writer MessageWriter
}

func NewKafkaEventPublisher(writer MessageWriter) EventPublisher {
	return &kafkaEventPublisher{writer: writer}
}

func (p *kafkaEventPublisher) PublishRecordCreated(
	ctx context.Context,
	event events.RecordCreatedEvent,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: events.RecordCreatedTopic,
		Key:   []byte(event.RecordID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte("employee_record")},
		},
	})
}
