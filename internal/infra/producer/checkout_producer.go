package producer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/segmentio/kafka-go"
)

type EventType string

const (
	EventTypeCheckoutCompleted EventType = "checkout_completed"
)

type ICheckoutEventProducer interface {
	PublishCheckoutCompleted(ctx context.Context, event *model.CheckoutCompletedEvent) error
	Close() error
}

// CheckoutEventProducer 結帳完成事件發送器
// topic: 由建構時設置
// key: email，同一個客戶的事件會落在同一個partition，保序
type CheckoutEventProducer struct {
	writer *kafka.Writer
}

func NewCheckoutEventProducer(brokers []string, topic string) *CheckoutEventProducer {
	return &CheckoutEventProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *CheckoutEventProducer) PublishCheckoutCompleted(ctx context.Context, event *model.CheckoutCompletedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Email),
		Value: value,
		Headers: []kafka.Header{
			{
				Key:   "event_type",
				Value: []byte(EventTypeCheckoutCompleted),
			},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *CheckoutEventProducer) Close() error {
	return p.writer.Close()
}

var _ ICheckoutEventProducer = (*CheckoutEventProducer)(nil)
