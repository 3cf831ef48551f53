// Package events publishes catalog change notifications for downstream
// consumers. Publishing is fire-and-report: callers log failures and move on.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/01moynul/marketpro-admin/internal/models"
	"github.com/segmentio/kafka-go"
)

const (
	ProductCreated = "product.created"
	ProductUpdated = "product.updated"
	ProductDeleted = "product.deleted"
)

type Event struct {
	Type       string          `json:"type"`
	ProductID  int64           `json:"productId"`
	Product    *models.Product `json:"product,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// NewProductEvent builds an event stamped with the current time. p may be
// nil for deletes.
func NewProductEvent(eventType string, id int64, p *models.Product) Event {
	return Event{Type: eventType, ProductID: id, Product: p, OccurredAt: time.Now().UTC()}
}

// Key partitions events per product so one product's changes stay ordered.
func (e Event) Key() []byte {
	return []byte(strconv.FormatInt(e.ProductID, 10))
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher drops everything. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// messageWriter is the part of *kafka.Writer we use.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	w       messageWriter
	timeout time.Duration
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{w: w, timeout: 5 * time.Second}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   e.Key(),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s failed: %w", e.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}
