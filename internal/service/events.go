package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/comanda-app/table-service/internal/config"
)

// Event types published on the analytics topic.
const (
	EventOrderOpened     = "order_opened"
	EventItemsAdded      = "items_added"
	EventStatusAdvanced  = "status_advanced"
	EventTablesGenerated = "tables_generated"
)

// Event is one lifecycle analytics record.
type Event struct {
	Type         string    `json:"type"`
	RestaurantID string    `json:"restaurant_id"`
	OrderID      string    `json:"order_id,omitempty"`
	TableID      string    `json:"table_id,omitempty"`
	Status       string    `json:"status,omitempty"`
	Count        int       `json:"count,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// EventPublisher writes lifecycle events to Kafka. Publishing is fire and
// forget: a broker failure is logged and never blocks the write path that
// triggered the event.
type EventPublisher struct {
	writer *kafka.Writer
}

// NewEventPublisher builds a publisher from config, or nil when no brokers
// are configured.
func NewEventPublisher(cfg config.Events) *EventPublisher {
	if len(cfg.Brokers) == 0 {
		return nil
	}
	return &EventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers...),
			Topic:    cfg.Topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish emits an event, keyed by restaurant so per-tenant ordering holds.
func (p *EventPublisher) Publish(ctx context.Context, event Event) {
	event.Timestamp = time.Now().UTC()

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to encode event %s: %v", event.Type, err)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.RestaurantID),
		Value: payload,
	})
	if err != nil {
		log.Printf("Failed to publish event %s: %v", event.Type, err)
	}
}

// Close flushes and closes the underlying writer.
func (p *EventPublisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
