// Package analytics publishes search activity to Kafka for the downstream
// recommendation and reporting pipelines. Delivery is best-effort: the
// discovery path never blocks on the broker.
package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/rentiva/discovery-service/config"
)

// SearchEvent describes one executed discovery request.
type SearchEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	Query      string    `json:"query"`
	CategoryID string    `json:"category_id,omitempty"`
	SortBy     string    `json:"sort_by"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	HasVector  bool      `json:"has_vector"`
	Total      int       `json:"total"`
	Relaxed    bool      `json:"relaxed"`
	DurationMs int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

type Producer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewProducer(cfg *config.KafkaConfig, log *zap.Logger) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		},
		logger: log,
	}
}

func (p *Producer) SearchPerformed(ctx context.Context, ev *SearchEvent) error {
	ev.EventType = "SearchPerformed"

	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.EventID),
		Value: value,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
