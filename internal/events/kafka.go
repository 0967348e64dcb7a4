package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lshigami/sketchquiz/internal/dto"
	"github.com/segmentio/kafka-go"
)

// publishBatchTimeout keeps a single synchronous write from waiting on kafka-go's
// default one second batch window.
const publishBatchTimeout = 10 * time.Millisecond

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaResultPublisher emits one message per graded result, keyed by username
// so a player's results stay ordered within a partition.
type KafkaResultPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaResultPublisher(brokers []string, topic string) *KafkaResultPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchSize:              1,
		BatchTimeout:           publishBatchTimeout,
		WriteTimeout:           2 * time.Second,
	}
	return &KafkaResultPublisher{writer: writer, topic: topic}
}

func (p *KafkaResultPublisher) PublishResult(ctx context.Context, event dto.ResultGradedEvent) error {
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.Username),
		Value: msgBytes,
	})
	if err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

func (p *KafkaResultPublisher) Close() error {
	return p.writer.Close()
}
