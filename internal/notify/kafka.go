package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier пишет приветствие в топик Kafka, ключ сообщения - ID пользователя.
type KafkaNotifier struct {
	writer messageWriter
	logger *slog.Logger
}

func NewKafkaNotifier(brokers []string, topic string, logger *slog.Logger) (*KafkaNotifier, error) {
	if len(brokers) == 0 || topic == "" {
		return nil, errors.New("kafka notifier requires KAFKA_BROKERS and KAFKA_TOPIC")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	logger.Info("Kafka notifier ready", slog.String("topic", topic), slog.Any("brokers", brokers))
	return &KafkaNotifier{writer: w, logger: logger}, nil
}

func (n *KafkaNotifier) Notify(ctx context.Context, msg WelcomeMessage) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(msg.UserID),
		Value:   value,
		Headers: []kafka.Header{{Key: "event", Value: []byte(RoutingKey)}},
	})
	if err != nil {
		return fmt.Errorf("write welcome message: %w", err)
	}
	n.logger.InfoContext(ctx, "Welcome message written to Kafka", slog.String("userID", msg.UserID))
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
