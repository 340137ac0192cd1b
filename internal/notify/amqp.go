package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPNotifier публикует событие user.registered в topic exchange RabbitMQ.
type AMQPNotifier struct {
	conn     *amqp.Connection
	ch       amqpChannel
	exchange string
	logger   *slog.Logger
}

func NewAMQPNotifier(url, exchange string, logger *slog.Logger) (*AMQPNotifier, error) {
	if url == "" || exchange == "" {
		return nil, errors.New("amqp notifier requires AMQP_URL and AMQP_EXCHANGE")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	logger.Info("AMQP notifier ready", slog.String("exchange", exchange))
	return &AMQPNotifier{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

func (n *AMQPNotifier) Notify(ctx context.Context, msg WelcomeMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	err = n.ch.PublishWithContext(ctx, n.exchange, RoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.UserID,
		Timestamp:    msg.SentAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish welcome message: %w", err)
	}
	n.logger.InfoContext(ctx, "Welcome message published", slog.String("userID", msg.UserID), slog.String("exchange", n.exchange))
	return nil
}

func (n *AMQPNotifier) Close() error {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
