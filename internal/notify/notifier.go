// Package notify отправляет приветственное сообщение новому пользователю.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Виды транспорта, выбираются через NOTIFY_KIND.
const (
	KindLog   = "log"
	KindSMTP  = "smtp"
	KindAMQP  = "amqp"
	KindKafka = "kafka"
)

// RoutingKey - ключ маршрутизации (AMQP) и тип события (Kafka).
const RoutingKey = "user.registered"

// WelcomeMessage - содержимое приветствия. AdminToken заполняется, только если это включено в конфиге.
type WelcomeMessage struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Token      string    `json:"token"`
	AdminToken string    `json:"admin_token,omitempty"`
	SentAt     time.Time `json:"sent_at"`
}

// Notifier доставляет приветствие. Ошибка доставки не должна ломать регистрацию.
type Notifier interface {
	Notify(ctx context.Context, msg WelcomeMessage) error
	Close() error
}

type SMTPOptions struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type Options struct {
	Kind         string
	SMTP         SMTPOptions
	AMQPURL      string
	AMQPExchange string
	KafkaBrokers []string
	KafkaTopic   string
}

// New создает транспорт по opts.Kind. Пустой Kind означает log.
func New(opts Options, logger *slog.Logger) (Notifier, error) {
	switch opts.Kind {
	case "", KindLog:
		return NewLogNotifier(logger), nil
	case KindSMTP:
		return NewSMTPNotifier(opts.SMTP, logger)
	case KindAMQP:
		return NewAMQPNotifier(opts.AMQPURL, opts.AMQPExchange, logger)
	case KindKafka:
		return NewKafkaNotifier(opts.KafkaBrokers, opts.KafkaTopic, logger)
	}
	return nil, fmt.Errorf("unknown notifier kind %q", opts.Kind)
}
