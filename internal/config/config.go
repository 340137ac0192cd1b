package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"catalog-service/internal/db"
)

// Config - настройки сервиса из переменных окружения.
type Config struct {
	Port        string `envconfig:"PORT" default:"3000"`
	GRPCPort    string `envconfig:"GRPC_PORT" default:"9090"`
	DBDriver    string `envconfig:"DB_DRIVER" default:"postgres"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	AdminEmail    string `envconfig:"USER_ADMIN_EMAIL"`
	AdminPassword string `envconfig:"USER_ADMIN_PASSWORD"`

	LoginRateLimit float64 `envconfig:"LOGIN_RATE_LIMIT" default:"1"`
	LoginRateBurst int     `envconfig:"LOGIN_RATE_BURST" default:"5"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	NotifyKind              string        `envconfig:"NOTIFY_KIND" default:"log"`
	NotifyIncludeAdminToken bool          `envconfig:"NOTIFY_INCLUDE_ADMIN_TOKEN" default:"false"`
	NotifyAdminTokenTTL     time.Duration `envconfig:"NOTIFY_ADMIN_TOKEN_TTL" default:"15m"`

	// Вложенные структуры envconfig не используем: при пустом MAIL_PORT он подставил бы PORT.
	MailHost     string `envconfig:"MAIL_HOST"`
	MailPort     int    `envconfig:"MAIL_PORT" default:"587"`
	MailUser     string `envconfig:"MAIL_USER"`
	MailPassword string `envconfig:"MAIL_PASSWORD"`
	MailFrom     string `envconfig:"MAIL_FROM"`

	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"catalog.events"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"catalog.users"`
}

// Load читает конфиг из окружения и проверяет значения.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	// required в envconfig пропускает пустое значение
	if c.DatabaseURL == "" || c.JWTSecret == "" {
		return fmt.Errorf("DATABASE_URL and JWT_SECRET must not be empty")
	}
	switch c.DBDriver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", db.DriverPostgres, db.DriverSQLite, c.DBDriver)
	}
	if c.LoginRateLimit <= 0 || c.LoginRateBurst <= 0 {
		return fmt.Errorf("LOGIN_RATE_LIMIT and LOGIN_RATE_BURST must be positive")
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return fmt.Errorf("USER_ADMIN_EMAIL and USER_ADMIN_PASSWORD must be set together")
	}
	return nil
}

// SlogLevel переводит LOG_LEVEL в уровень slog. Неизвестное значение дает info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// String для логов, секреты скрыты.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port:%s GRPCPort:%s DBDriver:%s DatabaseURL:%s JWTSecret:%s JWTTTL:%s AdminEmail:%s Notify:%s OTLP:%q}",
		c.Port, c.GRPCPort, c.DBDriver, db.MaskDSN(c.DatabaseURL), mask(c.JWTSecret), c.JWTTTL, c.AdminEmail, c.NotifyKind, c.OTLPEndpoint)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}
