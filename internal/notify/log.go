package notify

import (
	"context"
	"log/slog"
)

// LogNotifier пишет факт отправки в лог. Токены в лог не попадают.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, msg WelcomeMessage) error {
	n.logger.InfoContext(ctx, "Welcome notification",
		slog.String("userID", msg.UserID),
		slog.String("email", msg.Email),
		slog.Bool("has_admin_token", msg.AdminToken != ""))
	return nil
}

func (n *LogNotifier) Close() error { return nil }
