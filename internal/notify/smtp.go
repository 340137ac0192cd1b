package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier отправляет приветствие письмом.
type SMTPNotifier struct {
	addr     string
	from     string
	auth     smtp.Auth
	sendMail sendMailFunc
	logger   *slog.Logger
}

func NewSMTPNotifier(opts SMTPOptions, logger *slog.Logger) (*SMTPNotifier, error) {
	if opts.Host == "" || opts.From == "" {
		return nil, errors.New("smtp notifier requires MAIL_HOST and MAIL_FROM")
	}
	port := opts.Port
	if port == 0 {
		port = 587
	}
	n := &SMTPNotifier{
		addr:     net.JoinHostPort(opts.Host, strconv.Itoa(port)),
		from:     opts.From,
		sendMail: smtp.SendMail,
		logger:   logger,
	}
	if opts.User != "" {
		n.auth = smtp.PlainAuth("", opts.User, opts.Password, opts.Host)
	}
	return n, nil
}

func (n *SMTPNotifier) Notify(ctx context.Context, msg WelcomeMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.sendMail(n.addr, n.auth, n.from, []string{msg.Email}, renderWelcomeMail(n.from, msg)); err != nil {
		n.logger.WarnContext(ctx, "Failed to send welcome email", slog.String("userID", msg.UserID), slog.String("error", err.Error()))
		return fmt.Errorf("send welcome email: %w", err)
	}
	n.logger.InfoContext(ctx, "Welcome email sent", slog.String("userID", msg.UserID))
	return nil
}

func (n *SMTPNotifier) Close() error { return nil }

func renderWelcomeMail(from string, msg WelcomeMessage) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.Email)
	b.WriteString("Subject: Welcome to the catalog\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString("Your account has been created.\r\n\r\n")
	fmt.Fprintf(&b, "Access token:\r\n%s\r\n", msg.Token)
	if msg.AdminToken != "" {
		fmt.Fprintf(&b, "\r\nAdmin token:\r\n%s\r\n", msg.AdminToken)
	}
	return b.Bytes()
}
