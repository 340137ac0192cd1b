package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/smtp"
	"strings"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleMessage() WelcomeMessage {
	return WelcomeMessage{UserID: "u-1", Email: "jane@example.com", Token: "user-token", SentAt: time.Unix(1700000000, 0).UTC()}
}

func TestLogNotifier_DoesNotLogTokens(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))
	msg := sampleMessage()
	msg.AdminToken = "admin-token"
	if err := n.Notify(context.Background(), msg); err != nil {
		t.Fatalf("notify: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "user-token") || strings.Contains(out, "admin-token") {
		t.Fatalf("token leaked into log: %s", out)
	}
	if !strings.Contains(out, `"has_admin_token":true`) {
		t.Fatalf("expected has_admin_token flag in log: %s", out)
	}
}

func TestNew_Kinds(t *testing.T) {
	n, err := New(Options{}, discardLogger())
	if err != nil {
		t.Fatalf("default kind: %v", err)
	}
	if _, ok := n.(*LogNotifier); !ok {
		t.Fatalf("expected LogNotifier by default, got %T", n)
	}
	if _, err := New(Options{Kind: "pigeon"}, discardLogger()); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	if _, err := New(Options{Kind: KindSMTP}, discardLogger()); err == nil {
		t.Fatalf("expected error for smtp without host")
	}
	if _, err := New(Options{Kind: KindKafka}, discardLogger()); err == nil {
		t.Fatalf("expected error for kafka without brokers")
	}
	if _, err := New(Options{Kind: KindAMQP}, discardLogger()); err == nil {
		t.Fatalf("expected error for amqp without url")
	}
}

func TestSMTPNotifier_SendsMail(t *testing.T) {
	n, err := NewSMTPNotifier(SMTPOptions{Host: "mail.local", Port: 2525, From: "noreply@catalog.local"}, discardLogger())
	if err != nil {
		t.Fatalf("new smtp notifier: %v", err)
	}
	var gotAddr string
	var gotTo []string
	var gotBody []byte
	n.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotBody = addr, to, msg
		return nil
	}
	msg := sampleMessage()
	msg.AdminToken = "admin-token"
	if err := n.Notify(context.Background(), msg); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if gotAddr != "mail.local:2525" || len(gotTo) != 1 || gotTo[0] != "jane@example.com" {
		t.Fatalf("unexpected envelope: %s %v", gotAddr, gotTo)
	}
	body := string(gotBody)
	if !strings.Contains(body, "user-token") || !strings.Contains(body, "admin-token") {
		t.Fatalf("mail body misses tokens: %s", body)
	}

	n.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("connection refused") }
	if err := n.Notify(context.Background(), msg); err == nil {
		t.Fatalf("expected send error")
	}
}

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaNotifier_WritesKeyedMessage(t *testing.T) {
	w := &fakeWriter{}
	n := &KafkaNotifier{writer: w, logger: discardLogger()}
	if err := n.Notify(context.Background(), sampleMessage()); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(w.msgs) != 1 || string(w.msgs[0].Key) != "u-1" {
		t.Fatalf("unexpected messages: %+v", w.msgs)
	}
	var decoded WelcomeMessage
	if err := json.Unmarshal(w.msgs[0].Value, &decoded); err != nil {
		t.Fatalf("decode value: %v", err)
	}
	if decoded.Email != "jane@example.com" || decoded.AdminToken != "" {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}

type fakeChannel struct {
	exchange, key string
	pub           amqp.Publishing
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.pub = exchange, key, msg
	return nil
}

func (f *fakeChannel) Close() error { return nil }

func TestAMQPNotifier_PublishesToExchange(t *testing.T) {
	ch := &fakeChannel{}
	n := &AMQPNotifier{ch: ch, exchange: "catalog.events", logger: discardLogger()}
	if err := n.Notify(context.Background(), sampleMessage()); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if ch.exchange != "catalog.events" || ch.key != RoutingKey || ch.pub.ContentType != "application/json" {
		t.Fatalf("unexpected publish: %s %s %+v", ch.exchange, ch.key, ch.pub)
	}
	if !bytes.Contains(ch.pub.Body, []byte(`"user_id":"u-1"`)) {
		t.Fatalf("unexpected body: %s", ch.pub.Body)
	}
	if err := n.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
