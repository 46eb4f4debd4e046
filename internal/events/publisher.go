// Package events publishes storefront domain events to kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	UserRegistered = "user_registered"
	UserLoggedIn   = "user_logged_in"
	UserLoggedOut  = "user_logged_out"
	ProductCreated = "product_created"
	ProductUpdated = "product_updated"
	ProductDeleted = "product_deleted"
	CartUpdated    = "cart_updated"
	OrderPlaced    = "order_placed"
)

const writeTimeout = 5 * time.Second

type Event struct {
	EventID string    `json:"event_id"`
	Type    string    `json:"type"`
	At      time.Time `json:"at"`
	User    string    `json:"user,omitempty"`
	Payload any       `json:"payload,omitempty"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes events to one topic. A nil *Publisher drops every event.
type Publisher struct {
	w     messageWriter
	log   *slog.Logger
	now   func() time.Time
	topic string
}

func NewPublisher(brokers []string, topic string, log *slog.Logger) *Publisher {
	if len(brokers) == 0 {
		return nil
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           writeTimeout,
	}
	return newPublisher(w, topic, log)
}

func newPublisher(w messageWriter, topic string, log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.Default()
	}
	return &Publisher{
		w:     w,
		log:   log.With("component", "events", "topic", topic),
		now:   time.Now,
		topic: topic,
	}
}

func (p *Publisher) envelope(typ, user string, payload any) Event {
	return Event{
		EventID: uuid.NewString(),
		Type:    typ,
		At:      p.now().UTC(),
		User:    user,
		Payload: payload,
	}
}

// Publish sends one event keyed by user. Failures are logged, never returned.
func (p *Publisher) Publish(ctx context.Context, typ, user string, payload any) {
	if p == nil {
		return
	}
	if err := p.publish(ctx, p.envelope(typ, user, payload)); err != nil {
		p.log.Warn("event_publish_failed", "type", typ, "error", err)
	}
}

func (p *Publisher) publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	msg := kafka.Message{Key: []byte(ev.User), Value: data, Time: ev.At}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.w.Close()
}
