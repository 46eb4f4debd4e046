package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/logging"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublish_Envelope(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, "storefront_events", logging.Discard())
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p.now = func() time.Time { return at }

	p.Publish(context.Background(), OrderPlaced, "testuser@example.com", map[string]int{"orderId": 2})

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "testuser@example.com", string(msg.Key))

	var ev struct {
		EventID string         `json:"event_id"`
		Type    string         `json:"type"`
		At      time.Time      `json:"at"`
		User    string         `json:"user"`
		Payload map[string]int `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	_, err := uuid.Parse(ev.EventID)
	require.NoError(t, err)
	assert.Equal(t, OrderPlaced, ev.Type)
	assert.True(t, at.Equal(ev.At))
	assert.Equal(t, 2, ev.Payload["orderId"])
}

func TestPublish_FailureIsSwallowed(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := newPublisher(w, "t", logging.Discard())

	assert.NotPanics(t, func() {
		p.Publish(context.Background(), CartUpdated, "", nil)
	})
	assert.Empty(t, w.msgs)
}

func TestNilPublisher(t *testing.T) {
	var p *Publisher
	assert.NotPanics(t, func() {
		p.Publish(context.Background(), UserLoggedOut, "a@b.c", nil)
	})
	assert.NoError(t, p.Close())
	assert.Nil(t, NewPublisher(nil, "t", nil))
}

func TestClose(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, "t", nil)
	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
