package notification

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	mu   sync.Mutex
	sent []Event
	done chan struct{}
}

func (c *captureSender) Send(_ context.Context, event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, event)
	select {
	case c.done <- struct{}{}:
	default:
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisherDeliversThroughWorker(t *testing.T) {
	logger := discardLogger()
	publisher := NewPublisher(logger, 8)
	sender := &captureSender{done: make(chan struct{}, 1)}
	worker := publisher.NewWorker(sender, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	publisher.Notify(ctx, Event{Type: TypeKYCVerified, SessionToken: "reg_abc"})

	select {
	case <-sender.done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never delivered the event")
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Len(t, sender.sent, 1)
	assert.Equal(t, TypeKYCVerified, sender.sent[0].Type)
	assert.Equal(t, "reg_abc", sender.sent[0].SessionToken)
	assert.False(t, sender.sent[0].OccurredAt.IsZero(), "Notify must stamp OccurredAt")
}

func TestNotifyNeverBlocksWhenQueueIsFull(t *testing.T) {
	publisher := NewPublisher(discardLogger(), 1)

	// No worker draining; the second event must be dropped, not block.
	finished := make(chan struct{})
	go func() {
		publisher.Notify(context.Background(), Event{Type: TypePolicyIssued})
		publisher.Notify(context.Background(), Event{Type: TypePolicyIssued})
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full queue")
	}
}

func TestWorkerStopsOnContextCancel(t *testing.T) {
	logger := discardLogger()
	publisher := NewPublisher(logger, 1)
	worker := publisher.NewWorker(NewLogSender(logger), logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := worker.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
