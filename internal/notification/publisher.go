package notification

import (
	"context"
	"log/slog"
	"time"
)

// Publisher queues events for asynchronous delivery. Notify never blocks the
// calling step: if the queue is full the event is dropped with a warning,
// which is acceptable for fire-and-forget traffic.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger, buffer int) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Notify enqueues an event without blocking.
func (p *Publisher) Notify(_ context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.Warn("notification queue full, dropping event",
			"type", event.Type,
			"session_token", event.SessionToken,
		)
	}
}

// Worker consumes queued events and hands them to the sender. It keeps
// background processing testable without wiring queue implementations into
// the workflow.
type Worker struct {
	sender Sender
	inbox  <-chan Event
	logger *slog.Logger
}

func (p *Publisher) NewWorker(sender Sender, logger *slog.Logger) *Worker {
	return &Worker{sender: sender, inbox: p.inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sender.Send(ctx, event); err != nil {
				// Fire-and-forget: log and move on.
				w.logger.ErrorContext(ctx, "notification delivery failed",
					"type", event.Type,
					"session_token", event.SessionToken,
					"error", err,
				)
			}
		}
	}
}
