package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from the publisher's channel and forwards them
// to the sink. Sink failures are logged, never propagated; audit must not
// take the registration path down with it.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit sink append failed",
					"action", event.Action,
					"event_id", event.EventID,
					"error", err.Error(),
				)
			}
		}
	}
}
