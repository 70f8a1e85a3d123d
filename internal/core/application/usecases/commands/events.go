package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/core/ports"
)

// publishEvents hands committed events to the publisher. Failures are logged
// and swallowed: the state change is already durable.
func publishEvents(ctx context.Context, publisher ports.EventPublisher, logger *slog.Logger, events []request.Event) {
	for _, event := range events {
		if err := publisher.Publish(ctx, event); err != nil {
			logger.ErrorContext(ctx, "failed to publish event",
				"type", event.Kind,
				"request_id", event.RequestID.String(),
				"error", err,
			)
		}
	}
}
