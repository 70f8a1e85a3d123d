package ports

import (
	"context"

	"marketplace/internal/core/domain/model/request"
)

// EventPublisher delivers lifecycle events to the notification transports.
// Publish is called after commit; a failure never undoes the transition.
type EventPublisher interface {
	Publish(ctx context.Context, event request.Event) error
}
