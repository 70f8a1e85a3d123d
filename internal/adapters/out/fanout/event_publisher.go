// Package fanout delivers every event to several publishers.
package fanout

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/core/ports"
)

// EventPublisher calls each target in order. One failing target does not stop
// the others; their errors are joined.
type EventPublisher struct {
	targets []ports.EventPublisher
}

// NewEventPublisher skips nil targets. With no targets Publish is a no-op.
func NewEventPublisher(targets ...ports.EventPublisher) *EventPublisher {
	kept := make([]ports.EventPublisher, 0, len(targets))
	for _, t := range targets {
		if t != nil {
			kept = append(kept, t)
		}
	}
	return &EventPublisher{targets: kept}
}

func (p *EventPublisher) Publish(ctx context.Context, event request.Event) error {
	var errList []error
	for _, t := range p.targets {
		if err := t.Publish(ctx, event); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
