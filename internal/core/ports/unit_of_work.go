package ports

import (
	"context"

	"marketplace/internal/core/domain/model/request"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// DeliveryRequestRepository returns a repository bound to the current transaction.
	DeliveryRequestRepository() DeliveryRequestRepository

	// DeliveryPersonRepository returns a repository bound to the current transaction.
	DeliveryPersonRepository() DeliveryPersonRepository

	// CollectEvents drains the domain events recorded by every request that was
	// added or updated through this unit of work, in write order.
	CollectEvents() []request.Event
}
