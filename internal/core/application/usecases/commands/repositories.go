// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it actually touches.
type (
	// TxManager handles transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RequestRepoFactory provides access to the delivery request repository within a transaction.
	RequestRepoFactory interface {
		DeliveryRequestRepository() ports.DeliveryRequestRepository
	}

	// PersonRepoFactory provides access to the delivery person repository within a transaction.
	PersonRepoFactory interface {
		DeliveryPersonRepository() ports.DeliveryPersonRepository
	}

	// EventCollector hands out the domain events recorded during the transaction.
	EventCollector interface {
		CollectEvents() []request.Event
	}

	// RequestUoW manages transactions for delivery request operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.DeliveryRequestRepository()
	//   // ... load, apply, update
	//
	//   err = uow.Commit(ctx)
	//   events := uow.CollectEvents()
	RequestUoW interface {
		TxManager
		RequestRepoFactory
		EventCollector
	}

	// RequestUoWFactory creates new request unit of work instances.
	RequestUoWFactory interface {
		Create() RequestUoW
	}

	// PersonUoW manages transactions for delivery person operations.
	PersonUoW interface {
		TxManager
		PersonRepoFactory
	}

	// PersonUoWFactory creates new person unit of work instances.
	PersonUoWFactory interface {
		Create() PersonUoW
	}
)
